package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/cimillas/aplay-admin/internal/app"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON decodes the request body into dst, rejecting unknown fields.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// listEnvelope is the shared list response: one page of rows plus the
// untruncated total so clients can render page controls.
type listEnvelope struct {
	Items    any `json:"items"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

func writeList(w http.ResponseWriter, items any, total int, params app.ListParams) {
	writeJSON(w, http.StatusOK, listEnvelope{
		Items:    items,
		Total:    total,
		Page:     params.Page,
		PageSize: params.PageSize,
	})
}

// parseListParams reads the shared list query contract: q for search,
// page/page_size for pagination, plus any named per-entity filters.
// Values are normalized by the service layer.
func parseListParams(r *http.Request, filterNames ...string) app.ListParams {
	q := r.URL.Query()
	params := app.ListParams{
		Search:   q.Get("q"),
		Page:     atoiDefault(q.Get("page"), 1),
		PageSize: atoiDefault(q.Get("page_size"), 0),
	}
	for _, name := range filterNames {
		if v := q.Get(name); v != "" {
			if params.Filters == nil {
				params.Filters = map[string]string{}
			}
			params.Filters[name] = v
		}
	}
	return params.Normalize()
}

func atoiDefault(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}

// itemPath splits the remainder after prefix into an id and an optional
// action segment: "/admin/events/abc/zones" with prefix "/admin/events/"
// yields ("abc", "zones", true).
func itemPath(path, prefix string) (id, action string, ok bool) {
	rest, found := strings.CutPrefix(path, prefix)
	if !found {
		return "", "", false
	}
	parts := strings.Split(strings.Trim(rest, "/"), "/")
	switch len(parts) {
	case 1:
		if parts[0] == "" {
			return "", "", false
		}
		return parts[0], "", true
	case 2:
		if parts[0] == "" || parts[1] == "" {
			return "", "", false
		}
		return parts[0], parts[1], true
	default:
		return "", "", false
	}
}
