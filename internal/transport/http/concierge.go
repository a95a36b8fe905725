package http

import (
	"context"
	"net/http"
	"time"

	"github.com/cimillas/aplay-admin/internal/app"
	"github.com/cimillas/aplay-admin/internal/domain"
)

// ConciergeAdminService is the triage surface for concierge requests:
// admins assign, progress and close them but never open new ones.
type ConciergeAdminService interface {
	GetRequest(ctx context.Context, id string) (domain.ConciergeRequest, error)
	UpdateRequest(ctx context.Context, id string, in app.ConciergeUpdateInput) (domain.ConciergeRequest, error)
	DeleteRequest(ctx context.Context, id string) error
	ListRequests(ctx context.Context, params app.ListParams) ([]domain.ConciergeRequest, int, error)
}

func HandleConcierge(svc ConciergeAdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
		params := parseListParams(r, "status", "assignee_id")
		requests, total, err := svc.ListRequests(r.Context(), params)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		resp := make([]conciergeResponse, 0, len(requests))
		for _, cr := range requests {
			resp = append(resp, toConciergeResponse(cr))
		}
		writeList(w, resp, total, params)
	}
}

func HandleConciergeItem(svc ConciergeAdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, action, ok := itemPath(r.URL.Path, "/admin/concierge/")
		if !ok || action != "" {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		switch r.Method {
		case http.MethodGet:
			request, err := svc.GetRequest(r.Context(), id)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, toConciergeResponse(request))
		case http.MethodPut:
			var req conciergeUpdateRequest
			if err := decodeJSON(r, &req); err != nil {
				writeRequestError(w, err)
				return
			}
			request, err := svc.UpdateRequest(r.Context(), id, app.ConciergeUpdateInput{
				Status:     domain.ConciergeStatus(req.Status),
				AssigneeID: req.AssigneeID,
				Resolution: req.Resolution,
			})
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, toConciergeResponse(request))
		case http.MethodDelete:
			if err := svc.DeleteRequest(r.Context(), id); err != nil {
				writeDomainError(w, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

type conciergeUpdateRequest struct {
	Status     string  `json:"status"`
	AssigneeID *string `json:"assignee_id"`
	Resolution string  `json:"resolution"`
}

type conciergeResponse struct {
	ID         string  `json:"id"`
	UserID     string  `json:"user_id"`
	Subject    string  `json:"subject"`
	Details    string  `json:"details"`
	Status     string  `json:"status"`
	AssigneeID *string `json:"assignee_id"`
	Resolution string  `json:"resolution"`
	CreatedAt  string  `json:"created_at"`
}

func toConciergeResponse(cr domain.ConciergeRequest) conciergeResponse {
	return conciergeResponse{
		ID:         cr.ID,
		UserID:     cr.UserID,
		Subject:    cr.Subject,
		Details:    cr.Details,
		Status:     string(cr.Status),
		AssigneeID: cr.AssigneeID,
		Resolution: cr.Resolution,
		CreatedAt:  cr.CreatedAt.Format(time.RFC3339),
	}
}
