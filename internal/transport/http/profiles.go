package http

import (
	"context"
	"net/http"
	"time"

	"github.com/cimillas/aplay-admin/internal/app"
	"github.com/cimillas/aplay-admin/internal/cache"
	"github.com/cimillas/aplay-admin/internal/domain"
)

// ProfileAdminService is the surface the user management screen needs.
// Profiles are created on signup; admins edit and deactivate them.
type ProfileAdminService interface {
	GetProfile(ctx context.Context, id string) (domain.Profile, error)
	UpdateProfile(ctx context.Context, id string, in app.ProfileInput) (domain.Profile, error)
	DeleteProfile(ctx context.Context, id string) error
	ListProfiles(ctx context.Context, params app.ListParams) ([]domain.Profile, int, error)
}

func HandleProfiles(svc ProfileAdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
		params := parseListParams(r, "role", "active")
		profiles, total, err := svc.ListProfiles(r.Context(), params)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		resp := make([]profileResponse, 0, len(profiles))
		for _, p := range profiles {
			resp = append(resp, toProfileResponse(p))
		}
		writeList(w, resp, total, params)
	}
}

func HandleProfileItem(svc ProfileAdminService, toggles Toggler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, action, ok := itemPath(r.URL.Path, "/admin/profiles/")
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		switch action {
		case "":
		case "active":
			handleToggle(w, r, toggles, cache.EntityProfiles, id, app.FieldActive)
			return
		default:
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		switch r.Method {
		case http.MethodGet:
			profile, err := svc.GetProfile(r.Context(), id)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, toProfileResponse(profile))
		case http.MethodPut:
			var req profileRequest
			if err := decodeJSON(r, &req); err != nil {
				writeRequestError(w, err)
				return
			}
			profile, err := svc.UpdateProfile(r.Context(), id, app.ProfileInput{
				FullName: req.FullName,
				Phone:    req.Phone,
				Role:     req.Role,
			})
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, toProfileResponse(profile))
		case http.MethodDelete:
			if err := svc.DeleteProfile(r.Context(), id); err != nil {
				writeDomainError(w, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

// Email is absent on purpose: it is immutable from the admin surface.
type profileRequest struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

type profileResponse struct {
	ID        string `json:"id"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"created_at"`
}

func toProfileResponse(p domain.Profile) profileResponse {
	return profileResponse{
		ID:        p.ID,
		FullName:  p.FullName,
		Email:     p.Email,
		Phone:     p.Phone,
		Role:      p.Role,
		Active:    p.Active,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}
}
