package http

import (
	"context"
	"net/http"
	"time"

	"github.com/cimillas/aplay-admin/internal/app"
	"github.com/cimillas/aplay-admin/internal/cache"
	"github.com/cimillas/aplay-admin/internal/domain"
)

// VenueAdminService is the surface the venue screens depend on. One set
// of endpoints serves clubs, beaches, pubs and arcades; the kind filter
// picks the screen.
type VenueAdminService interface {
	CreateVenue(ctx context.Context, in app.VenueInput) (domain.Venue, error)
	GetVenue(ctx context.Context, id string) (domain.Venue, error)
	UpdateVenue(ctx context.Context, id string, in app.VenueInput) (domain.Venue, error)
	DeleteVenue(ctx context.Context, id string) error
	ListVenues(ctx context.Context, params app.ListParams) ([]domain.Venue, int, error)
}

func HandleVenues(svc VenueAdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			params := parseListParams(r, "kind", "category_id", "active")
			venues, total, err := svc.ListVenues(r.Context(), params)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			resp := make([]venueResponse, 0, len(venues))
			for _, v := range venues {
				resp = append(resp, toVenueResponse(v))
			}
			writeList(w, resp, total, params)
		case http.MethodPost:
			var req venueRequest
			if err := decodeJSON(r, &req); err != nil {
				writeRequestError(w, err)
				return
			}
			venue, err := svc.CreateVenue(r.Context(), req.input())
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, toVenueResponse(venue))
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

func HandleVenueItem(svc VenueAdminService, toggles Toggler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, action, ok := itemPath(r.URL.Path, "/admin/venues/")
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		switch action {
		case "":
		case "active":
			handleToggle(w, r, toggles, cache.EntityVenues, id, app.FieldActive)
			return
		case "featured":
			handleToggle(w, r, toggles, cache.EntityVenues, id, app.FieldFeatured)
			return
		default:
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		switch r.Method {
		case http.MethodGet:
			venue, err := svc.GetVenue(r.Context(), id)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, toVenueResponse(venue))
		case http.MethodPut:
			var req venueRequest
			if err := decodeJSON(r, &req); err != nil {
				writeRequestError(w, err)
				return
			}
			venue, err := svc.UpdateVenue(r.Context(), id, req.input())
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, toVenueResponse(venue))
		case http.MethodDelete:
			if err := svc.DeleteVenue(r.Context(), id); err != nil {
				writeDomainError(w, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

type venueRequest struct {
	Kind        string  `json:"kind"`
	Name        string  `json:"name"`
	City        string  `json:"city"`
	Address     string  `json:"address"`
	Description string  `json:"description"`
	LogoURL     string  `json:"logo_url"`
	CategoryID  *string `json:"category_id"`
	Active      bool    `json:"active"`
	Featured    bool    `json:"featured"`
}

func (r venueRequest) input() app.VenueInput {
	return app.VenueInput{
		Kind:        domain.VenueKind(r.Kind),
		Name:        r.Name,
		City:        r.City,
		Address:     r.Address,
		Description: r.Description,
		LogoURL:     r.LogoURL,
		CategoryID:  r.CategoryID,
		Active:      r.Active,
		Featured:    r.Featured,
	}
}

type venueResponse struct {
	ID          string  `json:"id"`
	Kind        string  `json:"kind"`
	Name        string  `json:"name"`
	City        string  `json:"city"`
	Address     string  `json:"address"`
	Description string  `json:"description"`
	LogoURL     string  `json:"logo_url"`
	CategoryID  *string `json:"category_id"`
	Active      bool    `json:"active"`
	Featured    bool    `json:"featured"`
	CreatedAt   string  `json:"created_at"`
}

func toVenueResponse(v domain.Venue) venueResponse {
	return venueResponse{
		ID:          v.ID,
		Kind:        string(v.Kind),
		Name:        v.Name,
		City:        v.City,
		Address:     v.Address,
		Description: v.Description,
		LogoURL:     v.LogoURL,
		CategoryID:  v.CategoryID,
		Active:      v.Active,
		Featured:    v.Featured,
		CreatedAt:   v.CreatedAt.Format(time.RFC3339),
	}
}
