package http

import (
	"context"
	"net/http"
	"time"

	"github.com/cimillas/aplay-admin/internal/app"
	"github.com/cimillas/aplay-admin/internal/cache"
	"github.com/cimillas/aplay-admin/internal/domain"
)

// PlanAdminService manages subscription plans and their feature objects.
type PlanAdminService interface {
	CreatePlan(ctx context.Context, in app.PlanInput) (domain.SubscriptionPlan, error)
	GetPlan(ctx context.Context, id string) (domain.SubscriptionPlan, error)
	UpdatePlan(ctx context.Context, id string, in app.PlanInput) (domain.SubscriptionPlan, error)
	DeletePlan(ctx context.Context, id string) error
	ListPlans(ctx context.Context, params app.ListParams) ([]domain.SubscriptionPlan, int, error)
}

func HandlePlans(svc PlanAdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			params := parseListParams(r, "active")
			plans, total, err := svc.ListPlans(r.Context(), params)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			resp := make([]planResponse, 0, len(plans))
			for _, p := range plans {
				resp = append(resp, toPlanResponse(p))
			}
			writeList(w, resp, total, params)
		case http.MethodPost:
			var req planRequest
			if err := decodeJSON(r, &req); err != nil {
				writeRequestError(w, err)
				return
			}
			plan, err := svc.CreatePlan(r.Context(), req.input())
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, toPlanResponse(plan))
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

func HandlePlanItem(svc PlanAdminService, toggles Toggler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, action, ok := itemPath(r.URL.Path, "/admin/plans/")
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		switch action {
		case "":
		case "active":
			handleToggle(w, r, toggles, cache.EntityPlans, id, app.FieldActive)
			return
		default:
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		switch r.Method {
		case http.MethodGet:
			plan, err := svc.GetPlan(r.Context(), id)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, toPlanResponse(plan))
		case http.MethodPut:
			var req planRequest
			if err := decodeJSON(r, &req); err != nil {
				writeRequestError(w, err)
				return
			}
			plan, err := svc.UpdatePlan(r.Context(), id, req.input())
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, toPlanResponse(plan))
		case http.MethodDelete:
			if err := svc.DeletePlan(r.Context(), id); err != nil {
				writeDomainError(w, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

// planFeatures round-trips the plan feature object exactly as stored.
type planFeatures struct {
	PriorityBooking bool `json:"priority_booking"`
	ConciergeAccess bool `json:"concierge_access"`
	GuestListAccess bool `json:"guest_list_access"`
	FreeEntries     int  `json:"free_entries"`
	GuestLimit      int  `json:"guest_limit"`
}

type planRequest struct {
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	PriceMonthly float64      `json:"price_monthly"`
	Features     planFeatures `json:"features"`
	Active       bool         `json:"active"`
}

func (r planRequest) input() app.PlanInput {
	return app.PlanInput{
		Name:         r.Name,
		Description:  r.Description,
		PriceMonthly: r.PriceMonthly,
		Features: domain.PlanFeatures{
			PriorityBooking: r.Features.PriorityBooking,
			ConciergeAccess: r.Features.ConciergeAccess,
			GuestListAccess: r.Features.GuestListAccess,
			FreeEntries:     r.Features.FreeEntries,
			GuestLimit:      r.Features.GuestLimit,
		},
		Active: r.Active,
	}
}

type planResponse struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	PriceMonthly float64      `json:"price_monthly"`
	Features     planFeatures `json:"features"`
	Active       bool         `json:"active"`
	CreatedAt    string       `json:"created_at"`
}

func toPlanResponse(p domain.SubscriptionPlan) planResponse {
	return planResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		PriceMonthly: p.PriceMonthly,
		Features: planFeatures{
			PriorityBooking: p.Features.PriorityBooking,
			ConciergeAccess: p.Features.ConciergeAccess,
			GuestListAccess: p.Features.GuestListAccess,
			FreeEntries:     p.Features.FreeEntries,
			GuestLimit:      p.Features.GuestLimit,
		},
		Active:    p.Active,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}
}
