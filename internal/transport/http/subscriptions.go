package http

import (
	"context"
	"net/http"
	"time"

	"github.com/cimillas/aplay-admin/internal/app"
	"github.com/cimillas/aplay-admin/internal/domain"
)

// SubscriptionAdminService is the read/cancel surface for user
// subscriptions. Subscriptions are created by the consumer purchase
// flow, never from the admin panel.
type SubscriptionAdminService interface {
	GetSubscription(ctx context.Context, id string) (domain.UserSubscription, error)
	CancelSubscription(ctx context.Context, id string) (domain.UserSubscription, error)
	DeleteSubscription(ctx context.Context, id string) error
	ListSubscriptions(ctx context.Context, params app.ListParams) ([]domain.UserSubscription, int, error)
}

func HandleSubscriptions(svc SubscriptionAdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
		params := parseListParams(r, "status", "plan_id")
		subs, total, err := svc.ListSubscriptions(r.Context(), params)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		resp := make([]subscriptionResponse, 0, len(subs))
		for _, s := range subs {
			resp = append(resp, toSubscriptionResponse(s))
		}
		writeList(w, resp, total, params)
	}
}

func HandleSubscriptionItem(svc SubscriptionAdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, action, ok := itemPath(r.URL.Path, "/admin/subscriptions/")
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		switch action {
		case "":
		case "cancel":
			if r.Method != http.MethodPost {
				writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
				return
			}
			sub, err := svc.CancelSubscription(r.Context(), id)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, toSubscriptionResponse(sub))
			return
		default:
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		switch r.Method {
		case http.MethodGet:
			sub, err := svc.GetSubscription(r.Context(), id)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, toSubscriptionResponse(sub))
		case http.MethodPut:
			sub, err := svc.CancelSubscription(r.Context(), id)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, toSubscriptionResponse(sub))
		case http.MethodDelete:
			if err := svc.DeleteSubscription(r.Context(), id); err != nil {
				writeDomainError(w, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

type subscriptionResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	PlanID    string `json:"plan_id"`
	Status    string `json:"status"`
	StartedAt string `json:"started_at"`
	ExpiresAt string `json:"expires_at"`
	CreatedAt string `json:"created_at"`
}

func toSubscriptionResponse(s domain.UserSubscription) subscriptionResponse {
	return subscriptionResponse{
		ID:        s.ID,
		UserID:    s.UserID,
		PlanID:    s.PlanID,
		Status:    string(s.Status),
		StartedAt: s.StartedAt.Format(time.RFC3339),
		ExpiresAt: s.ExpiresAt.Format(time.RFC3339),
		CreatedAt: s.CreatedAt.Format(time.RFC3339),
	}
}
