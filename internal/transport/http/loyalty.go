package http

import (
	"context"
	"net/http"
	"time"

	"github.com/cimillas/aplay-admin/internal/app"
	"github.com/cimillas/aplay-admin/internal/domain"
)

// LoyaltyAdminService manages membership tiers and manual point
// adjustments.
type LoyaltyAdminService interface {
	CreateTier(ctx context.Context, in app.TierInput) (domain.MembershipTier, error)
	UpdateTier(ctx context.Context, id string, in app.TierInput) (domain.MembershipTier, error)
	DeleteTier(ctx context.Context, id string) error
	ListTiers(ctx context.Context) ([]domain.MembershipTier, error)
	AdjustPoints(ctx context.Context, in app.AdjustPointsInput) (domain.UserPoints, error)
	ListPoints(ctx context.Context, params app.ListParams) ([]domain.UserPoints, int, error)
	ListTransactions(ctx context.Context, userID string, params app.ListParams) ([]domain.PointTransaction, int, error)
}

func HandleTiers(svc LoyaltyAdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			tiers, err := svc.ListTiers(r.Context())
			if err != nil {
				writeDomainError(w, err)
				return
			}
			resp := make([]tierResponse, 0, len(tiers))
			for _, t := range tiers {
				resp = append(resp, toTierResponse(t))
			}
			writeJSON(w, http.StatusOK, resp)
		case http.MethodPost:
			var req tierRequest
			if err := decodeJSON(r, &req); err != nil {
				writeRequestError(w, err)
				return
			}
			tier, err := svc.CreateTier(r.Context(), req.input())
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, toTierResponse(tier))
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

func HandleTierItem(svc LoyaltyAdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, action, ok := itemPath(r.URL.Path, "/admin/tiers/")
		if !ok || action != "" {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		switch r.Method {
		case http.MethodPut:
			var req tierRequest
			if err := decodeJSON(r, &req); err != nil {
				writeRequestError(w, err)
				return
			}
			tier, err := svc.UpdateTier(r.Context(), id, req.input())
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, toTierResponse(tier))
		case http.MethodDelete:
			if err := svc.DeleteTier(r.Context(), id); err != nil {
				writeDomainError(w, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

// HandlePoints routes /admin/points, /admin/points/{userID}/adjust and
// /admin/points/{userID}/transactions.
func HandlePoints(svc LoyaltyAdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/admin/points" {
			if r.Method != http.MethodGet {
				writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
				return
			}
			params := parseListParams(r)
			points, total, err := svc.ListPoints(r.Context(), params)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			resp := make([]pointsResponse, 0, len(points))
			for _, p := range points {
				resp = append(resp, toPointsResponse(p))
			}
			writeList(w, resp, total, params)
			return
		}

		userID, action, ok := itemPath(r.URL.Path, "/admin/points/")
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		switch action {
		case "adjust":
			if r.Method != http.MethodPost {
				writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
				return
			}
			var req adjustPointsRequest
			if err := decodeJSON(r, &req); err != nil {
				writeRequestError(w, err)
				return
			}
			points, err := svc.AdjustPoints(r.Context(), app.AdjustPointsInput{
				UserID: userID,
				Delta:  req.Delta,
				Reason: req.Reason,
			})
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, toPointsResponse(points))
		case "transactions":
			if r.Method != http.MethodGet {
				writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
				return
			}
			params := parseListParams(r)
			txs, total, err := svc.ListTransactions(r.Context(), userID, params)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			resp := make([]pointTransactionResponse, 0, len(txs))
			for _, tx := range txs {
				resp = append(resp, toPointTransactionResponse(tx))
			}
			writeList(w, resp, total, params)
		default:
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
		}
	}
}

type tierRequest struct {
	Name      string `json:"name"`
	Threshold int    `json:"threshold"`
	Perks     string `json:"perks"`
}

func (r tierRequest) input() app.TierInput {
	return app.TierInput{
		Name:      r.Name,
		Threshold: r.Threshold,
		Perks:     r.Perks,
	}
}

type tierResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Threshold int    `json:"threshold"`
	Perks     string `json:"perks"`
	CreatedAt string `json:"created_at"`
}

func toTierResponse(t domain.MembershipTier) tierResponse {
	return tierResponse{
		ID:        t.ID,
		Name:      t.Name,
		Threshold: t.Threshold,
		Perks:     t.Perks,
		CreatedAt: t.CreatedAt.Format(time.RFC3339),
	}
}

type adjustPointsRequest struct {
	Delta  int    `json:"delta"`
	Reason string `json:"reason"`
}

type pointsResponse struct {
	UserID    string `json:"user_id"`
	Balance   int    `json:"balance"`
	UpdatedAt string `json:"updated_at"`
}

func toPointsResponse(p domain.UserPoints) pointsResponse {
	return pointsResponse{
		UserID:    p.UserID,
		Balance:   p.Balance,
		UpdatedAt: p.UpdatedAt.Format(time.RFC3339),
	}
}

type pointTransactionResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Delta     int    `json:"delta"`
	Reason    string `json:"reason"`
	CreatedAt string `json:"created_at"`
}

func toPointTransactionResponse(tx domain.PointTransaction) pointTransactionResponse {
	return pointTransactionResponse{
		ID:        tx.ID,
		UserID:    tx.UserID,
		Delta:     tx.Delta,
		Reason:    tx.Reason,
		CreatedAt: tx.CreatedAt.Format(time.RFC3339),
	}
}
