package http

import (
	"context"
	"net/http"
	"time"

	"github.com/cimillas/aplay-admin/internal/app"
	"github.com/cimillas/aplay-admin/internal/cache"
	"github.com/cimillas/aplay-admin/internal/domain"
)

type CategoryAdminService interface {
	CreateCategory(ctx context.Context, in app.CategoryInput) (domain.Category, error)
	GetCategory(ctx context.Context, id string) (domain.Category, error)
	UpdateCategory(ctx context.Context, id string, in app.CategoryInput) (domain.Category, error)
	DeleteCategory(ctx context.Context, id string) error
	ListCategories(ctx context.Context, params app.ListParams) ([]domain.Category, int, error)
}

func HandleCategories(svc CategoryAdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			params := parseListParams(r, "active")
			categories, total, err := svc.ListCategories(r.Context(), params)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			resp := make([]categoryResponse, 0, len(categories))
			for _, c := range categories {
				resp = append(resp, toCategoryResponse(c))
			}
			writeList(w, resp, total, params)
		case http.MethodPost:
			var req categoryRequest
			if err := decodeJSON(r, &req); err != nil {
				writeRequestError(w, err)
				return
			}
			category, err := svc.CreateCategory(r.Context(), req.input())
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, toCategoryResponse(category))
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

func HandleCategoryItem(svc CategoryAdminService, toggles Toggler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, action, ok := itemPath(r.URL.Path, "/admin/categories/")
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		switch action {
		case "":
		case "active":
			handleToggle(w, r, toggles, cache.EntityCategories, id, app.FieldActive)
			return
		default:
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		switch r.Method {
		case http.MethodGet:
			category, err := svc.GetCategory(r.Context(), id)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, toCategoryResponse(category))
		case http.MethodPut:
			var req categoryRequest
			if err := decodeJSON(r, &req); err != nil {
				writeRequestError(w, err)
				return
			}
			category, err := svc.UpdateCategory(r.Context(), id, req.input())
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, toCategoryResponse(category))
		case http.MethodDelete:
			if err := svc.DeleteCategory(r.Context(), id); err != nil {
				writeDomainError(w, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

type categoryRequest struct {
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
	Active    bool   `json:"active"`
}

func (r categoryRequest) input() app.CategoryInput {
	return app.CategoryInput{
		Name:      r.Name,
		SortOrder: r.SortOrder,
		Active:    r.Active,
	}
}

type categoryResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"created_at"`
}

func toCategoryResponse(c domain.Category) categoryResponse {
	return categoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		SortOrder: c.SortOrder,
		Active:    c.Active,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}
