package http

import (
	"context"
	"net/http"
	"time"

	"github.com/cimillas/aplay-admin/internal/app"
	"github.com/cimillas/aplay-admin/internal/cache"
	"github.com/cimillas/aplay-admin/internal/domain"
)

type FeedAdminService interface {
	CreateFeed(ctx context.Context, in app.FeedInput) (domain.Feed, error)
	GetFeed(ctx context.Context, id string) (domain.Feed, error)
	UpdateFeed(ctx context.Context, id string, in app.FeedInput) (domain.Feed, error)
	DeleteFeed(ctx context.Context, id string) error
	ListFeeds(ctx context.Context, params app.ListParams) ([]domain.Feed, int, error)
}

func HandleFeeds(svc FeedAdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			params := parseListParams(r, "active")
			feeds, total, err := svc.ListFeeds(r.Context(), params)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			resp := make([]feedResponse, 0, len(feeds))
			for _, f := range feeds {
				resp = append(resp, toFeedResponse(f))
			}
			writeList(w, resp, total, params)
		case http.MethodPost:
			var req feedRequest
			if err := decodeJSON(r, &req); err != nil {
				writeRequestError(w, err)
				return
			}
			feed, err := svc.CreateFeed(r.Context(), req.input())
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, toFeedResponse(feed))
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

func HandleFeedItem(svc FeedAdminService, toggles Toggler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, action, ok := itemPath(r.URL.Path, "/admin/feeds/")
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		switch action {
		case "":
		case "active":
			handleToggle(w, r, toggles, cache.EntityFeeds, id, app.FieldActive)
			return
		default:
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		switch r.Method {
		case http.MethodGet:
			feed, err := svc.GetFeed(r.Context(), id)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, toFeedResponse(feed))
		case http.MethodPut:
			var req feedRequest
			if err := decodeJSON(r, &req); err != nil {
				writeRequestError(w, err)
				return
			}
			feed, err := svc.UpdateFeed(r.Context(), id, req.input())
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, toFeedResponse(feed))
		case http.MethodDelete:
			if err := svc.DeleteFeed(r.Context(), id); err != nil {
				writeDomainError(w, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

type feedRequest struct {
	Title    string  `json:"title"`
	Body     string  `json:"body"`
	ImageURL string  `json:"image_url"`
	AuthorID *string `json:"author_id"`
	Active   bool    `json:"active"`
}

func (r feedRequest) input() app.FeedInput {
	return app.FeedInput{
		Title:    r.Title,
		Body:     r.Body,
		ImageURL: r.ImageURL,
		AuthorID: r.AuthorID,
		Active:   r.Active,
	}
}

type feedResponse struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Body      string  `json:"body"`
	ImageURL  string  `json:"image_url"`
	AuthorID  *string `json:"author_id"`
	Active    bool    `json:"active"`
	CreatedAt string  `json:"created_at"`
}

func toFeedResponse(f domain.Feed) feedResponse {
	return feedResponse{
		ID:        f.ID,
		Title:     f.Title,
		Body:      f.Body,
		ImageURL:  f.ImageURL,
		AuthorID:  f.AuthorID,
		Active:    f.Active,
		CreatedAt: f.CreatedAt.Format(time.RFC3339),
	}
}
