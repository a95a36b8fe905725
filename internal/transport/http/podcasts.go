package http

import (
	"context"
	"net/http"
	"time"

	"github.com/cimillas/aplay-admin/internal/app"
	"github.com/cimillas/aplay-admin/internal/cache"
	"github.com/cimillas/aplay-admin/internal/domain"
)

type PodcastAdminService interface {
	CreatePodcast(ctx context.Context, in app.PodcastInput) (domain.Podcast, error)
	GetPodcast(ctx context.Context, id string) (domain.Podcast, error)
	UpdatePodcast(ctx context.Context, id string, in app.PodcastInput) (domain.Podcast, error)
	DeletePodcast(ctx context.Context, id string) error
	ListPodcasts(ctx context.Context, params app.ListParams) ([]domain.Podcast, int, error)
}

func HandlePodcasts(svc PodcastAdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			params := parseListParams(r, "published")
			podcasts, total, err := svc.ListPodcasts(r.Context(), params)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			resp := make([]podcastResponse, 0, len(podcasts))
			for _, p := range podcasts {
				resp = append(resp, toPodcastResponse(p))
			}
			writeList(w, resp, total, params)
		case http.MethodPost:
			var req podcastRequest
			if err := decodeJSON(r, &req); err != nil {
				writeRequestError(w, err)
				return
			}
			podcast, err := svc.CreatePodcast(r.Context(), req.input())
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, toPodcastResponse(podcast))
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

func HandlePodcastItem(svc PodcastAdminService, toggles Toggler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, action, ok := itemPath(r.URL.Path, "/admin/podcasts/")
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		switch action {
		case "":
		case "published":
			handleToggle(w, r, toggles, cache.EntityPodcasts, id, app.FieldPublished)
			return
		default:
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		switch r.Method {
		case http.MethodGet:
			podcast, err := svc.GetPodcast(r.Context(), id)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, toPodcastResponse(podcast))
		case http.MethodPut:
			var req podcastRequest
			if err := decodeJSON(r, &req); err != nil {
				writeRequestError(w, err)
				return
			}
			podcast, err := svc.UpdatePodcast(r.Context(), id, req.input())
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, toPodcastResponse(podcast))
		case http.MethodDelete:
			if err := svc.DeletePodcast(r.Context(), id); err != nil {
				writeDomainError(w, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

type podcastRequest struct {
	Title       string `json:"title"`
	Host        string `json:"host"`
	YoutubeURL  string `json:"youtube_url"`
	CoverURL    string `json:"cover_url"`
	Description string `json:"description"`
	Published   bool   `json:"published"`
}

func (r podcastRequest) input() app.PodcastInput {
	return app.PodcastInput{
		Title:       r.Title,
		Host:        r.Host,
		YoutubeURL:  r.YoutubeURL,
		CoverURL:    r.CoverURL,
		Description: r.Description,
		Published:   r.Published,
	}
}

type podcastResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Host        string `json:"host"`
	YoutubeURL  string `json:"youtube_url"`
	CoverURL    string `json:"cover_url"`
	Description string `json:"description"`
	Published   bool   `json:"published"`
	CreatedAt   string `json:"created_at"`
}

func toPodcastResponse(p domain.Podcast) podcastResponse {
	return podcastResponse{
		ID:          p.ID,
		Title:       p.Title,
		Host:        p.Host,
		YoutubeURL:  p.YoutubeURL,
		CoverURL:    p.CoverURL,
		Description: p.Description,
		Published:   p.Published,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
	}
}
