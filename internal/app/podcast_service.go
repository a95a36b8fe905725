package app

import (
	"context"
	"strings"

	"github.com/cimillas/aplay-admin/internal/cache"
	"github.com/cimillas/aplay-admin/internal/clock"
	"github.com/cimillas/aplay-admin/internal/domain"
)

type PodcastRepository interface {
	CreatePodcast(ctx context.Context, podcast domain.Podcast) error
	GetPodcast(ctx context.Context, id string) (domain.Podcast, error)
	UpdatePodcast(ctx context.Context, podcast domain.Podcast) error
	DeletePodcast(ctx context.Context, id string) error
	ListPodcasts(ctx context.Context, params ListParams) ([]domain.Podcast, int, error)
}

type PodcastService struct {
	repo  PodcastRepository
	clock clock.Clock
	inv   cache.Invalidator
}

func NewPodcastService(repo PodcastRepository, clk clock.Clock, inv cache.Invalidator) *PodcastService {
	return &PodcastService{repo: repo, clock: clk, inv: inv}
}

type PodcastInput struct {
	Title       string
	Host        string
	YoutubeURL  string
	CoverURL    string
	Description string
	Published   bool
}

func (s *PodcastService) CreatePodcast(ctx context.Context, in PodcastInput) (domain.Podcast, error) {
	if strings.TrimSpace(in.Title) == "" {
		return domain.Podcast{}, domain.ErrPodcastTitleRequired
	}
	podcast := domain.Podcast{
		ID:          newID(),
		Title:       strings.TrimSpace(in.Title),
		Host:        in.Host,
		YoutubeURL:  in.YoutubeURL,
		CoverURL:    in.CoverURL,
		Description: in.Description,
		Published:   in.Published,
		CreatedAt:   s.clock.Now(),
	}
	if err := s.repo.CreatePodcast(ctx, podcast); err != nil {
		return domain.Podcast{}, err
	}
	if err := s.inv.Invalidate(ctx, cache.EntityPodcasts); err != nil {
		return domain.Podcast{}, err
	}
	return podcast, nil
}

func (s *PodcastService) GetPodcast(ctx context.Context, id string) (domain.Podcast, error) {
	if id == "" {
		return domain.Podcast{}, domain.ErrInvalidID
	}
	return s.repo.GetPodcast(ctx, id)
}

func (s *PodcastService) UpdatePodcast(ctx context.Context, id string, in PodcastInput) (domain.Podcast, error) {
	if id == "" {
		return domain.Podcast{}, domain.ErrInvalidID
	}
	if strings.TrimSpace(in.Title) == "" {
		return domain.Podcast{}, domain.ErrPodcastTitleRequired
	}
	podcast, err := s.repo.GetPodcast(ctx, id)
	if err != nil {
		return domain.Podcast{}, err
	}
	podcast.Title = strings.TrimSpace(in.Title)
	podcast.Host = in.Host
	podcast.YoutubeURL = in.YoutubeURL
	podcast.CoverURL = in.CoverURL
	podcast.Description = in.Description
	podcast.Published = in.Published
	if err := s.repo.UpdatePodcast(ctx, podcast); err != nil {
		return domain.Podcast{}, err
	}
	if err := s.inv.Invalidate(ctx, cache.EntityPodcasts); err != nil {
		return domain.Podcast{}, err
	}
	return podcast, nil
}

func (s *PodcastService) DeletePodcast(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidID
	}
	if err := s.repo.DeletePodcast(ctx, id); err != nil {
		return err
	}
	return s.inv.Invalidate(ctx, cache.EntityPodcasts)
}

func (s *PodcastService) ListPodcasts(ctx context.Context, params ListParams) ([]domain.Podcast, int, error) {
	return s.repo.ListPodcasts(ctx, params.Normalize())
}
