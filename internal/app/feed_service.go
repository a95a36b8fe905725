package app

import (
	"context"
	"strings"

	"github.com/cimillas/aplay-admin/internal/cache"
	"github.com/cimillas/aplay-admin/internal/clock"
	"github.com/cimillas/aplay-admin/internal/domain"
)

type FeedRepository interface {
	CreateFeed(ctx context.Context, feed domain.Feed) error
	GetFeed(ctx context.Context, id string) (domain.Feed, error)
	UpdateFeed(ctx context.Context, feed domain.Feed) error
	DeleteFeed(ctx context.Context, id string) error
	ListFeeds(ctx context.Context, params ListParams) ([]domain.Feed, int, error)
}

type FeedService struct {
	repo  FeedRepository
	clock clock.Clock
	inv   cache.Invalidator
}

func NewFeedService(repo FeedRepository, clk clock.Clock, inv cache.Invalidator) *FeedService {
	return &FeedService{repo: repo, clock: clk, inv: inv}
}

type FeedInput struct {
	Title    string
	Body     string
	ImageURL string
	AuthorID *string
	Active   bool
}

func (s *FeedService) CreateFeed(ctx context.Context, in FeedInput) (domain.Feed, error) {
	if strings.TrimSpace(in.Title) == "" {
		return domain.Feed{}, domain.ErrFeedTitleRequired
	}
	feed := domain.Feed{
		ID:        newID(),
		Title:     strings.TrimSpace(in.Title),
		Body:      in.Body,
		ImageURL:  in.ImageURL,
		AuthorID:  in.AuthorID,
		Active:    in.Active,
		CreatedAt: s.clock.Now(),
	}
	if err := s.repo.CreateFeed(ctx, feed); err != nil {
		return domain.Feed{}, err
	}
	if err := s.inv.Invalidate(ctx, cache.EntityFeeds); err != nil {
		return domain.Feed{}, err
	}
	return feed, nil
}

func (s *FeedService) GetFeed(ctx context.Context, id string) (domain.Feed, error) {
	if id == "" {
		return domain.Feed{}, domain.ErrInvalidID
	}
	return s.repo.GetFeed(ctx, id)
}

func (s *FeedService) UpdateFeed(ctx context.Context, id string, in FeedInput) (domain.Feed, error) {
	if id == "" {
		return domain.Feed{}, domain.ErrInvalidID
	}
	if strings.TrimSpace(in.Title) == "" {
		return domain.Feed{}, domain.ErrFeedTitleRequired
	}
	feed, err := s.repo.GetFeed(ctx, id)
	if err != nil {
		return domain.Feed{}, err
	}
	feed.Title = strings.TrimSpace(in.Title)
	feed.Body = in.Body
	feed.ImageURL = in.ImageURL
	feed.AuthorID = in.AuthorID
	feed.Active = in.Active
	if err := s.repo.UpdateFeed(ctx, feed); err != nil {
		return domain.Feed{}, err
	}
	if err := s.inv.Invalidate(ctx, cache.EntityFeeds); err != nil {
		return domain.Feed{}, err
	}
	return feed, nil
}

func (s *FeedService) DeleteFeed(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidID
	}
	if err := s.repo.DeleteFeed(ctx, id); err != nil {
		return err
	}
	return s.inv.Invalidate(ctx, cache.EntityFeeds)
}

func (s *FeedService) ListFeeds(ctx context.Context, params ListParams) ([]domain.Feed, int, error) {
	return s.repo.ListFeeds(ctx, params.Normalize())
}
