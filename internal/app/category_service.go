package app

import (
	"context"
	"strings"

	"github.com/cimillas/aplay-admin/internal/cache"
	"github.com/cimillas/aplay-admin/internal/clock"
	"github.com/cimillas/aplay-admin/internal/domain"
)

type CategoryRepository interface {
	CreateCategory(ctx context.Context, category domain.Category) error
	GetCategory(ctx context.Context, id string) (domain.Category, error)
	UpdateCategory(ctx context.Context, category domain.Category) error
	DeleteCategory(ctx context.Context, id string) error
	ListCategories(ctx context.Context, params ListParams) ([]domain.Category, int, error)
}

type CategoryService struct {
	repo  CategoryRepository
	clock clock.Clock
	inv   cache.Invalidator
}

func NewCategoryService(repo CategoryRepository, clk clock.Clock, inv cache.Invalidator) *CategoryService {
	return &CategoryService{repo: repo, clock: clk, inv: inv}
}

type CategoryInput struct {
	Name      string
	SortOrder int
	Active    bool
}

func (s *CategoryService) CreateCategory(ctx context.Context, in CategoryInput) (domain.Category, error) {
	if strings.TrimSpace(in.Name) == "" {
		return domain.Category{}, domain.ErrCategoryNameRequired
	}
	category := domain.Category{
		ID:        newID(),
		Name:      strings.TrimSpace(in.Name),
		SortOrder: in.SortOrder,
		Active:    in.Active,
		CreatedAt: s.clock.Now(),
	}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return domain.Category{}, err
	}
	if err := s.inv.Invalidate(ctx, cache.EntityCategories); err != nil {
		return domain.Category{}, err
	}
	return category, nil
}

func (s *CategoryService) GetCategory(ctx context.Context, id string) (domain.Category, error) {
	if id == "" {
		return domain.Category{}, domain.ErrInvalidID
	}
	return s.repo.GetCategory(ctx, id)
}

func (s *CategoryService) UpdateCategory(ctx context.Context, id string, in CategoryInput) (domain.Category, error) {
	if id == "" {
		return domain.Category{}, domain.ErrInvalidID
	}
	if strings.TrimSpace(in.Name) == "" {
		return domain.Category{}, domain.ErrCategoryNameRequired
	}
	category, err := s.repo.GetCategory(ctx, id)
	if err != nil {
		return domain.Category{}, err
	}
	category.Name = strings.TrimSpace(in.Name)
	category.SortOrder = in.SortOrder
	category.Active = in.Active
	if err := s.repo.UpdateCategory(ctx, category); err != nil {
		return domain.Category{}, err
	}
	if err := s.inv.Invalidate(ctx, cache.EntityCategories); err != nil {
		return domain.Category{}, err
	}
	return category, nil
}

func (s *CategoryService) DeleteCategory(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidID
	}
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return err
	}
	return s.inv.Invalidate(ctx, cache.EntityCategories)
}

// ListCategories orders by explicit sort order then name, not by
// creation time like the other views.
func (s *CategoryService) ListCategories(ctx context.Context, params ListParams) ([]domain.Category, int, error) {
	return s.repo.ListCategories(ctx, params.Normalize())
}
