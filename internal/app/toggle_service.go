package app

import (
	"context"

	"github.com/cimillas/aplay-admin/internal/cache"
	"github.com/cimillas/aplay-admin/internal/domain"
)

// ToggleField names a boolean column that admins flip from list views.
type ToggleField string

const (
	FieldActive    ToggleField = "active"
	FieldFeatured  ToggleField = "featured"
	FieldPublished ToggleField = "published"
)

// FlagStore writes one boolean field of one row. Unknown entity/field
// pairs are rejected by the implementation.
type FlagStore interface {
	SetFlag(ctx context.Context, entity cache.Entity, id string, field ToggleField, value bool) error
}

// ToggleInput carries the value the caller observed, not a re-read one.
// Two admins toggling concurrently race last-write-wins; both compute
// the negation of whatever they last displayed.
type ToggleInput struct {
	Entity  cache.Entity
	ID      string
	Field   ToggleField
	Current bool
}

// ToggleService flips active/featured/published style flags and stales
// every cached list that displays the entity.
type ToggleService struct {
	store FlagStore
	inv   cache.Invalidator
}

func NewToggleService(store FlagStore, inv cache.Invalidator) *ToggleService {
	return &ToggleService{store: store, inv: inv}
}

// Toggle sets the field to the negation of the observed value and
// returns the value written.
func (s *ToggleService) Toggle(ctx context.Context, in ToggleInput) (bool, error) {
	if in.ID == "" {
		return false, domain.ErrInvalidID
	}
	next := !in.Current
	if err := s.store.SetFlag(ctx, in.Entity, in.ID, in.Field, next); err != nil {
		return false, err
	}
	if err := s.inv.Invalidate(ctx, in.Entity); err != nil {
		return next, err
	}
	return next, nil
}
