package app

import (
	"context"
	"errors"
	"testing"

	"github.com/cimillas/aplay-admin/internal/cache"
	"github.com/cimillas/aplay-admin/internal/domain"
)

type fakeFlagStore struct {
	values map[string]bool
	err    error
}

func (s *fakeFlagStore) SetFlag(_ context.Context, entity cache.Entity, id string, field ToggleField, value bool) error {
	if s.err != nil {
		return s.err
	}
	if s.values == nil {
		s.values = map[string]bool{}
	}
	s.values[string(entity)+"/"+id+"/"+string(field)] = value
	return nil
}

type recordingInvalidator struct {
	entities []cache.Entity
}

func (r *recordingInvalidator) Invalidate(_ context.Context, entity cache.Entity) error {
	r.entities = append(r.entities, entity)
	return nil
}

func TestToggleService_Toggle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("writes the negation of the observed value", func(t *testing.T) {
		store := &fakeFlagStore{}
		inv := &recordingInvalidator{}
		svc := NewToggleService(store, inv)

		got, err := svc.Toggle(ctx, ToggleInput{
			Entity:  cache.EntityVenues,
			ID:      "v1",
			Field:   FieldActive,
			Current: true,
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got != false {
			t.Fatalf("expected false written, got %v", got)
		}
		if store.values["venues/v1/active"] != false {
			t.Fatalf("expected store to hold false")
		}
		if len(inv.entities) != 1 || inv.entities[0] != cache.EntityVenues {
			t.Fatalf("expected venue cache invalidation, got %v", inv.entities)
		}
	})

	t.Run("stale observed value makes the second toggle a no-op write", func(t *testing.T) {
		// Two admins both see active=true. Each submits current=true, so
		// both writes set false: the flag does not flip back. Last write
		// wins and the outcome matches what both admins intended to see.
		store := &fakeFlagStore{}
		svc := NewToggleService(store, &recordingInvalidator{})

		in := ToggleInput{Entity: cache.EntityVenues, ID: "v1", Field: FieldActive, Current: true}
		if _, err := svc.Toggle(ctx, in); err != nil {
			t.Fatalf("first toggle: %v", err)
		}
		got, err := svc.Toggle(ctx, in)
		if err != nil {
			t.Fatalf("second toggle: %v", err)
		}
		if got != false || store.values["venues/v1/active"] != false {
			t.Fatalf("expected both stale writes to land on false, got %v", got)
		}
	})

	t.Run("requires id", func(t *testing.T) {
		svc := NewToggleService(&fakeFlagStore{}, &recordingInvalidator{})
		if _, err := svc.Toggle(ctx, ToggleInput{Entity: cache.EntityVenues, Field: FieldActive}); !errors.Is(err, domain.ErrInvalidID) {
			t.Fatalf("expected ErrInvalidID, got %v", err)
		}
	})

	t.Run("propagates store errors without invalidating", func(t *testing.T) {
		storeErr := errors.New("column not allowed")
		inv := &recordingInvalidator{}
		svc := NewToggleService(&fakeFlagStore{err: storeErr}, inv)

		if _, err := svc.Toggle(ctx, ToggleInput{Entity: cache.EntityVenues, ID: "v1", Field: FieldActive}); !errors.Is(err, storeErr) {
			t.Fatalf("expected store error, got %v", err)
		}
		if len(inv.entities) != 0 {
			t.Fatalf("expected no invalidation on failure")
		}
	})
}
