package postgres

import (
	"context"
	"fmt"

	"github.com/cimillas/aplay-admin/internal/app"
	"github.com/cimillas/aplay-admin/internal/cache"
	"github.com/cimillas/aplay-admin/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// flagTargets whitelists the (entity, field) pairs toggles may touch.
// Both halves of the key are compile-time constants, so the table and
// column interpolated into the statement are never caller input.
type flagTarget struct {
	table  string
	column string
}

var flagTargets = map[cache.Entity]map[app.ToggleField]flagTarget{
	cache.EntityEvents: {
		app.FieldFeatured: {"events", "featured"},
	},
	cache.EntityVenues: {
		app.FieldActive:   {"venues", "active"},
		app.FieldFeatured: {"venues", "featured"},
	},
	cache.EntityProfiles: {
		app.FieldActive: {"profiles", "active"},
	},
	cache.EntityFeeds: {
		app.FieldActive: {"feeds", "active"},
	},
	cache.EntityCategories: {
		app.FieldActive: {"categories", "active"},
	},
	cache.EntityPlans: {
		app.FieldActive: {"subscription_plans", "active"},
	},
	cache.EntityPodcasts: {
		app.FieldPublished: {"youtube_content", "published"},
	},
}

// FlagRepository flips one boolean column by id for the toggle surface.
type FlagRepository struct {
	pool *pgxpool.Pool
}

func NewFlagRepository(pool *pgxpool.Pool) *FlagRepository {
	return &FlagRepository{pool: pool}
}

func (r *FlagRepository) SetFlag(ctx context.Context, entity cache.Entity, id string, field app.ToggleField, value bool) error {
	target, ok := flagTargets[entity][field]
	if !ok {
		return fmt.Errorf("no toggle %q on %q", field, entity)
	}
	stmt := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE id = $1`, target.table, target.column)
	tag, err := r.pool.Exec(ctx, stmt, id, value)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("set %s.%s: %w", target.table, target.column, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInvalidID
	}
	return nil
}
