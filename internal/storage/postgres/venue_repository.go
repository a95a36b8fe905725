package postgres

import (
	"context"
	"fmt"

	"github.com/cimillas/aplay-admin/internal/app"
	"github.com/cimillas/aplay-admin/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type VenueRepository struct {
	pool *pgxpool.Pool
}

func NewVenueRepository(pool *pgxpool.Pool) *VenueRepository {
	return &VenueRepository{pool: pool}
}

const venueColumns = `id, kind, name, city, address, description, logo_url, category_id, active, featured, created_at`

func (r *VenueRepository) CreateVenue(ctx context.Context, venue domain.Venue) error {
	const stmt = `
INSERT INTO venues (id, kind, name, city, address, description, logo_url, category_id, active, featured, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.pool.Exec(ctx, stmt,
		venue.ID, venue.Kind, venue.Name, venue.City, venue.Address,
		venue.Description, venue.LogoURL, venue.CategoryID,
		venue.Active, venue.Featured, venue.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		if isForeignKeyViolation(err) {
			return domain.ErrCategoryNotFound
		}
		return fmt.Errorf("create venue: %w", err)
	}
	return nil
}

func (r *VenueRepository) GetVenue(ctx context.Context, id string) (domain.Venue, error) {
	const query = `SELECT ` + venueColumns + ` FROM venues WHERE id = $1`
	var v domain.Venue
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&v.ID, &v.Kind, &v.Name, &v.City, &v.Address,
		&v.Description, &v.LogoURL, &v.CategoryID,
		&v.Active, &v.Featured, &v.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Venue{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Venue{}, domain.ErrVenueNotFound
		}
		return domain.Venue{}, fmt.Errorf("get venue: %w", err)
	}
	return v, nil
}

func (r *VenueRepository) UpdateVenue(ctx context.Context, venue domain.Venue) error {
	const stmt = `
UPDATE venues
SET name = $2, city = $3, address = $4, description = $5, logo_url = $6,
    category_id = $7, active = $8, featured = $9
WHERE id = $1`
	tag, err := r.pool.Exec(ctx, stmt,
		venue.ID, venue.Name, venue.City, venue.Address, venue.Description,
		venue.LogoURL, venue.CategoryID, venue.Active, venue.Featured,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		if isForeignKeyViolation(err) {
			return domain.ErrCategoryNotFound
		}
		return fmt.Errorf("update venue: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrVenueNotFound
	}
	return nil
}

func (r *VenueRepository) DeleteVenue(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM venues WHERE id = $1`, id)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("delete venue: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrVenueNotFound
	}
	return nil
}

func (r *VenueRepository) ListVenues(ctx context.Context, params app.ListParams) ([]domain.Venue, int, error) {
	var f filterSet
	f.search(params.Search, "name", "city")
	if kind := params.Filter("kind"); kind != "" {
		f.eq("kind", kind)
	}
	if active := params.Filter("active"); active != "" {
		f.eq("active", active == "true")
	}
	if categoryID := params.Filter("category_id"); categoryID != "" {
		f.eq("category_id", categoryID)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM venues`+f.where(), f.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count venues: %w", err)
	}

	limit, args := f.page(params)
	query := `SELECT ` + venueColumns + ` FROM venues` + f.where() + ` ORDER BY created_at DESC` + limit
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list venues: %w", err)
	}
	defer rows.Close()

	var venues []domain.Venue
	for rows.Next() {
		var v domain.Venue
		if err := rows.Scan(
			&v.ID, &v.Kind, &v.Name, &v.City, &v.Address,
			&v.Description, &v.LogoURL, &v.CategoryID,
			&v.Active, &v.Featured, &v.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan venue: %w", err)
		}
		venues = append(venues, v)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("iterate venues: %w", rows.Err())
	}
	return venues, total, nil
}
