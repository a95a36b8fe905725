package postgres

import (
	"context"
	"fmt"

	"github.com/cimillas/aplay-admin/internal/app"
	"github.com/cimillas/aplay-admin/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

const profileColumns = `id, full_name, email, phone, role, active, created_at`

func (r *ProfileRepository) GetProfile(ctx context.Context, id string) (domain.Profile, error) {
	const query = `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	var p domain.Profile
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.FullName, &p.Email, &p.Phone, &p.Role, &p.Active, &p.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Profile{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Profile{}, domain.ErrProfileNotFound
		}
		return domain.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

func (r *ProfileRepository) UpdateProfile(ctx context.Context, profile domain.Profile) error {
	const stmt = `
UPDATE profiles
SET full_name = $2, phone = $3, role = $4, active = $5
WHERE id = $1`
	tag, err := r.pool.Exec(ctx, stmt, profile.ID, profile.FullName, profile.Phone, profile.Role, profile.Active)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func (r *ProfileRepository) DeleteProfile(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("delete profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func (r *ProfileRepository) ListProfiles(ctx context.Context, params app.ListParams) ([]domain.Profile, int, error) {
	var f filterSet
	f.search(params.Search, "full_name", "email")
	if role := params.Filter("role"); role != "" {
		f.eq("role", role)
	}
	if active := params.Filter("active"); active != "" {
		f.eq("active", active == "true")
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM profiles`+f.where(), f.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count profiles: %w", err)
	}

	limit, args := f.page(params)
	query := `SELECT ` + profileColumns + ` FROM profiles` + f.where() + ` ORDER BY created_at DESC` + limit
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []domain.Profile
	for rows.Next() {
		var p domain.Profile
		if err := rows.Scan(&p.ID, &p.FullName, &p.Email, &p.Phone, &p.Role, &p.Active, &p.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("iterate profiles: %w", rows.Err())
	}
	return profiles, total, nil
}
