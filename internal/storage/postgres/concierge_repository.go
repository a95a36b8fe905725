package postgres

import (
	"context"
	"fmt"

	"github.com/cimillas/aplay-admin/internal/app"
	"github.com/cimillas/aplay-admin/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ConciergeRepository struct {
	pool *pgxpool.Pool
}

func NewConciergeRepository(pool *pgxpool.Pool) *ConciergeRepository {
	return &ConciergeRepository{pool: pool}
}

const conciergeColumns = `id, user_id, subject, details, status, assignee_id, resolution, created_at`

func (r *ConciergeRepository) GetRequest(ctx context.Context, id string) (domain.ConciergeRequest, error) {
	const query = `SELECT ` + conciergeColumns + ` FROM concierge_requests WHERE id = $1`
	var c domain.ConciergeRequest
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.UserID, &c.Subject, &c.Details, &c.Status, &c.AssigneeID, &c.Resolution, &c.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ConciergeRequest{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.ConciergeRequest{}, domain.ErrRequestNotFound
		}
		return domain.ConciergeRequest{}, fmt.Errorf("get concierge request: %w", err)
	}
	return c, nil
}

func (r *ConciergeRepository) UpdateRequest(ctx context.Context, request domain.ConciergeRequest) error {
	const stmt = `
UPDATE concierge_requests
SET status = $2, assignee_id = $3, resolution = $4
WHERE id = $1`
	tag, err := r.pool.Exec(ctx, stmt, request.ID, request.Status, request.AssigneeID, request.Resolution)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		if isForeignKeyViolation(err) {
			return domain.ErrProfileNotFound
		}
		return fmt.Errorf("update concierge request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRequestNotFound
	}
	return nil
}

func (r *ConciergeRepository) DeleteRequest(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM concierge_requests WHERE id = $1`, id)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("delete concierge request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRequestNotFound
	}
	return nil
}

func (r *ConciergeRepository) ListRequests(ctx context.Context, params app.ListParams) ([]domain.ConciergeRequest, int, error) {
	var f filterSet
	f.search(params.Search, "subject", "user_id::text")
	if status := params.Filter("status"); status != "" {
		f.eq("status", status)
	}
	if assignee := params.Filter("assignee_id"); assignee != "" {
		f.eq("assignee_id", assignee)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM concierge_requests`+f.where(), f.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count concierge requests: %w", err)
	}

	limit, args := f.page(params)
	query := `SELECT ` + conciergeColumns + ` FROM concierge_requests` + f.where() + ` ORDER BY created_at DESC` + limit
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list concierge requests: %w", err)
	}
	defer rows.Close()

	var requests []domain.ConciergeRequest
	for rows.Next() {
		var c domain.ConciergeRequest
		if err := rows.Scan(&c.ID, &c.UserID, &c.Subject, &c.Details, &c.Status, &c.AssigneeID, &c.Resolution, &c.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan concierge request: %w", err)
		}
		requests = append(requests, c)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("iterate concierge requests: %w", rows.Err())
	}
	return requests, total, nil
}
