package postgres

import (
	"context"
	"fmt"

	"github.com/cimillas/aplay-admin/internal/app"
	"github.com/cimillas/aplay-admin/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LoyaltyRepository struct {
	pool *pgxpool.Pool
}

func NewLoyaltyRepository(pool *pgxpool.Pool) *LoyaltyRepository {
	return &LoyaltyRepository{pool: pool}
}

func (r *LoyaltyRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *LoyaltyRepository) CreateTier(ctx context.Context, tier domain.MembershipTier) error {
	const stmt = `
INSERT INTO membership_tiers (id, name, threshold, perks, created_at)
VALUES ($1, $2, $3, $4, $5)`
	_, err := r.exec(ctx, stmt, tier.ID, tier.Name, tier.Threshold, tier.Perks, tier.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create tier: %w", err)
	}
	return nil
}

func (r *LoyaltyRepository) UpdateTier(ctx context.Context, tier domain.MembershipTier) error {
	const stmt = `UPDATE membership_tiers SET name = $2, threshold = $3, perks = $4 WHERE id = $1`
	tag, err := r.exec(ctx, stmt, tier.ID, tier.Name, tier.Threshold, tier.Perks)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("update tier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTierNotFound
	}
	return nil
}

func (r *LoyaltyRepository) DeleteTier(ctx context.Context, id string) error {
	tag, err := r.exec(ctx, `DELETE FROM membership_tiers WHERE id = $1`, id)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("delete tier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTierNotFound
	}
	return nil
}

func (r *LoyaltyRepository) ListTiers(ctx context.Context) ([]domain.MembershipTier, error) {
	const query = `
SELECT id, name, threshold, perks, created_at
FROM membership_tiers
ORDER BY threshold ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list tiers: %w", err)
	}
	defer rows.Close()

	var tiers []domain.MembershipTier
	for rows.Next() {
		var t domain.MembershipTier
		if err := rows.Scan(&t.ID, &t.Name, &t.Threshold, &t.Perks, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan tier: %w", err)
		}
		tiers = append(tiers, t)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate tiers: %w", rows.Err())
	}
	return tiers, nil
}

// GetPoints returns a zero balance for users with no ledger yet.
func (r *LoyaltyRepository) GetPoints(ctx context.Context, userID string) (domain.UserPoints, error) {
	const query = `SELECT user_id, balance, updated_at FROM user_points WHERE user_id = $1`
	var p domain.UserPoints
	err := r.queryRow(ctx, query, userID).Scan(&p.UserID, &p.Balance, &p.UpdatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.UserPoints{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.UserPoints{UserID: userID}, nil
		}
		return domain.UserPoints{}, fmt.Errorf("get points: %w", err)
	}
	return p, nil
}

func (r *LoyaltyRepository) UpsertPoints(ctx context.Context, points domain.UserPoints) error {
	const stmt = `
INSERT INTO user_points (user_id, balance, updated_at)
VALUES ($1, $2, $3)
ON CONFLICT (user_id) DO UPDATE SET balance = $2, updated_at = $3`
	_, err := r.exec(ctx, stmt, points.UserID, points.Balance, points.UpdatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		if isForeignKeyViolation(err) {
			return domain.ErrProfileNotFound
		}
		return fmt.Errorf("upsert points: %w", err)
	}
	return nil
}

func (r *LoyaltyRepository) InsertTransaction(ctx context.Context, tx domain.PointTransaction) error {
	const stmt = `
INSERT INTO point_transactions (id, user_id, delta, reason, created_at)
VALUES ($1, $2, $3, $4, $5)`
	_, err := r.exec(ctx, stmt, tx.ID, tx.UserID, tx.Delta, tx.Reason, tx.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		if isForeignKeyViolation(err) {
			return domain.ErrProfileNotFound
		}
		return fmt.Errorf("insert point transaction: %w", err)
	}
	return nil
}

func (r *LoyaltyRepository) ListPoints(ctx context.Context, params app.ListParams) ([]domain.UserPoints, int, error) {
	var f filterSet
	f.search(params.Search, "user_id::text")

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM user_points`+f.where(), f.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count points: %w", err)
	}

	limit, args := f.page(params)
	query := `SELECT user_id, balance, updated_at FROM user_points` + f.where() + ` ORDER BY updated_at DESC` + limit
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list points: %w", err)
	}
	defer rows.Close()

	var points []domain.UserPoints
	for rows.Next() {
		var p domain.UserPoints
		if err := rows.Scan(&p.UserID, &p.Balance, &p.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan points: %w", err)
		}
		points = append(points, p)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("iterate points: %w", rows.Err())
	}
	return points, total, nil
}

func (r *LoyaltyRepository) ListTransactions(ctx context.Context, userID string, params app.ListParams) ([]domain.PointTransaction, int, error) {
	var f filterSet
	f.eq("user_id", userID)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM point_transactions`+f.where(), f.args...).Scan(&total); err != nil {
		if isInvalidUUID(err) {
			return nil, 0, domain.ErrInvalidID
		}
		return nil, 0, fmt.Errorf("count point transactions: %w", err)
	}

	limit, args := f.page(params)
	query := `
SELECT id, user_id, delta, reason, created_at
FROM point_transactions` + f.where() + ` ORDER BY created_at DESC` + limit
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list point transactions: %w", err)
	}
	defer rows.Close()

	var txs []domain.PointTransaction
	for rows.Next() {
		var t domain.PointTransaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Delta, &t.Reason, &t.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan point transaction: %w", err)
		}
		txs = append(txs, t)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("iterate point transactions: %w", rows.Err())
	}
	return txs, total, nil
}

func (r *LoyaltyRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *LoyaltyRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
