package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cimillas/aplay-admin/internal/app"
	"github.com/cimillas/aplay-admin/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SubscriptionRepository struct {
	pool *pgxpool.Pool
}

func NewSubscriptionRepository(pool *pgxpool.Pool) *SubscriptionRepository {
	return &SubscriptionRepository{pool: pool}
}

// The feature object is one JSONB column; encode/decode lives here so
// the rest of the system only sees the typed struct.

func (r *SubscriptionRepository) CreatePlan(ctx context.Context, plan domain.SubscriptionPlan) error {
	features, err := json.Marshal(plan.Features)
	if err != nil {
		return fmt.Errorf("encode plan features: %w", err)
	}
	const stmt = `
INSERT INTO subscription_plans (id, name, description, price_monthly, features, active, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err = r.pool.Exec(ctx, stmt,
		plan.ID, plan.Name, plan.Description, plan.PriceMonthly, features, plan.Active, plan.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create plan: %w", err)
	}
	return nil
}

func (r *SubscriptionRepository) GetPlan(ctx context.Context, id string) (domain.SubscriptionPlan, error) {
	const query = `
SELECT id, name, description, price_monthly, features, active, created_at
FROM subscription_plans
WHERE id = $1`
	var (
		p        domain.SubscriptionPlan
		features []byte
	)
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.PriceMonthly, &features, &p.Active, &p.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.SubscriptionPlan{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.SubscriptionPlan{}, domain.ErrPlanNotFound
		}
		return domain.SubscriptionPlan{}, fmt.Errorf("get plan: %w", err)
	}
	if err := json.Unmarshal(features, &p.Features); err != nil {
		return domain.SubscriptionPlan{}, fmt.Errorf("decode plan features: %w", err)
	}
	return p, nil
}

func (r *SubscriptionRepository) UpdatePlan(ctx context.Context, plan domain.SubscriptionPlan) error {
	features, err := json.Marshal(plan.Features)
	if err != nil {
		return fmt.Errorf("encode plan features: %w", err)
	}
	const stmt = `
UPDATE subscription_plans
SET name = $2, description = $3, price_monthly = $4, features = $5, active = $6
WHERE id = $1`
	tag, err := r.pool.Exec(ctx, stmt, plan.ID, plan.Name, plan.Description, plan.PriceMonthly, features, plan.Active)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("update plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPlanNotFound
	}
	return nil
}

func (r *SubscriptionRepository) DeletePlan(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM subscription_plans WHERE id = $1`, id)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		if isForeignKeyViolation(err) {
			return domain.ErrSubscriptionNotFound
		}
		return fmt.Errorf("delete plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPlanNotFound
	}
	return nil
}

func (r *SubscriptionRepository) ListPlans(ctx context.Context, params app.ListParams) ([]domain.SubscriptionPlan, int, error) {
	var f filterSet
	f.search(params.Search, "name", "description")
	if active := params.Filter("active"); active != "" {
		f.eq("active", active == "true")
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM subscription_plans`+f.where(), f.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count plans: %w", err)
	}

	limit, args := f.page(params)
	query := `
SELECT id, name, description, price_monthly, features, active, created_at
FROM subscription_plans` + f.where() + ` ORDER BY created_at DESC` + limit
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()

	var plans []domain.SubscriptionPlan
	for rows.Next() {
		var (
			p        domain.SubscriptionPlan
			features []byte
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.PriceMonthly, &features, &p.Active, &p.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan plan: %w", err)
		}
		if err := json.Unmarshal(features, &p.Features); err != nil {
			return nil, 0, fmt.Errorf("decode plan features: %w", err)
		}
		plans = append(plans, p)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("iterate plans: %w", rows.Err())
	}
	return plans, total, nil
}

const subscriptionColumns = `id, user_id, plan_id, status, started_at, expires_at, created_at`

func (r *SubscriptionRepository) GetSubscription(ctx context.Context, id string) (domain.UserSubscription, error) {
	const query = `SELECT ` + subscriptionColumns + ` FROM user_subscriptions WHERE id = $1`
	var s domain.UserSubscription
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.UserID, &s.PlanID, &s.Status, &s.StartedAt, &s.ExpiresAt, &s.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.UserSubscription{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.UserSubscription{}, domain.ErrSubscriptionNotFound
		}
		return domain.UserSubscription{}, fmt.Errorf("get subscription: %w", err)
	}
	return s, nil
}

func (r *SubscriptionRepository) UpdateSubscriptionStatus(ctx context.Context, id string, status domain.SubscriptionStatus) error {
	tag, err := r.pool.Exec(ctx, `UPDATE user_subscriptions SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("update subscription status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSubscriptionNotFound
	}
	return nil
}

func (r *SubscriptionRepository) DeleteSubscription(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM user_subscriptions WHERE id = $1`, id)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("delete subscription: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSubscriptionNotFound
	}
	return nil
}

func (r *SubscriptionRepository) ListSubscriptions(ctx context.Context, params app.ListParams) ([]domain.UserSubscription, int, error) {
	var f filterSet
	f.search(params.Search, "user_id::text")
	if status := params.Filter("status"); status != "" {
		f.eq("status", status)
	}
	if planID := params.Filter("plan_id"); planID != "" {
		f.eq("plan_id", planID)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM user_subscriptions`+f.where(), f.args...).Scan(&total); err != nil {
		if isInvalidUUID(err) {
			return nil, 0, domain.ErrInvalidID
		}
		return nil, 0, fmt.Errorf("count subscriptions: %w", err)
	}

	limit, args := f.page(params)
	query := `SELECT ` + subscriptionColumns + ` FROM user_subscriptions` + f.where() + ` ORDER BY created_at DESC` + limit
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []domain.UserSubscription
	for rows.Next() {
		var s domain.UserSubscription
		if err := rows.Scan(&s.ID, &s.UserID, &s.PlanID, &s.Status, &s.StartedAt, &s.ExpiresAt, &s.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan subscription: %w", err)
		}
		subs = append(subs, s)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("iterate subscriptions: %w", rows.Err())
	}
	return subs, total, nil
}
