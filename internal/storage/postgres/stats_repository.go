package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/cimillas/aplay-admin/internal/app"
	"github.com/jackc/pgx/v5/pgxpool"
)

// StatsRepository serves the dashboard: headline counts plus raw
// creation timestamps that the service buckets into chart series.
type StatsRepository struct {
	pool *pgxpool.Pool
}

func NewStatsRepository(pool *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{pool: pool}
}

func (r *StatsRepository) Totals(ctx context.Context) (app.DashboardTotals, error) {
	const query = `
SELECT
	(SELECT COUNT(*) FROM profiles),
	(SELECT COUNT(*) FROM events),
	(SELECT COUNT(*) FROM bookings),
	(SELECT COUNT(*) FROM venues WHERE active),
	(SELECT COUNT(*) FROM concierge_requests WHERE status = 'open'),
	(SELECT COUNT(*) FROM user_subscriptions WHERE status = 'active')`
	var t app.DashboardTotals
	err := r.pool.QueryRow(ctx, query).Scan(
		&t.Users, &t.Events, &t.Bookings, &t.ActiveVenues, &t.OpenConcierge, &t.ActiveSubscriptions,
	)
	if err != nil {
		return app.DashboardTotals{}, fmt.Errorf("dashboard totals: %w", err)
	}
	return t, nil
}

func (r *StatsRepository) BookingTimes(ctx context.Context, since time.Time) ([]time.Time, error) {
	return r.createdSince(ctx, "bookings", since)
}

func (r *StatsRepository) SignupTimes(ctx context.Context, since time.Time) ([]time.Time, error) {
	return r.createdSince(ctx, "profiles", since)
}

func (r *StatsRepository) EventTimes(ctx context.Context, since time.Time) ([]time.Time, error) {
	return r.createdSince(ctx, "events", since)
}

func (r *StatsRepository) createdSince(ctx context.Context, table string, since time.Time) ([]time.Time, error) {
	query := fmt.Sprintf(`SELECT created_at FROM %s WHERE created_at >= $1`, table)
	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("timestamps from %s: %w", table, err)
	}
	defer rows.Close()

	var times []time.Time
	for rows.Next() {
		var t time.Time
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scan timestamp: %w", err)
		}
		times = append(times, t)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate timestamps: %w", rows.Err())
	}
	return times, nil
}
