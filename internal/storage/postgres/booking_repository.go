package postgres

import (
	"context"
	"fmt"

	"github.com/cimillas/aplay-admin/internal/app"
	"github.com/cimillas/aplay-admin/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

const bookingColumns = `id, reference, event_id, zone_id, user_id, customer_name, quantity, total_price, status, created_at`

func (r *BookingRepository) GetBooking(ctx context.Context, id string) (domain.Booking, error) {
	const query = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	var b domain.Booking
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.Reference, &b.EventID, &b.ZoneID, &b.UserID,
		&b.CustomerName, &b.Quantity, &b.TotalPrice, &b.Status, &b.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Booking{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Booking{}, domain.ErrBookingNotFound
		}
		return domain.Booking{}, fmt.Errorf("get booking: %w", err)
	}
	return b, nil
}

func (r *BookingRepository) UpdateBookingStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	tag, err := r.pool.Exec(ctx, `UPDATE bookings SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("update booking status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

func (r *BookingRepository) DeleteBooking(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("delete booking: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

func (r *BookingRepository) ListBookings(ctx context.Context, params app.ListParams) ([]domain.Booking, int, error) {
	var f filterSet
	f.search(params.Search, "customer_name", "reference")
	if status := params.Filter("status"); status != "" {
		f.eq("status", status)
	}
	if eventID := params.Filter("event_id"); eventID != "" {
		f.eq("event_id", eventID)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM bookings`+f.where(), f.args...).Scan(&total); err != nil {
		if isInvalidUUID(err) {
			return nil, 0, domain.ErrInvalidID
		}
		return nil, 0, fmt.Errorf("count bookings: %w", err)
	}

	limit, args := f.page(params)
	query := `SELECT ` + bookingColumns + ` FROM bookings` + f.where() + ` ORDER BY created_at DESC` + limit
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(
			&b.ID, &b.Reference, &b.EventID, &b.ZoneID, &b.UserID,
			&b.CustomerName, &b.Quantity, &b.TotalPrice, &b.Status, &b.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("iterate bookings: %w", rows.Err())
	}
	return bookings, total, nil
}
