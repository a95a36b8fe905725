package postgres

import (
	"context"
	"fmt"

	"github.com/cimillas/aplay-admin/internal/app"
	"github.com/cimillas/aplay-admin/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

const eventColumns = `id, title, description, location, starts_at, ends_at, club_id, cover_url, featured, created_at`

func (r *EventRepository) CreateEvent(ctx context.Context, event domain.Event) error {
	const stmt = `
INSERT INTO events (id, title, description, location, starts_at, ends_at, club_id, cover_url, featured, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.pool.Exec(ctx, stmt,
		event.ID, event.Title, event.Description, event.Location,
		event.StartsAt, event.EndsAt, event.ClubID, event.CoverURL,
		event.Featured, event.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		if isForeignKeyViolation(err) {
			return domain.ErrVenueNotFound
		}
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (r *EventRepository) GetEvent(ctx context.Context, id string) (domain.Event, error) {
	const query = `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	var e domain.Event
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.Title, &e.Description, &e.Location,
		&e.StartsAt, &e.EndsAt, &e.ClubID, &e.CoverURL,
		&e.Featured, &e.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Event{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Event{}, domain.ErrEventNotFound
		}
		return domain.Event{}, fmt.Errorf("get event: %w", err)
	}
	return e, nil
}

func (r *EventRepository) UpdateEvent(ctx context.Context, event domain.Event) error {
	const stmt = `
UPDATE events
SET title = $2, description = $3, location = $4, starts_at = $5, ends_at = $6,
    club_id = $7, cover_url = $8, featured = $9
WHERE id = $1`
	tag, err := r.pool.Exec(ctx, stmt,
		event.ID, event.Title, event.Description, event.Location,
		event.StartsAt, event.EndsAt, event.ClubID, event.CoverURL, event.Featured,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		if isForeignKeyViolation(err) {
			return domain.ErrVenueNotFound
		}
		return fmt.Errorf("update event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

// DeleteEvent removes the event; zones cascade at the schema level.
func (r *EventRepository) DeleteEvent(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func (r *EventRepository) ListEvents(ctx context.Context, params app.ListParams) ([]domain.Event, int, error) {
	var f filterSet
	f.search(params.Search, "title", "location")
	if clubID := params.Filter("club_id"); clubID != "" {
		f.eq("club_id", clubID)
	}
	if featured := params.Filter("featured"); featured != "" {
		f.eq("featured", featured == "true")
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM events`+f.where(), f.args...).Scan(&total); err != nil {
		if isInvalidUUID(err) {
			return nil, 0, domain.ErrInvalidID
		}
		return nil, 0, fmt.Errorf("count events: %w", err)
	}

	limit, args := f.page(params)
	query := `SELECT ` + eventColumns + ` FROM events` + f.where() + ` ORDER BY created_at DESC` + limit
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var e domain.Event
		if err := rows.Scan(
			&e.ID, &e.Title, &e.Description, &e.Location,
			&e.StartsAt, &e.EndsAt, &e.ClubID, &e.CoverURL,
			&e.Featured, &e.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("iterate events: %w", rows.Err())
	}
	return events, total, nil
}

func (r *EventRepository) ListZonesByEvent(ctx context.Context, eventID string) ([]domain.Zone, error) {
	const query = `
SELECT id, event_id, name, price, capacity, description
FROM zones
WHERE event_id = $1
ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, eventID)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("list zones: %w", err)
	}
	defer rows.Close()

	var zones []domain.Zone
	for rows.Next() {
		var z domain.Zone
		if err := rows.Scan(&z.ID, &z.EventID, &z.Name, &z.Price, &z.Capacity, &z.Description); err != nil {
			return nil, fmt.Errorf("scan zone: %w", err)
		}
		zones = append(zones, z)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate zones: %w", rows.Err())
	}
	return zones, nil
}

// DeleteZones removes the given zone ids in one statement. Issued
// before updates and inserts during reconciliation.
func (r *EventRepository) DeleteZones(ctx context.Context, eventID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	const stmt = `DELETE FROM zones WHERE event_id = $1 AND id = ANY($2)`
	if _, err := r.pool.Exec(ctx, stmt, eventID, ids); err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("delete zones: %w", err)
	}
	return nil
}

func (r *EventRepository) UpdateZone(ctx context.Context, zone domain.Zone) error {
	const stmt = `
UPDATE zones
SET name = $2, price = $3, capacity = $4, description = $5
WHERE id = $1 AND event_id = $6`
	tag, err := r.pool.Exec(ctx, stmt, zone.ID, zone.Name, zone.Price, zone.Capacity, zone.Description, zone.EventID)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("update zone: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInvalidID
	}
	return nil
}

func (r *EventRepository) InsertZone(ctx context.Context, zone domain.Zone) error {
	const stmt = `
INSERT INTO zones (id, event_id, name, price, capacity, description)
VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.pool.Exec(ctx, stmt, zone.ID, zone.EventID, zone.Name, zone.Price, zone.Capacity, zone.Description)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		if isForeignKeyViolation(err) {
			return domain.ErrEventNotFound
		}
		return fmt.Errorf("insert zone: %w", err)
	}
	return nil
}
