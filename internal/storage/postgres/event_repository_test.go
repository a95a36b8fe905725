package postgres_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/cimillas/aplay-admin/internal/app"
	"github.com/cimillas/aplay-admin/internal/domain"
	"github.com/cimillas/aplay-admin/internal/storage/postgres"
	"github.com/cimillas/aplay-admin/internal/testutil"
	"github.com/google/uuid"
)

func TestEventRepository_ZoneOps(t *testing.T) {
	pool := testutil.NewTestPool(t)
	ctx := context.Background()
	testutil.ApplyMigrations(t, ctx, pool)
	testutil.TruncateAll(t, ctx, pool)

	repo := postgres.NewEventRepository(pool)
	eventID := testutil.InsertEvent(t, ctx, pool, "Zone Ops Night")

	vip := testutil.InsertZone(t, ctx, pool, eventID, domain.Zone{Name: "VIP", Price: 50, Capacity: 10})
	gen := testutil.InsertZone(t, ctx, pool, eventID, domain.Zone{Name: "General", Price: 20, Capacity: 100})

	t.Run("update modifies in place", func(t *testing.T) {
		err := repo.UpdateZone(ctx, domain.Zone{ID: vip, EventID: eventID, Name: "VIP+", Price: 75, Capacity: 12})
		if err != nil {
			t.Fatalf("update zone: %v", err)
		}
		zones, err := repo.ListZonesByEvent(ctx, eventID)
		if err != nil {
			t.Fatalf("list zones: %v", err)
		}
		if len(zones) != 2 {
			t.Fatalf("expected 2 zones, got %d", len(zones))
		}
		if zones[0].ID != vip || zones[0].Name != "VIP+" {
			t.Fatalf("expected vip row updated in place, got %+v", zones[0])
		}
	})

	t.Run("update of zone from another event affects nothing", func(t *testing.T) {
		otherEvent := testutil.InsertEvent(t, ctx, pool, "Other Night")
		err := repo.UpdateZone(ctx, domain.Zone{ID: vip, EventID: otherEvent, Name: "Stolen", Price: 1, Capacity: 1})
		if !errors.Is(err, domain.ErrInvalidID) {
			t.Fatalf("expected ErrInvalidID for cross-event update, got %v", err)
		}
	})

	t.Run("batched delete removes only the given ids", func(t *testing.T) {
		extra := testutil.InsertZone(t, ctx, pool, eventID, domain.Zone{Name: "Balcony", Price: 35, Capacity: 40})
		if err := repo.DeleteZones(ctx, eventID, []string{gen, extra}); err != nil {
			t.Fatalf("delete zones: %v", err)
		}
		zones, err := repo.ListZonesByEvent(ctx, eventID)
		if err != nil {
			t.Fatalf("list zones: %v", err)
		}
		if len(zones) != 1 || zones[0].ID != vip {
			t.Fatalf("expected only vip to survive, got %+v", zones)
		}
	})

	t.Run("insert rejects unknown event", func(t *testing.T) {
		err := repo.InsertZone(ctx, domain.Zone{
			ID: uuid.NewString(), EventID: uuid.NewString(), Name: "Orphan", Price: 5, Capacity: 5,
		})
		if !errors.Is(err, domain.ErrEventNotFound) {
			t.Fatalf("expected ErrEventNotFound, got %v", err)
		}
	})

	t.Run("deleting the event cascades to zones", func(t *testing.T) {
		if err := repo.DeleteEvent(ctx, eventID); err != nil {
			t.Fatalf("delete event: %v", err)
		}
		var count int
		if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM zones WHERE event_id = $1`, eventID).Scan(&count); err != nil {
			t.Fatalf("count zones: %v", err)
		}
		if count != 0 {
			t.Fatalf("expected cascade delete, %d zones remain", count)
		}
	})
}

func TestEventRepository_ListEvents_Pagination(t *testing.T) {
	pool := testutil.NewTestPool(t)
	ctx := context.Background()
	testutil.ApplyMigrations(t, ctx, pool)
	testutil.TruncateAll(t, ctx, pool)

	repo := postgres.NewEventRepository(pool)

	for i := 0; i < 25; i++ {
		event := domain.Event{
			ID:        uuid.NewString(),
			Title:     fmt.Sprintf("Event %02d", i),
			StartsAt:  time.Now().UTC(),
			EndsAt:    time.Now().UTC().Add(2 * time.Hour),
			CreatedAt: time.Now().UTC().Add(time.Duration(i) * time.Second),
		}
		if err := repo.CreateEvent(ctx, event); err != nil {
			t.Fatalf("create event %d: %v", i, err)
		}
	}

	page1, total, err := repo.ListEvents(ctx, app.ListParams{Page: 1, PageSize: 10}.Normalize())
	if err != nil {
		t.Fatalf("list page 1: %v", err)
	}
	if total != 25 {
		t.Fatalf("expected total 25, got %d", total)
	}
	if len(page1) != 10 {
		t.Fatalf("expected 10 rows on page 1, got %d", len(page1))
	}

	page2, _, err := repo.ListEvents(ctx, app.ListParams{Page: 2, PageSize: 10}.Normalize())
	if err != nil {
		t.Fatalf("list page 2: %v", err)
	}
	page3, _, err := repo.ListEvents(ctx, app.ListParams{Page: 3, PageSize: 10}.Normalize())
	if err != nil {
		t.Fatalf("list page 3: %v", err)
	}
	if len(page3) != 5 {
		t.Fatalf("expected 5 rows on the last page, got %d", len(page3))
	}

	seen := map[string]bool{}
	for _, page := range [][]domain.Event{page1, page2, page3} {
		for _, ev := range page {
			if seen[ev.ID] {
				t.Fatalf("event %s appeared on two pages", ev.ID)
			}
			seen[ev.ID] = true
		}
	}
	if len(seen) != 25 {
		t.Fatalf("expected pages to cover all 25 events, got %d", len(seen))
	}

	// newest first
	if page1[0].Title != "Event 24" {
		t.Fatalf("expected newest event first, got %q", page1[0].Title)
	}

	t.Run("search narrows by title", func(t *testing.T) {
		rows, total, err := repo.ListEvents(ctx, app.ListParams{Search: "event 07", Page: 1, PageSize: 10}.Normalize())
		if err != nil {
			t.Fatalf("search: %v", err)
		}
		if total != 1 || len(rows) != 1 || rows[0].Title != "Event 07" {
			t.Fatalf("expected case-insensitive title match, got total=%d rows=%+v", total, rows)
		}
	})
}
