package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"

	"github.com/cimillas/aplay-admin/internal/domain"
)

type fakeZoneStore struct {
	zones map[string]domain.Zone

	deleteCalls [][]string
	updateCalls []domain.Zone
	insertCalls []domain.Zone

	failDelete      error
	failUpdateAfter int
	failUpdateErr   error
	failInsertAfter int
	failInsertErr   error
}

func newFakeZoneStore(existing ...domain.Zone) *fakeZoneStore {
	s := &fakeZoneStore{
		zones:           map[string]domain.Zone{},
		failUpdateAfter: -1,
		failInsertAfter: -1,
	}
	for _, z := range existing {
		s.zones[z.ID] = z
	}
	return s
}

func (s *fakeZoneStore) DeleteZones(_ context.Context, _ string, ids []string) error {
	if s.failDelete != nil {
		return s.failDelete
	}
	s.deleteCalls = append(s.deleteCalls, ids)
	for _, id := range ids {
		delete(s.zones, id)
	}
	return nil
}

func (s *fakeZoneStore) UpdateZone(_ context.Context, zone domain.Zone) error {
	if s.failUpdateAfter >= 0 && len(s.updateCalls) >= s.failUpdateAfter {
		return s.failUpdateErr
	}
	s.updateCalls = append(s.updateCalls, zone)
	s.zones[zone.ID] = zone
	return nil
}

func (s *fakeZoneStore) InsertZone(_ context.Context, zone domain.Zone) error {
	if s.failInsertAfter >= 0 && len(s.insertCalls) >= s.failInsertAfter {
		return s.failInsertErr
	}
	s.insertCalls = append(s.insertCalls, zone)
	s.zones[zone.ID] = zone
	return nil
}

func (s *fakeZoneStore) ListZonesByEvent(_ context.Context, eventID string) ([]domain.Zone, error) {
	var out []domain.Zone
	for _, z := range s.zones {
		if z.EventID == eventID {
			out = append(out, z)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func draft(dbID, name, price, capacity string) DraftZone {
	return DraftZone{
		LocalID:  fmt.Sprintf("local-%s-%s", dbID, name),
		DBID:     dbID,
		Existing: dbID != "",
		Name:     name,
		Price:    price,
		Capacity: capacity,
	}
}

func TestZoneReconciler_Reconcile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	const eventID = "event-1"

	t.Run("updates modified row in place instead of recreating it", func(t *testing.T) {
		store := newFakeZoneStore(domain.Zone{ID: "z1", EventID: eventID, Name: "VIP", Price: 50, Capacity: 10})
		rec := NewZoneReconciler(store)

		original := []DraftZone{draft("z1", "VIP", "50", "10")}
		current := []DraftZone{draft("z1", "VIP+", "75", "12")}

		zones, err := rec.Reconcile(ctx, eventID, original, current)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(store.deleteCalls) != 0 {
			t.Fatalf("expected no deletes, got %v", store.deleteCalls)
		}
		if len(store.insertCalls) != 0 {
			t.Fatalf("expected no inserts, got %d", len(store.insertCalls))
		}
		if len(store.updateCalls) != 1 || store.updateCalls[0].ID != "z1" {
			t.Fatalf("expected single update of z1, got %+v", store.updateCalls)
		}
		if len(zones) != 1 || zones[0].Name != "VIP+" || zones[0].Price != 75 || zones[0].Capacity != 12 {
			t.Fatalf("unexpected canonical zones: %+v", zones)
		}
	})

	t.Run("draft with cleared existing flag is not updated and its row is deleted", func(t *testing.T) {
		store := newFakeZoneStore(
			domain.Zone{ID: "z1", EventID: eventID, Name: "VIP", Price: 50, Capacity: 10},
			domain.Zone{ID: "z2", EventID: eventID, Name: "General", Price: 20, Capacity: 100},
		)
		rec := NewZoneReconciler(store)

		original := []DraftZone{
			draft("z1", "VIP", "50", "10"),
			draft("z2", "General", "20", "100"),
		}
		detached := draft("z2", "General", "20", "100")
		detached.Existing = false
		current := []DraftZone{
			draft("z1", "VIP", "50", "10"),
			detached,
		}

		zones, err := rec.Reconcile(ctx, eventID, original, current)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(store.updateCalls) != 1 || store.updateCalls[0].ID != "z1" {
			t.Fatalf("expected only z1 updated, got %+v", store.updateCalls)
		}
		if len(store.insertCalls) != 0 {
			t.Fatalf("expected no inserts, got %+v", store.insertCalls)
		}
		if len(store.deleteCalls) != 1 || len(store.deleteCalls[0]) != 1 || store.deleteCalls[0][0] != "z2" {
			t.Fatalf("expected z2 deleted, got %v", store.deleteCalls)
		}
		if len(zones) != 1 || zones[0].ID != "z1" {
			t.Fatalf("unexpected canonical zones: %+v", zones)
		}
	})

	t.Run("deletes removed rows in one batch and inserts new ones", func(t *testing.T) {
		store := newFakeZoneStore(
			domain.Zone{ID: "z1", EventID: eventID, Name: "VIP", Price: 50, Capacity: 10},
			domain.Zone{ID: "z2", EventID: eventID, Name: "General", Price: 20, Capacity: 100},
			domain.Zone{ID: "z3", EventID: eventID, Name: "Balcony", Price: 35, Capacity: 40},
		)
		rec := NewZoneReconciler(store)

		original := []DraftZone{
			draft("z1", "VIP", "50", "10"),
			draft("z2", "General", "20", "100"),
			draft("z3", "Balcony", "35", "40"),
		}
		current := []DraftZone{
			draft("z2", "General", "20", "100"),
			draft("", "Backstage", "120", "5"),
		}

		zones, err := rec.Reconcile(ctx, eventID, original, current)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(store.deleteCalls) != 1 {
			t.Fatalf("expected one batched delete, got %d", len(store.deleteCalls))
		}
		deleted := store.deleteCalls[0]
		sort.Strings(deleted)
		if len(deleted) != 2 || deleted[0] != "z1" || deleted[1] != "z3" {
			t.Fatalf("expected delete of z1 and z3, got %v", deleted)
		}
		if len(store.insertCalls) != 1 || store.insertCalls[0].Name != "Backstage" {
			t.Fatalf("expected insert of Backstage, got %+v", store.insertCalls)
		}
		if store.insertCalls[0].ID == "" {
			t.Fatalf("expected generated id on insert")
		}
		if len(zones) != 2 {
			t.Fatalf("expected 2 canonical zones, got %d", len(zones))
		}
	})

	t.Run("skips blank rows silently", func(t *testing.T) {
		store := newFakeZoneStore(domain.Zone{ID: "z1", EventID: eventID, Name: "VIP", Price: 50, Capacity: 10})
		rec := NewZoneReconciler(store)

		current := []DraftZone{
			draft("z1", "VIP", "50", "10"),
			{LocalID: "blank", Name: "  ", Price: "", Capacity: ""},
		}

		if _, err := rec.Reconcile(ctx, eventID, []DraftZone{draft("z1", "VIP", "50", "10")}, current); err != nil {
			t.Fatalf("expected blank row to be skipped, got %v", err)
		}
		if len(store.insertCalls) != 0 {
			t.Fatalf("expected no inserts for blank row, got %d", len(store.insertCalls))
		}
	})

	t.Run("returns no-valid-zones before invalid-fields when every row is bad", func(t *testing.T) {
		store := newFakeZoneStore(domain.Zone{ID: "z1", EventID: eventID, Name: "VIP", Price: 50, Capacity: 10})
		rec := NewZoneReconciler(store)

		current := []DraftZone{
			draft("z1", "VIP", "abc", "10"),
			draft("", "New", "10", "0"),
		}

		_, err := rec.Reconcile(ctx, eventID, []DraftZone{draft("z1", "VIP", "50", "10")}, current)
		if !errors.Is(err, domain.ErrNoValidZones) {
			t.Fatalf("expected ErrNoValidZones, got %v", err)
		}
		if len(store.deleteCalls)+len(store.updateCalls)+len(store.insertCalls) != 0 {
			t.Fatalf("expected no writes on validation failure")
		}
	})

	t.Run("rejects the whole edit when one non-blank row is invalid", func(t *testing.T) {
		store := newFakeZoneStore(domain.Zone{ID: "z1", EventID: eventID, Name: "VIP", Price: 50, Capacity: 10})
		rec := NewZoneReconciler(store)

		current := []DraftZone{
			draft("z1", "VIP", "50", "10"),
			draft("", "Broken", "-0.01", "5"),
		}

		_, err := rec.Reconcile(ctx, eventID, []DraftZone{draft("z1", "VIP", "50", "10")}, current)
		if !errors.Is(err, domain.ErrInvalidZoneFields) {
			t.Fatalf("expected ErrInvalidZoneFields, got %v", err)
		}
		if len(store.updateCalls) != 0 {
			t.Fatalf("expected no writes on validation failure, got %d updates", len(store.updateCalls))
		}
	})

	t.Run("requires event id", func(t *testing.T) {
		rec := NewZoneReconciler(newFakeZoneStore())
		_, err := rec.Reconcile(ctx, "", nil, []DraftZone{draft("", "VIP", "50", "10")})
		if !errors.Is(err, domain.ErrInvalidID) {
			t.Fatalf("expected ErrInvalidID, got %v", err)
		}
	})

	t.Run("first statement failure is a plain store error", func(t *testing.T) {
		store := newFakeZoneStore(domain.Zone{ID: "z1", EventID: eventID, Name: "VIP", Price: 50, Capacity: 10})
		store.failDelete = errors.New("connection reset")
		rec := NewZoneReconciler(store)

		original := []DraftZone{draft("z1", "VIP", "50", "10")}
		current := []DraftZone{draft("", "General", "20", "100")}

		_, err := rec.Reconcile(ctx, eventID, original, current)
		if err == nil {
			t.Fatalf("expected error")
		}
		var partial *PartialApplyError
		if errors.As(err, &partial) {
			t.Fatalf("expected plain error when nothing was applied, got %v", err)
		}
	})

	t.Run("mid-sequence failure reports applied statement count", func(t *testing.T) {
		store := newFakeZoneStore(
			domain.Zone{ID: "z1", EventID: eventID, Name: "VIP", Price: 50, Capacity: 10},
		)
		store.failInsertAfter = 0
		store.failInsertErr = errors.New("unique violation")
		rec := NewZoneReconciler(store)

		original := []DraftZone{draft("z1", "VIP", "50", "10")}
		current := []DraftZone{
			draft("z1", "VIP", "60", "10"),
			draft("", "Backstage", "120", "5"),
		}

		_, err := rec.Reconcile(ctx, eventID, original, current)
		var partial *PartialApplyError
		if !errors.As(err, &partial) {
			t.Fatalf("expected PartialApplyError, got %v", err)
		}
		// only the update of z1 was applied before the failing insert
		if partial.Applied != 1 {
			t.Fatalf("expected 1 applied statement, got %d", partial.Applied)
		}
		if !errors.Is(err, store.failInsertErr) {
			t.Fatalf("expected wrapped store error, got %v", err)
		}
	})

	t.Run("accepts boundary values", func(t *testing.T) {
		store := newFakeZoneStore()
		rec := NewZoneReconciler(store)

		current := []DraftZone{draft("", "Free entry", "0", "1")}
		zones, err := rec.Reconcile(ctx, eventID, nil, current)
		if err != nil {
			t.Fatalf("expected price 0 capacity 1 to be valid, got %v", err)
		}
		if len(zones) != 1 || zones[0].Price != 0 || zones[0].Capacity != 1 {
			t.Fatalf("unexpected zones: %+v", zones)
		}
	})

	t.Run("trims whitespace before validating", func(t *testing.T) {
		store := newFakeZoneStore()
		rec := NewZoneReconciler(store)

		current := []DraftZone{{
			LocalID:  "l1",
			Name:     "  VIP  ",
			Price:    " 25.50 ",
			Capacity: " 30 ",
		}}
		zones, err := rec.Reconcile(ctx, eventID, nil, current)
		if err != nil {
			t.Fatalf("expected padded values to validate, got %v", err)
		}
		if zones[0].Name != "VIP" || zones[0].Price != 25.5 || zones[0].Capacity != 30 {
			t.Fatalf("expected trimmed values, got %+v", zones[0])
		}
	})
}

func TestPlanZones_Validation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		price    string
		capacity string
		valid    bool
	}{
		{"zero price is allowed", "0", "10", true},
		{"negative price rejected", "-0.01", "10", false},
		{"non-numeric price rejected", "abc", "10", false},
		{"capacity of one is allowed", "10", "1", true},
		{"zero capacity rejected", "10", "0", false},
		{"fractional capacity rejected", "10", "2.5", false},
		{"infinite price rejected", "Inf", "10", false},
		{"nan price rejected", "NaN", "10", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := parseDraft("event-1", DraftZone{Name: "Zone", Price: tc.price, Capacity: tc.capacity})
			if ok != tc.valid {
				t.Fatalf("price=%q capacity=%q: expected valid=%v, got %v", tc.price, tc.capacity, tc.valid, ok)
			}
		})
	}

	t.Run("whitespace-only name rejected", func(t *testing.T) {
		if _, ok := parseDraft("event-1", DraftZone{Name: "   ", Price: "10", Capacity: "5"}); ok {
			t.Fatalf("expected whitespace name to be invalid")
		}
	})
}
