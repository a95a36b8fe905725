package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cimillas/aplay-admin/internal/app"
	"github.com/cimillas/aplay-admin/internal/domain"
)

type stubEventService struct {
	event     domain.Event
	events    []domain.Event
	zones     []domain.Zone
	err       error
	zonesErr  error
	lastDraft []app.DraftZone
}

func (s *stubEventService) CreateEvent(_ context.Context, in app.EventInput) (domain.Event, error) {
	if s.err != nil {
		return domain.Event{}, s.err
	}
	ev := s.event
	ev.Title = strings.TrimSpace(in.Title)
	return ev, nil
}

func (s *stubEventService) GetEvent(_ context.Context, _ string) (app.EventWithZones, error) {
	if s.err != nil {
		return app.EventWithZones{}, s.err
	}
	return app.EventWithZones{Event: s.event, Zones: s.zones}, nil
}

func (s *stubEventService) UpdateEvent(_ context.Context, _ string, _ app.EventInput) (domain.Event, error) {
	return s.event, s.err
}

func (s *stubEventService) DeleteEvent(_ context.Context, _ string) error { return s.err }

func (s *stubEventService) ListEvents(_ context.Context, _ app.ListParams) ([]domain.Event, int, error) {
	return s.events, len(s.events), s.err
}

func (s *stubEventService) UpdateZones(_ context.Context, _ string, _, current []app.DraftZone) ([]domain.Zone, error) {
	s.lastDraft = current
	if s.zonesErr != nil {
		return nil, s.zonesErr
	}
	return s.zones, nil
}

type stubToggler struct {
	lastInput app.ToggleInput
	err       error
}

func (s *stubToggler) Toggle(_ context.Context, in app.ToggleInput) (bool, error) {
	s.lastInput = in
	if s.err != nil {
		return false, s.err
	}
	return !in.Current, nil
}

func TestHandleEvents(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 5, 1, 20, 0, 0, 0, time.UTC)

	t.Run("list wraps items in page envelope", func(t *testing.T) {
		svc := &stubEventService{events: []domain.Event{{ID: "e1", Title: "Launch", StartsAt: now, EndsAt: now, CreatedAt: now}}}

		req := httptest.NewRequest(http.MethodGet, "/admin/events?page=2&page_size=50", nil)
		rec := httptest.NewRecorder()
		HandleEvents(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		body := rec.Body.String()
		for _, want := range []string{`"total":1`, `"page":2`, `"page_size":50`, `"title":"Launch"`} {
			if !strings.Contains(body, want) {
				t.Fatalf("expected %s in body, got %s", want, body)
			}
		}
	})

	t.Run("create returns 201", func(t *testing.T) {
		svc := &stubEventService{event: domain.Event{ID: "e1", StartsAt: now, EndsAt: now, CreatedAt: now}}

		req := httptest.NewRequest(http.MethodPost, "/admin/events", strings.NewReader(`{"title":"Launch"}`))
		rec := httptest.NewRecorder()
		HandleEvents(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("blank title maps to title_required", func(t *testing.T) {
		svc := &stubEventService{err: domain.ErrEventTitleRequired}

		req := httptest.NewRequest(http.MethodPost, "/admin/events", strings.NewReader(`{"title":" "}`))
		rec := httptest.NewRecorder()
		HandleEvents(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"code":"title_required"`) {
			t.Fatalf("expected title_required code, got %s", rec.Body.String())
		}
	})

	t.Run("bad timestamp maps to invalid_timestamp", func(t *testing.T) {
		svc := &stubEventService{}

		req := httptest.NewRequest(http.MethodPost, "/admin/events", strings.NewReader(`{"title":"x","starts_at":"tomorrow"}`))
		rec := httptest.NewRecorder()
		HandleEvents(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"code":"invalid_timestamp"`) {
			t.Fatalf("expected invalid_timestamp code, got %s", rec.Body.String())
		}
	})

	t.Run("rejects unsupported method", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/admin/events", nil)
		rec := httptest.NewRecorder()
		HandleEvents(&stubEventService{}).ServeHTTP(rec, req)

		if rec.Code != http.StatusMethodNotAllowed {
			t.Fatalf("expected 405, got %d", rec.Code)
		}
	})
}

func TestHandleEventItem_Zones(t *testing.T) {
	t.Parallel()

	body := `{
		"original":[{"local_id":"l1","db_id":"z1","existing":true,"name":"VIP","price":"50","capacity":"10","description":""}],
		"zones":[
			{"local_id":"l1","db_id":"z1","existing":true,"name":"VIP+","price":"75","capacity":"12","description":""},
			{"local_id":"l2","db_id":"","existing":false,"name":"General","price":"20","capacity":"200","description":""}
		]
	}`

	t.Run("put reconciles and returns canonical zones", func(t *testing.T) {
		svc := &stubEventService{zones: []domain.Zone{
			{ID: "z1", EventID: "e1", Name: "VIP+", Price: 75, Capacity: 12},
			{ID: "z2", EventID: "e1", Name: "General", Price: 20, Capacity: 200},
		}}

		req := httptest.NewRequest(http.MethodPut, "/admin/events/e1/zones", strings.NewReader(body))
		rec := httptest.NewRecorder()
		HandleEventItem(svc, &stubToggler{}).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if len(svc.lastDraft) != 2 || svc.lastDraft[0].Price != "75" {
			t.Fatalf("expected drafts forwarded verbatim, got %+v", svc.lastDraft)
		}
		if !strings.Contains(rec.Body.String(), `"name":"General"`) {
			t.Fatalf("expected canonical zones in response, got %s", rec.Body.String())
		}
	})

	t.Run("no valid zones maps to 400 with code", func(t *testing.T) {
		svc := &stubEventService{zonesErr: domain.ErrNoValidZones}

		req := httptest.NewRequest(http.MethodPut, "/admin/events/e1/zones", strings.NewReader(body))
		rec := httptest.NewRecorder()
		HandleEventItem(svc, &stubToggler{}).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"code":"no_valid_zones"`) {
			t.Fatalf("expected no_valid_zones code, got %s", rec.Body.String())
		}
	})

	t.Run("partial apply maps to 500 with code", func(t *testing.T) {
		svc := &stubEventService{zonesErr: &app.PartialApplyError{Applied: 2, Err: context.DeadlineExceeded}}

		req := httptest.NewRequest(http.MethodPut, "/admin/events/e1/zones", strings.NewReader(body))
		rec := httptest.NewRecorder()
		HandleEventItem(svc, &stubToggler{}).ServeHTTP(rec, req)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"code":"partial_zone_update"`) {
			t.Fatalf("expected partial_zone_update code, got %s", rec.Body.String())
		}
	})

	t.Run("get requires a zones-only path on PUT", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/events/e1/zones", nil)
		rec := httptest.NewRecorder()
		HandleEventItem(&stubEventService{}, &stubToggler{}).ServeHTTP(rec, req)

		if rec.Code != http.StatusMethodNotAllowed {
			t.Fatalf("expected 405, got %d", rec.Code)
		}
	})
}

func TestHandleEventItem_Featured(t *testing.T) {
	t.Parallel()

	toggler := &stubToggler{}
	req := httptest.NewRequest(http.MethodPost, "/admin/events/e1/featured", strings.NewReader(`{"current":false}`))
	rec := httptest.NewRecorder()
	HandleEventItem(&stubEventService{}, toggler).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if toggler.lastInput.Field != app.FieldFeatured || toggler.lastInput.ID != "e1" {
		t.Fatalf("unexpected toggle input %+v", toggler.lastInput)
	}
	if !strings.Contains(rec.Body.String(), `"value":true`) {
		t.Fatalf("expected written value in response, got %s", rec.Body.String())
	}
}

func TestHandleEventItem_NotFoundPaths(t *testing.T) {
	t.Parallel()

	for _, path := range []string{"/admin/events/", "/admin/events/e1/zones/extra", "/admin/events/e1/unknown"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		HandleEventItem(&stubEventService{}, &stubToggler{}).ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("path %s: expected 404, got %d", path, rec.Code)
		}
	}
}
