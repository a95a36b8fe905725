package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cimillas/aplay-admin/internal/app"
	"github.com/cimillas/aplay-admin/internal/cache"
	"github.com/cimillas/aplay-admin/internal/domain"
)

type stubVenueService struct {
	venue     domain.Venue
	venues    []domain.Venue
	err       error
	lastInput app.VenueInput
	lastList  app.ListParams
}

func (s *stubVenueService) CreateVenue(_ context.Context, in app.VenueInput) (domain.Venue, error) {
	s.lastInput = in
	return s.venue, s.err
}

func (s *stubVenueService) GetVenue(_ context.Context, _ string) (domain.Venue, error) {
	return s.venue, s.err
}

func (s *stubVenueService) UpdateVenue(_ context.Context, _ string, in app.VenueInput) (domain.Venue, error) {
	s.lastInput = in
	return s.venue, s.err
}

func (s *stubVenueService) DeleteVenue(_ context.Context, _ string) error { return s.err }

func (s *stubVenueService) ListVenues(_ context.Context, params app.ListParams) ([]domain.Venue, int, error) {
	s.lastList = params
	return s.venues, len(s.venues), s.err
}

func TestHandleVenues(t *testing.T) {
	t.Parallel()

	t.Run("kind filter reaches the service", func(t *testing.T) {
		svc := &stubVenueService{}
		req := httptest.NewRequest(http.MethodGet, "/admin/venues?kind=beach&q=sunset", nil)
		rec := httptest.NewRecorder()
		HandleVenues(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if svc.lastList.Filter("kind") != "beach" {
			t.Fatalf("expected kind filter, got %+v", svc.lastList.Filters)
		}
		if svc.lastList.Search != "sunset" {
			t.Fatalf("expected search forwarded, got %q", svc.lastList.Search)
		}
	})

	t.Run("invalid kind maps to invalid_kind", func(t *testing.T) {
		svc := &stubVenueService{err: domain.ErrInvalidVenueKind}
		req := httptest.NewRequest(http.MethodPost, "/admin/venues", strings.NewReader(`{"kind":"museum","name":"x"}`))
		rec := httptest.NewRecorder()
		HandleVenues(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"code":"invalid_kind"`) {
			t.Fatalf("expected invalid_kind code, got %s", rec.Body.String())
		}
	})

	t.Run("create forwards the kind discriminator", func(t *testing.T) {
		svc := &stubVenueService{venue: domain.Venue{ID: "v1", Kind: domain.VenuePub}}
		req := httptest.NewRequest(http.MethodPost, "/admin/venues", strings.NewReader(`{"kind":"pub","name":"The Anchor","city":"Valletta"}`))
		rec := httptest.NewRecorder()
		HandleVenues(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if svc.lastInput.Kind != domain.VenuePub || svc.lastInput.Name != "The Anchor" {
			t.Fatalf("unexpected input %+v", svc.lastInput)
		}
	})
}

func TestHandleVenueItem_Toggles(t *testing.T) {
	t.Parallel()

	cases := []struct {
		path  string
		field app.ToggleField
	}{
		{"/admin/venues/v1/active", app.FieldActive},
		{"/admin/venues/v1/featured", app.FieldFeatured},
	}

	for _, tc := range cases {
		t.Run(string(tc.field), func(t *testing.T) {
			toggler := &stubToggler{}
			req := httptest.NewRequest(http.MethodPost, tc.path, strings.NewReader(`{"current":true}`))
			rec := httptest.NewRecorder()
			HandleVenueItem(&stubVenueService{}, toggler).ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
			}
			if toggler.lastInput.Entity != cache.EntityVenues || toggler.lastInput.Field != tc.field {
				t.Fatalf("unexpected toggle input %+v", toggler.lastInput)
			}
			if !strings.Contains(rec.Body.String(), `"value":false`) {
				t.Fatalf("expected negated value, got %s", rec.Body.String())
			}
		})
	}

	t.Run("toggle rejects GET", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/venues/v1/active", nil)
		rec := httptest.NewRecorder()
		HandleVenueItem(&stubVenueService{}, &stubToggler{}).ServeHTTP(rec, req)
		if rec.Code != http.StatusMethodNotAllowed {
			t.Fatalf("expected 405, got %d", rec.Code)
		}
	})

	t.Run("delete returns 204", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/admin/venues/v1", nil)
		rec := httptest.NewRecorder()
		HandleVenueItem(&stubVenueService{}, &stubToggler{}).ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
	})

	t.Run("missing venue maps to 404", func(t *testing.T) {
		svc := &stubVenueService{err: domain.ErrVenueNotFound}
		req := httptest.NewRequest(http.MethodGet, "/admin/venues/v1", nil)
		rec := httptest.NewRecorder()
		HandleVenueItem(svc, &stubToggler{}).ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
