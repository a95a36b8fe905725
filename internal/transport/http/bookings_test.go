package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cimillas/aplay-admin/internal/app"
	"github.com/cimillas/aplay-admin/internal/domain"
)

type stubBookingService struct {
	booking    domain.Booking
	bookings   []domain.Booking
	err        error
	lastStatus domain.BookingStatus
}

func (s *stubBookingService) GetBooking(_ context.Context, _ string) (domain.Booking, error) {
	return s.booking, s.err
}

func (s *stubBookingService) UpdateStatus(_ context.Context, _ string, status domain.BookingStatus) (domain.Booking, error) {
	s.lastStatus = status
	if s.err != nil {
		return domain.Booking{}, s.err
	}
	b := s.booking
	b.Status = status
	return b, nil
}

func (s *stubBookingService) DeleteBooking(_ context.Context, _ string) error { return s.err }

func (s *stubBookingService) ListBookings(_ context.Context, _ app.ListParams) ([]domain.Booking, int, error) {
	return s.bookings, len(s.bookings), s.err
}

func TestHandleBookings(t *testing.T) {
	t.Parallel()

	t.Run("collection is read-only", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/admin/bookings", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		HandleBookings(&stubBookingService{}).ServeHTTP(rec, req)
		if rec.Code != http.StatusMethodNotAllowed {
			t.Fatalf("expected 405, got %d", rec.Code)
		}
	})
}

func TestHandleBookingItem_Status(t *testing.T) {
	t.Parallel()

	t.Run("put status forwards the new status", func(t *testing.T) {
		svc := &stubBookingService{booking: domain.Booking{ID: "b1", Status: domain.BookingStatusPending}}
		req := httptest.NewRequest(http.MethodPut, "/admin/bookings/b1/status", strings.NewReader(`{"status":"confirmed"}`))
		rec := httptest.NewRecorder()
		HandleBookingItem(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if svc.lastStatus != domain.BookingStatusConfirmed {
			t.Fatalf("expected confirmed forwarded, got %q", svc.lastStatus)
		}
		if !strings.Contains(rec.Body.String(), `"status":"confirmed"`) {
			t.Fatalf("expected updated status in body, got %s", rec.Body.String())
		}
	})

	t.Run("unknown status maps to invalid_status", func(t *testing.T) {
		svc := &stubBookingService{err: domain.ErrInvalidStatus}
		req := httptest.NewRequest(http.MethodPut, "/admin/bookings/b1/status", strings.NewReader(`{"status":"teleported"}`))
		rec := httptest.NewRecorder()
		HandleBookingItem(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"code":"invalid_status"`) {
			t.Fatalf("expected invalid_status code, got %s", rec.Body.String())
		}
	})

	t.Run("missing booking maps to 404", func(t *testing.T) {
		svc := &stubBookingService{err: domain.ErrBookingNotFound}
		req := httptest.NewRequest(http.MethodGet, "/admin/bookings/b1", nil)
		rec := httptest.NewRecorder()
		HandleBookingItem(svc).ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
