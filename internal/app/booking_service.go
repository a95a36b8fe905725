package app

import (
	"context"
	"fmt"

	"github.com/cimillas/aplay-admin/internal/cache"
	"github.com/cimillas/aplay-admin/internal/domain"
	"github.com/cimillas/aplay-admin/internal/notify"
)

type BookingRepository interface {
	GetBooking(ctx context.Context, id string) (domain.Booking, error)
	UpdateBookingStatus(ctx context.Context, id string, status domain.BookingStatus) error
	DeleteBooking(ctx context.Context, id string) error
	ListBookings(ctx context.Context, params ListParams) ([]domain.Booking, int, error)
}

// BookingService has no create path: bookings enter through the
// consumer app and admins only inspect, re-status or remove them.
type BookingService struct {
	repo     BookingRepository
	inv      cache.Invalidator
	notifier notify.Notifier
}

func NewBookingService(repo BookingRepository, inv cache.Invalidator, notifier notify.Notifier) *BookingService {
	return &BookingService{repo: repo, inv: inv, notifier: notifier}
}

func (s *BookingService) GetBooking(ctx context.Context, id string) (domain.Booking, error) {
	if id == "" {
		return domain.Booking{}, domain.ErrInvalidID
	}
	return s.repo.GetBooking(ctx, id)
}

func (s *BookingService) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) (domain.Booking, error) {
	if id == "" {
		return domain.Booking{}, domain.ErrInvalidID
	}
	if !domain.KnownBookingStatus(status) {
		return domain.Booking{}, domain.ErrInvalidStatus
	}
	if err := s.repo.UpdateBookingStatus(ctx, id, status); err != nil {
		return domain.Booking{}, err
	}
	booking, err := s.repo.GetBooking(ctx, id)
	if err != nil {
		return domain.Booking{}, err
	}
	if err := s.inv.Invalidate(ctx, cache.EntityBookings); err != nil {
		return domain.Booking{}, err
	}
	_ = s.notifier.Notify(ctx, "booking status changed", fmt.Sprintf("%s -> %s", booking.Reference, status))
	return booking, nil
}

func (s *BookingService) DeleteBooking(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidID
	}
	if err := s.repo.DeleteBooking(ctx, id); err != nil {
		return err
	}
	return s.inv.Invalidate(ctx, cache.EntityBookings)
}

func (s *BookingService) ListBookings(ctx context.Context, params ListParams) ([]domain.Booking, int, error) {
	params = params.Normalize()
	if status := params.Filter("status"); status != "" && !domain.KnownBookingStatus(domain.BookingStatus(status)) {
		return nil, 0, domain.ErrInvalidStatus
	}
	return s.repo.ListBookings(ctx, params)
}
