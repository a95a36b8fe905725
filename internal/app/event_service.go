package app

import (
	"context"
	"strings"
	"time"

	"github.com/cimillas/aplay-admin/internal/cache"
	"github.com/cimillas/aplay-admin/internal/clock"
	"github.com/cimillas/aplay-admin/internal/domain"
	"github.com/cimillas/aplay-admin/internal/notify"
)

type EventRepository interface {
	CreateEvent(ctx context.Context, event domain.Event) error
	GetEvent(ctx context.Context, id string) (domain.Event, error)
	UpdateEvent(ctx context.Context, event domain.Event) error
	DeleteEvent(ctx context.Context, id string) error
	ListEvents(ctx context.Context, params ListParams) ([]domain.Event, int, error)
	ListZonesByEvent(ctx context.Context, eventID string) ([]domain.Zone, error)
}

type EventService struct {
	repo     EventRepository
	zones    *ZoneReconciler
	clock    clock.Clock
	inv      cache.Invalidator
	notifier notify.Notifier
}

func NewEventService(repo EventRepository, zones *ZoneReconciler, clk clock.Clock, inv cache.Invalidator, notifier notify.Notifier) *EventService {
	return &EventService{
		repo:     repo,
		zones:    zones,
		clock:    clk,
		inv:      inv,
		notifier: notifier,
	}
}

type EventInput struct {
	Title       string
	Description string
	Location    string
	StartsAt    *time.Time
	EndsAt      *time.Time
	ClubID      *string
	CoverURL    string
	Featured    bool
}

func (s *EventService) CreateEvent(ctx context.Context, in EventInput) (domain.Event, error) {
	if strings.TrimSpace(in.Title) == "" {
		return domain.Event{}, domain.ErrEventTitleRequired
	}

	now := s.clock.Now()
	startsAt := now
	if in.StartsAt != nil {
		startsAt = *in.StartsAt
	}
	endsAt := startsAt
	if in.EndsAt != nil {
		endsAt = *in.EndsAt
	}

	event := domain.Event{
		ID:          newID(),
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Location:    in.Location,
		StartsAt:    startsAt,
		EndsAt:      endsAt,
		ClubID:      in.ClubID,
		CoverURL:    in.CoverURL,
		Featured:    in.Featured,
		CreatedAt:   now,
	}

	if err := s.repo.CreateEvent(ctx, event); err != nil {
		return domain.Event{}, err
	}
	if err := s.inv.Invalidate(ctx, cache.EntityEvents); err != nil {
		return domain.Event{}, err
	}
	_ = s.notifier.Notify(ctx, "event created", event.Title)
	return event, nil
}

// EventWithZones bundles an event with its current zone set for the
// edit screen.
type EventWithZones struct {
	Event domain.Event
	Zones []domain.Zone
}

func (s *EventService) GetEvent(ctx context.Context, id string) (EventWithZones, error) {
	if id == "" {
		return EventWithZones{}, domain.ErrInvalidID
	}
	event, err := s.repo.GetEvent(ctx, id)
	if err != nil {
		return EventWithZones{}, err
	}
	zones, err := s.repo.ListZonesByEvent(ctx, id)
	if err != nil {
		return EventWithZones{}, err
	}
	return EventWithZones{Event: event, Zones: zones}, nil
}

func (s *EventService) UpdateEvent(ctx context.Context, id string, in EventInput) (domain.Event, error) {
	if id == "" {
		return domain.Event{}, domain.ErrInvalidID
	}
	if strings.TrimSpace(in.Title) == "" {
		return domain.Event{}, domain.ErrEventTitleRequired
	}

	event, err := s.repo.GetEvent(ctx, id)
	if err != nil {
		return domain.Event{}, err
	}

	event.Title = strings.TrimSpace(in.Title)
	event.Description = in.Description
	event.Location = in.Location
	if in.StartsAt != nil {
		event.StartsAt = *in.StartsAt
	}
	if in.EndsAt != nil {
		event.EndsAt = *in.EndsAt
	}
	event.ClubID = in.ClubID
	event.CoverURL = in.CoverURL
	event.Featured = in.Featured

	if err := s.repo.UpdateEvent(ctx, event); err != nil {
		return domain.Event{}, err
	}
	if err := s.inv.Invalidate(ctx, cache.EntityEvents); err != nil {
		return domain.Event{}, err
	}
	return event, nil
}

func (s *EventService) DeleteEvent(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidID
	}
	event, err := s.repo.GetEvent(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteEvent(ctx, id); err != nil {
		return err
	}
	if err := s.inv.Invalidate(ctx, cache.EntityEvents); err != nil {
		return err
	}
	_ = s.notifier.Notify(ctx, "event deleted", event.Title)
	return nil
}

func (s *EventService) ListEvents(ctx context.Context, params ListParams) ([]domain.Event, int, error) {
	return s.repo.ListEvents(ctx, params.Normalize())
}

// UpdateZones replaces the event's zone set through the reconciler.
// Validation runs before the first write; a mid-sequence failure is
// surfaced as one error and the zone set may be left partially updated.
func (s *EventService) UpdateZones(ctx context.Context, eventID string, original, current []DraftZone) ([]domain.Zone, error) {
	if eventID == "" {
		return nil, domain.ErrInvalidID
	}
	if _, err := s.repo.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}
	zones, err := s.zones.Reconcile(ctx, eventID, original, current)
	if err != nil {
		return nil, err
	}
	if err := s.inv.Invalidate(ctx, cache.EntityEvents); err != nil {
		return zones, err
	}
	return zones, nil
}
