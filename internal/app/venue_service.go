package app

import (
	"context"
	"strings"

	"github.com/cimillas/aplay-admin/internal/cache"
	"github.com/cimillas/aplay-admin/internal/clock"
	"github.com/cimillas/aplay-admin/internal/domain"
)

type VenueRepository interface {
	CreateVenue(ctx context.Context, venue domain.Venue) error
	GetVenue(ctx context.Context, id string) (domain.Venue, error)
	UpdateVenue(ctx context.Context, venue domain.Venue) error
	DeleteVenue(ctx context.Context, id string) error
	ListVenues(ctx context.Context, params ListParams) ([]domain.Venue, int, error)
}

type VenueService struct {
	repo  VenueRepository
	clock clock.Clock
	inv   cache.Invalidator
}

func NewVenueService(repo VenueRepository, clk clock.Clock, inv cache.Invalidator) *VenueService {
	return &VenueService{repo: repo, clock: clk, inv: inv}
}

type VenueInput struct {
	Kind        domain.VenueKind
	Name        string
	City        string
	Address     string
	Description string
	LogoURL     string
	CategoryID  *string
	Active      bool
	Featured    bool
}

func (s *VenueService) CreateVenue(ctx context.Context, in VenueInput) (domain.Venue, error) {
	if !domain.KnownVenueKind(in.Kind) {
		return domain.Venue{}, domain.ErrInvalidVenueKind
	}
	if strings.TrimSpace(in.Name) == "" {
		return domain.Venue{}, domain.ErrVenueNameRequired
	}

	venue := domain.Venue{
		ID:          newID(),
		Kind:        in.Kind,
		Name:        strings.TrimSpace(in.Name),
		City:        in.City,
		Address:     in.Address,
		Description: in.Description,
		LogoURL:     in.LogoURL,
		CategoryID:  in.CategoryID,
		Active:      in.Active,
		Featured:    in.Featured,
		CreatedAt:   s.clock.Now(),
	}

	if err := s.repo.CreateVenue(ctx, venue); err != nil {
		return domain.Venue{}, err
	}
	if err := s.inv.Invalidate(ctx, cache.EntityVenues); err != nil {
		return domain.Venue{}, err
	}
	return venue, nil
}

func (s *VenueService) GetVenue(ctx context.Context, id string) (domain.Venue, error) {
	if id == "" {
		return domain.Venue{}, domain.ErrInvalidID
	}
	return s.repo.GetVenue(ctx, id)
}

func (s *VenueService) UpdateVenue(ctx context.Context, id string, in VenueInput) (domain.Venue, error) {
	if id == "" {
		return domain.Venue{}, domain.ErrInvalidID
	}
	if strings.TrimSpace(in.Name) == "" {
		return domain.Venue{}, domain.ErrVenueNameRequired
	}

	venue, err := s.repo.GetVenue(ctx, id)
	if err != nil {
		return domain.Venue{}, err
	}

	// Kind is immutable after creation; the edit form never sends it.
	venue.Name = strings.TrimSpace(in.Name)
	venue.City = in.City
	venue.Address = in.Address
	venue.Description = in.Description
	venue.LogoURL = in.LogoURL
	venue.CategoryID = in.CategoryID
	venue.Active = in.Active
	venue.Featured = in.Featured

	if err := s.repo.UpdateVenue(ctx, venue); err != nil {
		return domain.Venue{}, err
	}
	if err := s.inv.Invalidate(ctx, cache.EntityVenues); err != nil {
		return domain.Venue{}, err
	}
	return venue, nil
}

func (s *VenueService) DeleteVenue(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidID
	}
	if err := s.repo.DeleteVenue(ctx, id); err != nil {
		return err
	}
	return s.inv.Invalidate(ctx, cache.EntityVenues)
}

func (s *VenueService) ListVenues(ctx context.Context, params ListParams) ([]domain.Venue, int, error) {
	params = params.Normalize()
	if kind := params.Filter("kind"); kind != "" && !domain.KnownVenueKind(domain.VenueKind(kind)) {
		return nil, 0, domain.ErrInvalidVenueKind
	}
	return s.repo.ListVenues(ctx, params)
}
