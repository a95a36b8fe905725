package app

import (
	"context"
	"strings"

	"github.com/cimillas/aplay-admin/internal/cache"
	"github.com/cimillas/aplay-admin/internal/domain"
)

type ProfileRepository interface {
	GetProfile(ctx context.Context, id string) (domain.Profile, error)
	UpdateProfile(ctx context.Context, profile domain.Profile) error
	DeleteProfile(ctx context.Context, id string) error
	ListProfiles(ctx context.Context, params ListParams) ([]domain.Profile, int, error)
}

type ProfileService struct {
	repo ProfileRepository
	inv  cache.Invalidator
}

func NewProfileService(repo ProfileRepository, inv cache.Invalidator) *ProfileService {
	return &ProfileService{repo: repo, inv: inv}
}

func (s *ProfileService) GetProfile(ctx context.Context, id string) (domain.Profile, error) {
	if id == "" {
		return domain.Profile{}, domain.ErrInvalidID
	}
	return s.repo.GetProfile(ctx, id)
}

type ProfileInput struct {
	FullName string
	Phone    string
	Role     string
}

// UpdateProfile edits the admin-writable fields; email is owned by the
// auth system and never changed here.
func (s *ProfileService) UpdateProfile(ctx context.Context, id string, in ProfileInput) (domain.Profile, error) {
	if id == "" {
		return domain.Profile{}, domain.ErrInvalidID
	}
	profile, err := s.repo.GetProfile(ctx, id)
	if err != nil {
		return domain.Profile{}, err
	}
	profile.FullName = strings.TrimSpace(in.FullName)
	profile.Phone = in.Phone
	if in.Role != "" {
		profile.Role = in.Role
	}
	if err := s.repo.UpdateProfile(ctx, profile); err != nil {
		return domain.Profile{}, err
	}
	if err := s.inv.Invalidate(ctx, cache.EntityProfiles); err != nil {
		return domain.Profile{}, err
	}
	return profile, nil
}

func (s *ProfileService) DeleteProfile(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidID
	}
	if err := s.repo.DeleteProfile(ctx, id); err != nil {
		return err
	}
	return s.inv.Invalidate(ctx, cache.EntityProfiles)
}

func (s *ProfileService) ListProfiles(ctx context.Context, params ListParams) ([]domain.Profile, int, error) {
	return s.repo.ListProfiles(ctx, params.Normalize())
}
