package app

import (
	"context"
	"strings"

	"github.com/cimillas/aplay-admin/internal/cache"
	"github.com/cimillas/aplay-admin/internal/clock"
	"github.com/cimillas/aplay-admin/internal/domain"
)

type SubscriptionRepository interface {
	CreatePlan(ctx context.Context, plan domain.SubscriptionPlan) error
	GetPlan(ctx context.Context, id string) (domain.SubscriptionPlan, error)
	UpdatePlan(ctx context.Context, plan domain.SubscriptionPlan) error
	DeletePlan(ctx context.Context, id string) error
	ListPlans(ctx context.Context, params ListParams) ([]domain.SubscriptionPlan, int, error)

	GetSubscription(ctx context.Context, id string) (domain.UserSubscription, error)
	UpdateSubscriptionStatus(ctx context.Context, id string, status domain.SubscriptionStatus) error
	DeleteSubscription(ctx context.Context, id string) error
	ListSubscriptions(ctx context.Context, params ListParams) ([]domain.UserSubscription, int, error)
}

// SubscriptionService manages plans (with their JSON feature object)
// and the user subscriptions attached to them.
type SubscriptionService struct {
	repo  SubscriptionRepository
	clock clock.Clock
	inv   cache.Invalidator
}

func NewSubscriptionService(repo SubscriptionRepository, clk clock.Clock, inv cache.Invalidator) *SubscriptionService {
	return &SubscriptionService{repo: repo, clock: clk, inv: inv}
}

type PlanInput struct {
	Name         string
	Description  string
	PriceMonthly float64
	Features     domain.PlanFeatures
	Active       bool
}

func (s *SubscriptionService) CreatePlan(ctx context.Context, in PlanInput) (domain.SubscriptionPlan, error) {
	if strings.TrimSpace(in.Name) == "" {
		return domain.SubscriptionPlan{}, domain.ErrPlanNameRequired
	}
	if in.PriceMonthly < 0 {
		return domain.SubscriptionPlan{}, domain.ErrInvalidPrice
	}
	plan := domain.SubscriptionPlan{
		ID:           newID(),
		Name:         strings.TrimSpace(in.Name),
		Description:  in.Description,
		PriceMonthly: in.PriceMonthly,
		Features:     in.Features,
		Active:       in.Active,
		CreatedAt:    s.clock.Now(),
	}
	if err := s.repo.CreatePlan(ctx, plan); err != nil {
		return domain.SubscriptionPlan{}, err
	}
	if err := s.inv.Invalidate(ctx, cache.EntityPlans); err != nil {
		return domain.SubscriptionPlan{}, err
	}
	return plan, nil
}

func (s *SubscriptionService) GetPlan(ctx context.Context, id string) (domain.SubscriptionPlan, error) {
	if id == "" {
		return domain.SubscriptionPlan{}, domain.ErrInvalidID
	}
	return s.repo.GetPlan(ctx, id)
}

func (s *SubscriptionService) UpdatePlan(ctx context.Context, id string, in PlanInput) (domain.SubscriptionPlan, error) {
	if id == "" {
		return domain.SubscriptionPlan{}, domain.ErrInvalidID
	}
	if strings.TrimSpace(in.Name) == "" {
		return domain.SubscriptionPlan{}, domain.ErrPlanNameRequired
	}
	if in.PriceMonthly < 0 {
		return domain.SubscriptionPlan{}, domain.ErrInvalidPrice
	}
	plan, err := s.repo.GetPlan(ctx, id)
	if err != nil {
		return domain.SubscriptionPlan{}, err
	}
	plan.Name = strings.TrimSpace(in.Name)
	plan.Description = in.Description
	plan.PriceMonthly = in.PriceMonthly
	plan.Features = in.Features
	plan.Active = in.Active
	if err := s.repo.UpdatePlan(ctx, plan); err != nil {
		return domain.SubscriptionPlan{}, err
	}
	if err := s.inv.Invalidate(ctx, cache.EntityPlans); err != nil {
		return domain.SubscriptionPlan{}, err
	}
	return plan, nil
}

func (s *SubscriptionService) DeletePlan(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidID
	}
	if err := s.repo.DeletePlan(ctx, id); err != nil {
		return err
	}
	return s.inv.Invalidate(ctx, cache.EntityPlans)
}

func (s *SubscriptionService) ListPlans(ctx context.Context, params ListParams) ([]domain.SubscriptionPlan, int, error) {
	return s.repo.ListPlans(ctx, params.Normalize())
}

func (s *SubscriptionService) GetSubscription(ctx context.Context, id string) (domain.UserSubscription, error) {
	if id == "" {
		return domain.UserSubscription{}, domain.ErrInvalidID
	}
	return s.repo.GetSubscription(ctx, id)
}

// CancelSubscription moves a subscription to cancelled. Already
// cancelled subscriptions stay cancelled.
func (s *SubscriptionService) CancelSubscription(ctx context.Context, id string) (domain.UserSubscription, error) {
	if id == "" {
		return domain.UserSubscription{}, domain.ErrInvalidID
	}
	if err := s.repo.UpdateSubscriptionStatus(ctx, id, domain.SubscriptionStatusCancelled); err != nil {
		return domain.UserSubscription{}, err
	}
	sub, err := s.repo.GetSubscription(ctx, id)
	if err != nil {
		return domain.UserSubscription{}, err
	}
	if err := s.inv.Invalidate(ctx, cache.EntitySubscriptions); err != nil {
		return domain.UserSubscription{}, err
	}
	return sub, nil
}

func (s *SubscriptionService) DeleteSubscription(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidID
	}
	if err := s.repo.DeleteSubscription(ctx, id); err != nil {
		return err
	}
	return s.inv.Invalidate(ctx, cache.EntitySubscriptions)
}

func (s *SubscriptionService) ListSubscriptions(ctx context.Context, params ListParams) ([]domain.UserSubscription, int, error) {
	return s.repo.ListSubscriptions(ctx, params.Normalize())
}
