package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/cimillas/aplay-admin/internal/cache"
	"github.com/cimillas/aplay-admin/internal/clock"
	"github.com/cimillas/aplay-admin/internal/domain"
	"github.com/cimillas/aplay-admin/internal/notify"
)

type LoyaltyRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error

	CreateTier(ctx context.Context, tier domain.MembershipTier) error
	UpdateTier(ctx context.Context, tier domain.MembershipTier) error
	DeleteTier(ctx context.Context, id string) error
	ListTiers(ctx context.Context) ([]domain.MembershipTier, error)

	GetPoints(ctx context.Context, userID string) (domain.UserPoints, error)
	UpsertPoints(ctx context.Context, points domain.UserPoints) error
	InsertTransaction(ctx context.Context, tx domain.PointTransaction) error
	ListPoints(ctx context.Context, params ListParams) ([]domain.UserPoints, int, error)
	ListTransactions(ctx context.Context, userID string, params ListParams) ([]domain.PointTransaction, int, error)
}

// LoyaltyService manages membership tiers and the points ledger. A
// points adjustment writes the transaction row and the new balance
// inside one database transaction.
type LoyaltyService struct {
	repo     LoyaltyRepository
	clock    clock.Clock
	inv      cache.Invalidator
	notifier notify.Notifier
}

func NewLoyaltyService(repo LoyaltyRepository, clk clock.Clock, inv cache.Invalidator, notifier notify.Notifier) *LoyaltyService {
	return &LoyaltyService{repo: repo, clock: clk, inv: inv, notifier: notifier}
}

type TierInput struct {
	Name      string
	Threshold int
	Perks     string
}

func (s *LoyaltyService) CreateTier(ctx context.Context, in TierInput) (domain.MembershipTier, error) {
	if strings.TrimSpace(in.Name) == "" {
		return domain.MembershipTier{}, domain.ErrTierNameRequired
	}
	if in.Threshold < 0 {
		return domain.MembershipTier{}, domain.ErrInvalidThreshold
	}
	tier := domain.MembershipTier{
		ID:        newID(),
		Name:      strings.TrimSpace(in.Name),
		Threshold: in.Threshold,
		Perks:     in.Perks,
		CreatedAt: s.clock.Now(),
	}
	if err := s.repo.CreateTier(ctx, tier); err != nil {
		return domain.MembershipTier{}, err
	}
	if err := s.inv.Invalidate(ctx, cache.EntityLoyalty); err != nil {
		return domain.MembershipTier{}, err
	}
	return tier, nil
}

func (s *LoyaltyService) UpdateTier(ctx context.Context, id string, in TierInput) (domain.MembershipTier, error) {
	if id == "" {
		return domain.MembershipTier{}, domain.ErrInvalidID
	}
	if strings.TrimSpace(in.Name) == "" {
		return domain.MembershipTier{}, domain.ErrTierNameRequired
	}
	if in.Threshold < 0 {
		return domain.MembershipTier{}, domain.ErrInvalidThreshold
	}
	tier := domain.MembershipTier{
		ID:        id,
		Name:      strings.TrimSpace(in.Name),
		Threshold: in.Threshold,
		Perks:     in.Perks,
	}
	if err := s.repo.UpdateTier(ctx, tier); err != nil {
		return domain.MembershipTier{}, err
	}
	if err := s.inv.Invalidate(ctx, cache.EntityLoyalty); err != nil {
		return domain.MembershipTier{}, err
	}
	return tier, nil
}

func (s *LoyaltyService) DeleteTier(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidID
	}
	if err := s.repo.DeleteTier(ctx, id); err != nil {
		return err
	}
	return s.inv.Invalidate(ctx, cache.EntityLoyalty)
}

func (s *LoyaltyService) ListTiers(ctx context.Context) ([]domain.MembershipTier, error) {
	return s.repo.ListTiers(ctx)
}

type AdjustPointsInput struct {
	UserID string
	Delta  int
	Reason string
}

// AdjustPoints applies a manual balance change. The transaction row and
// the balance update commit or roll back together.
func (s *LoyaltyService) AdjustPoints(ctx context.Context, in AdjustPointsInput) (domain.UserPoints, error) {
	if in.UserID == "" {
		return domain.UserPoints{}, domain.ErrInvalidID
	}
	if in.Delta == 0 {
		return domain.UserPoints{}, domain.ErrInvalidPointsDelta
	}

	now := s.clock.Now()
	var result domain.UserPoints

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		points, err := s.repo.GetPoints(txCtx, in.UserID)
		if err != nil {
			return err
		}
		points.UserID = in.UserID
		points.Balance += in.Delta
		points.UpdatedAt = now

		if err := s.repo.InsertTransaction(txCtx, domain.PointTransaction{
			ID:        newID(),
			UserID:    in.UserID,
			Delta:     in.Delta,
			Reason:    in.Reason,
			CreatedAt: now,
		}); err != nil {
			return err
		}
		if err := s.repo.UpsertPoints(txCtx, points); err != nil {
			return err
		}
		result = points
		return nil
	})
	if err != nil {
		return domain.UserPoints{}, err
	}

	if err := s.inv.Invalidate(ctx, cache.EntityLoyalty); err != nil {
		return result, err
	}
	_ = s.notifier.Notify(ctx, "points adjusted", fmt.Sprintf("user %s %+d", in.UserID, in.Delta))
	return result, nil
}

func (s *LoyaltyService) ListPoints(ctx context.Context, params ListParams) ([]domain.UserPoints, int, error) {
	return s.repo.ListPoints(ctx, params.Normalize())
}

func (s *LoyaltyService) ListTransactions(ctx context.Context, userID string, params ListParams) ([]domain.PointTransaction, int, error) {
	if userID == "" {
		return nil, 0, domain.ErrInvalidID
	}
	return s.repo.ListTransactions(ctx, userID, params.Normalize())
}
