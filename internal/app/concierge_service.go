package app

import (
	"context"
	"fmt"

	"github.com/cimillas/aplay-admin/internal/cache"
	"github.com/cimillas/aplay-admin/internal/domain"
	"github.com/cimillas/aplay-admin/internal/notify"
)

type ConciergeRepository interface {
	GetRequest(ctx context.Context, id string) (domain.ConciergeRequest, error)
	UpdateRequest(ctx context.Context, request domain.ConciergeRequest) error
	DeleteRequest(ctx context.Context, id string) error
	ListRequests(ctx context.Context, params ListParams) ([]domain.ConciergeRequest, int, error)
}

// ConciergeService handles concierge requests filed from the consumer
// app; admins triage them through statuses and assignees.
type ConciergeService struct {
	repo     ConciergeRepository
	inv      cache.Invalidator
	notifier notify.Notifier
}

func NewConciergeService(repo ConciergeRepository, inv cache.Invalidator, notifier notify.Notifier) *ConciergeService {
	return &ConciergeService{repo: repo, inv: inv, notifier: notifier}
}

func (s *ConciergeService) GetRequest(ctx context.Context, id string) (domain.ConciergeRequest, error) {
	if id == "" {
		return domain.ConciergeRequest{}, domain.ErrInvalidID
	}
	return s.repo.GetRequest(ctx, id)
}

type ConciergeUpdateInput struct {
	Status     domain.ConciergeStatus
	AssigneeID *string
	Resolution string
}

func (s *ConciergeService) UpdateRequest(ctx context.Context, id string, in ConciergeUpdateInput) (domain.ConciergeRequest, error) {
	if id == "" {
		return domain.ConciergeRequest{}, domain.ErrInvalidID
	}
	if !domain.KnownConciergeStatus(in.Status) {
		return domain.ConciergeRequest{}, domain.ErrInvalidStatus
	}
	request, err := s.repo.GetRequest(ctx, id)
	if err != nil {
		return domain.ConciergeRequest{}, err
	}

	statusChanged := request.Status != in.Status
	request.Status = in.Status
	request.AssigneeID = in.AssigneeID
	request.Resolution = in.Resolution

	if err := s.repo.UpdateRequest(ctx, request); err != nil {
		return domain.ConciergeRequest{}, err
	}
	if err := s.inv.Invalidate(ctx, cache.EntityConcierge); err != nil {
		return domain.ConciergeRequest{}, err
	}
	if statusChanged {
		_ = s.notifier.Notify(ctx, "concierge request updated", fmt.Sprintf("%s -> %s", request.Subject, request.Status))
	}
	return request, nil
}

func (s *ConciergeService) DeleteRequest(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidID
	}
	if err := s.repo.DeleteRequest(ctx, id); err != nil {
		return err
	}
	return s.inv.Invalidate(ctx, cache.EntityConcierge)
}

func (s *ConciergeService) ListRequests(ctx context.Context, params ListParams) ([]domain.ConciergeRequest, int, error) {
	params = params.Normalize()
	if status := params.Filter("status"); status != "" && !domain.KnownConciergeStatus(domain.ConciergeStatus(status)) {
		return nil, 0, domain.ErrInvalidStatus
	}
	return s.repo.ListRequests(ctx, params)
}
