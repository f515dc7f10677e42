package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"brandexpo/internal/domain"
)

type proposalService struct {
	proposalRepo   domain.CounterProposalRepository
	contextTimeout time.Duration
}

// NewCounterProposalService creates a CounterProposalService backed by the given repository.
func NewCounterProposalService(proposalRepo domain.CounterProposalRepository, timeout time.Duration) domain.CounterProposalService {
	return &proposalService{
		proposalRepo:   proposalRepo,
		contextTimeout: timeout,
	}
}

func (s *proposalService) SubmitProposal(ctx context.Context, actor domain.Actor, p *domain.CounterProposal) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if p.BrandName == "" || p.Description == "" {
		return fmt.Errorf("%w: brand name and description are required", domain.ErrInvalidInput)
	}
	p.UserID = actor.ID
	p.Status = domain.ProposalStatusPending
	if p.SubmittedAt.IsZero() {
		p.SubmittedAt = time.Now()
	}
	if err := s.proposalRepo.Create(ctx, p); err != nil {
		return fmt.Errorf("create proposal: %w", err)
	}
	return nil
}

// GetProposalByID is visible to the owner and to admins.
func (s *proposalService) GetProposalByID(ctx context.Context, actor domain.Actor, id string) (*domain.CounterProposal, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	p, err := s.proposalRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get proposal: %w", err)
	}
	if p.UserID != actor.ID && !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return p, nil
}

func (s *proposalService) ListMyProposals(ctx context.Context, actor domain.Actor) ([]*domain.CounterProposal, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	proposals, err := s.proposalRepo.ListByUserID(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("list proposals: %w", err)
	}
	if proposals == nil {
		proposals = []*domain.CounterProposal{}
	}
	return proposals, nil
}

func (s *proposalService) ListAllProposals(ctx context.Context, actor domain.Actor, params domain.PaginationParams) ([]*domain.CounterProposal, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !actor.IsAdmin() {
		return nil, 0, domain.ErrForbidden
	}
	proposals, total, err := s.proposalRepo.ListAll(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list proposals: %w", err)
	}
	return proposals, total, nil
}

// UpdateProposal lets the owner edit a proposal while it is still pending.
func (s *proposalService) UpdateProposal(ctx context.Context, actor domain.Actor, id string, upd domain.ProposalUpdate) (*domain.CounterProposal, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	current, err := s.proposalRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get proposal: %w", err)
	}
	if current.UserID != actor.ID {
		return nil, domain.ErrForbidden
	}
	if current.Status != domain.ProposalStatusPending {
		return nil, fmt.Errorf("%w: proposal is already resolved", domain.ErrInvalidInput)
	}
	updated, err := s.proposalRepo.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update proposal: %w", err)
	}
	return updated, nil
}

// UpdateProposalStatus enforces the forward-only state machine:
// pending may move to accepted or rejected; a resolved proposal accepts only
// an idempotent rewrite of its current value.
func (s *proposalService) UpdateProposalStatus(ctx context.Context, actor domain.Actor, id, status string) (*domain.CounterProposal, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	switch status {
	case domain.ProposalStatusAccepted, domain.ProposalStatusRejected:
	default:
		return nil, fmt.Errorf("%w: status must be %q or %q", domain.ErrInvalidInput,
			domain.ProposalStatusAccepted, domain.ProposalStatusRejected)
	}

	current, err := s.proposalRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get proposal: %w", err)
	}
	if current.Status != domain.ProposalStatusPending && current.Status != status {
		return nil, domain.ErrInvalidTransition
	}

	updated, err := s.proposalRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update proposal status: %w", err)
	}
	return updated, nil
}

// DeleteProposal is allowed for the owner and for admins.
func (s *proposalService) DeleteProposal(ctx context.Context, actor domain.Actor, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	current, err := s.proposalRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get proposal: %w", err)
	}
	if current.UserID != actor.ID && !actor.IsAdmin() {
		return domain.ErrForbidden
	}
	if err := s.proposalRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete proposal: %w", err)
	}
	return nil
}

func (s *proposalService) GetProposalStats(ctx context.Context, actor domain.Actor) (*domain.ProposalStats, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	stats, err := s.proposalRepo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("proposal stats: %w", err)
	}
	return stats, nil
}
