package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"brandexpo/internal/domain"
)

type applicationService struct {
	applicationRepo  domain.ApplicationRepository
	eventRepo        domain.EventRepository
	brandProfileRepo domain.BrandProfileRepository
	profileRepo      domain.ProfileRepository
	contextTimeout   time.Duration
}

// NewApplicationService creates an ApplicationService with the given repositories.
func NewApplicationService(
	applicationRepo domain.ApplicationRepository,
	eventRepo domain.EventRepository,
	brandProfileRepo domain.BrandProfileRepository,
	profileRepo domain.ProfileRepository,
	timeout time.Duration,
) domain.ApplicationService {
	return &applicationService{
		applicationRepo:  applicationRepo,
		eventRepo:        eventRepo,
		brandProfileRepo: brandProfileRepo,
		profileRepo:      profileRepo,
		contextTimeout:   timeout,
	}
}

func (s *applicationService) Apply(ctx context.Context, actor domain.Actor, eventID, userName, userEmail string) (*domain.Application, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if userName == "" || userEmail == "" {
		return nil, fmt.Errorf("%w: applicant name and email are required", domain.ErrInvalidInput)
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.Status != domain.EventStatusOpen {
		return nil, fmt.Errorf("%w: event is not open for applications", domain.ErrInvalidInput)
	}

	app := domain.NewApplication(eventID, actor.ID, userName, userEmail, time.Now())
	if err := s.applicationRepo.Create(ctx, app); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("%w: already applied to this event", domain.ErrConflict)
		}
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("create application: %w", err)
	}
	return app, nil
}

// ApplyWithBrandProfile is one-click apply: applicant name and email come
// from the caller's saved brand profile.
func (s *applicationService) ApplyWithBrandProfile(ctx context.Context, actor domain.Actor, eventID string) (*domain.Application, error) {
	bp, err := s.brandProfileRepo.GetByUserID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: no saved brand profile", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get brand profile: %w", err)
	}
	return s.Apply(ctx, actor, eventID, bp.RepresentativeName, bp.Email)
}

// HasUserApplied treats an absent row as false; only real backend failures
// propagate.
func (s *applicationService) HasUserApplied(ctx context.Context, userID, eventID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.applicationRepo.GetByEventAndUser(ctx, eventID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("get application: %w", err)
	}
	return true, nil
}

func (s *applicationService) ListMyApplications(ctx context.Context, actor domain.Actor) ([]*domain.ApplicationWithEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	apps, err := s.applicationRepo.ListByUserID(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	if apps == nil {
		apps = []*domain.ApplicationWithEvent{}
	}
	return apps, nil
}

func (s *applicationService) ListAllApplications(ctx context.Context, actor domain.Actor, p domain.PaginationParams) ([]*domain.ApplicationWithEvent, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !actor.IsAdmin() {
		return nil, 0, domain.ErrForbidden
	}
	apps, total, err := s.applicationRepo.ListAll(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("list applications: %w", err)
	}
	return apps, total, nil
}

func (s *applicationService) ListEventApplications(ctx context.Context, actor domain.Actor, eventID string) ([]*domain.Application, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	apps, err := s.applicationRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list event applications: %w", err)
	}
	return apps, nil
}

// UpdateApplicationStatus enforces the forward-only state machine:
// pending may move to approved or rejected; a resolved application accepts
// only an idempotent rewrite of its current value.
func (s *applicationService) UpdateApplicationStatus(ctx context.Context, actor domain.Actor, id, status string) (*domain.Application, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	switch status {
	case domain.ApplicationStatusApproved, domain.ApplicationStatusRejected:
	default:
		return nil, fmt.Errorf("%w: status must be %q or %q", domain.ErrInvalidInput,
			domain.ApplicationStatusApproved, domain.ApplicationStatusRejected)
	}

	current, err := s.applicationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get application: %w", err)
	}
	if current.Status != domain.ApplicationStatusPending && current.Status != status {
		return nil, domain.ErrInvalidTransition
	}

	updated, err := s.applicationRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update application status: %w", err)
	}
	return updated, nil
}

func (s *applicationService) GetApplicationStats(ctx context.Context, actor domain.Actor) (*domain.ApplicationStats, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	stats, err := s.applicationRepo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("application stats: %w", err)
	}
	return stats, nil
}
