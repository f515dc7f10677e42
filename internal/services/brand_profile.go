package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"brandexpo/internal/domain"
)

type brandProfileService struct {
	brandProfileRepo domain.BrandProfileRepository
	fileStore        domain.FileStore
	contextTimeout   time.Duration
}

// NewBrandProfileService creates a BrandProfileService with the given
// repository and object store.
func NewBrandProfileService(brandProfileRepo domain.BrandProfileRepository, fileStore domain.FileStore, timeout time.Duration) domain.BrandProfileService {
	return &brandProfileService{
		brandProfileRepo: brandProfileRepo,
		fileStore:        fileStore,
		contextTimeout:   timeout,
	}
}

// GetMyBrandProfile returns (nil, nil) when the caller has no profile yet;
// absence is a normal state, not an error.
func (s *brandProfileService) GetMyBrandProfile(ctx context.Context, actor domain.Actor) (*domain.BrandProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	bp, err := s.brandProfileRepo.GetByUserID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get brand profile: %w", err)
	}
	return bp, nil
}

func (s *brandProfileService) CreateBrandProfile(ctx context.Context, actor domain.Actor, bp *domain.BrandProfile) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if bp.BrandName == "" || bp.CompanyName == "" {
		return fmt.Errorf("%w: brand name and company name are required", domain.ErrInvalidInput)
	}
	bp.UserID = actor.ID
	if err := s.brandProfileRepo.Create(ctx, bp); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return fmt.Errorf("%w: brand profile already registered", domain.ErrConflict)
		}
		return fmt.Errorf("create brand profile: %w", err)
	}
	return nil
}

func (s *brandProfileService) UpdateBrandProfile(ctx context.Context, actor domain.Actor, upd domain.BrandProfileUpdate) (*domain.BrandProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	updated, err := s.brandProfileRepo.Update(ctx, actor.ID, upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update brand profile: %w", err)
	}
	return updated, nil
}

func (s *brandProfileService) DeleteBrandProfile(ctx context.Context, actor domain.Actor) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.brandProfileRepo.Delete(ctx, actor.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete brand profile: %w", err)
	}
	return nil
}

func (s *brandProfileService) UploadProductImage(ctx context.Context, actor domain.Actor, filename string, body io.Reader) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("%w: filename is required", domain.ErrInvalidInput)
	}
	url, err := s.fileStore.UploadProductImage(ctx, actor.ID, filename, body)
	if err != nil {
		return "", fmt.Errorf("upload product image: %w", err)
	}
	return url, nil
}

func (s *brandProfileService) UploadBusinessRegistration(ctx context.Context, actor domain.Actor, filename string, body io.Reader) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("%w: filename is required", domain.ErrInvalidInput)
	}
	url, err := s.fileStore.UploadBusinessRegistration(ctx, actor.ID, filename, body)
	if err != nil {
		return "", fmt.Errorf("upload business registration: %w", err)
	}
	return url, nil
}
