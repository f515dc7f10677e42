package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"brandexpo/internal/domain"
)

type mockProposalRepository struct {
	byID    map[string]*domain.CounterProposal
	created []*domain.CounterProposal
	deleted []string
}

func (m *mockProposalRepository) Create(ctx context.Context, p *domain.CounterProposal) error {
	p.ID = "cp-new"
	m.created = append(m.created, p)
	return nil
}

func (m *mockProposalRepository) GetByID(ctx context.Context, id string) (*domain.CounterProposal, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (m *mockProposalRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.CounterProposal, error) {
	return nil, nil
}

func (m *mockProposalRepository) ListAll(ctx context.Context, params domain.PaginationParams) ([]*domain.CounterProposal, int, error) {
	return []*domain.CounterProposal{}, 0, nil
}

func (m *mockProposalRepository) Update(ctx context.Context, id string, upd domain.ProposalUpdate) (*domain.CounterProposal, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if upd.Description != nil {
		p.Description = *upd.Description
	}
	return p, nil
}

func (m *mockProposalRepository) UpdateStatus(ctx context.Context, id, status string) (*domain.CounterProposal, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	p.Status = status
	return p, nil
}

func (m *mockProposalRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.byID, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockProposalRepository) Stats(ctx context.Context) (*domain.ProposalStats, error) {
	return &domain.ProposalStats{}, nil
}

func pendingProposal(id, userID string) *domain.CounterProposal {
	return &domain.CounterProposal{ID: id, UserID: userID, BrandName: "Acme",
		Description: "pop-up", Status: domain.ProposalStatusPending}
}

func TestProposalService_SubmitProposal(t *testing.T) {
	ctx := context.Background()
	user := domain.Actor{ID: "user-1", Role: domain.RoleUser}

	repo := &mockProposalRepository{}
	svc := NewCounterProposalService(repo, 2*time.Second)

	p := &domain.CounterProposal{BrandName: "Acme", Description: "pop-up", Budget: "flexible",
		TargetDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), Category: "IT"}
	if err := svc.SubmitProposal(ctx, user, p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.UserID != "user-1" {
		t.Fatalf("expected owner user-1, got %q", p.UserID)
	}
	if p.Status != domain.ProposalStatusPending {
		t.Fatalf("expected pending, got %q", p.Status)
	}
	if p.SubmittedAt.IsZero() {
		t.Fatal("expected submitted_at to be set")
	}
}

func TestProposalService_UpdateProposalStatus(t *testing.T) {
	ctx := context.Background()
	admin := domain.Actor{ID: "admin-1", Role: domain.RoleAdmin}
	user := domain.Actor{ID: "user-1", Role: domain.RoleUser}

	t.Run("non-admin is forbidden", func(t *testing.T) {
		repo := &mockProposalRepository{byID: map[string]*domain.CounterProposal{"cp-1": pendingProposal("cp-1", "user-1")}}
		svc := NewCounterProposalService(repo, 2*time.Second)
		_, err := svc.UpdateProposalStatus(ctx, user, "cp-1", domain.ProposalStatusAccepted)
		if !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("pending to accepted", func(t *testing.T) {
		repo := &mockProposalRepository{byID: map[string]*domain.CounterProposal{"cp-1": pendingProposal("cp-1", "user-1")}}
		svc := NewCounterProposalService(repo, 2*time.Second)
		p, err := svc.UpdateProposalStatus(ctx, admin, "cp-1", domain.ProposalStatusAccepted)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Status != domain.ProposalStatusAccepted {
			t.Fatalf("expected accepted, got %q", p.Status)
		}
	})

	t.Run("resolved proposal cannot change outcome", func(t *testing.T) {
		p := pendingProposal("cp-1", "user-1")
		p.Status = domain.ProposalStatusRejected
		repo := &mockProposalRepository{byID: map[string]*domain.CounterProposal{"cp-1": p}}
		svc := NewCounterProposalService(repo, 2*time.Second)
		_, err := svc.UpdateProposalStatus(ctx, admin, "cp-1", domain.ProposalStatusAccepted)
		if !errors.Is(err, domain.ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
	})
}

func TestProposalService_OwnerChecks(t *testing.T) {
	ctx := context.Background()
	owner := domain.Actor{ID: "user-1", Role: domain.RoleUser}
	stranger := domain.Actor{ID: "user-2", Role: domain.RoleUser}
	admin := domain.Actor{ID: "admin-1", Role: domain.RoleAdmin}

	t.Run("only owner may edit a pending proposal", func(t *testing.T) {
		repo := &mockProposalRepository{byID: map[string]*domain.CounterProposal{"cp-1": pendingProposal("cp-1", "user-1")}}
		svc := NewCounterProposalService(repo, 2*time.Second)

		desc := "updated"
		if _, err := svc.UpdateProposal(ctx, stranger, "cp-1", domain.ProposalUpdate{Description: &desc}); !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
		p, err := svc.UpdateProposal(ctx, owner, "cp-1", domain.ProposalUpdate{Description: &desc})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Description != "updated" {
			t.Fatalf("expected updated description, got %q", p.Description)
		}
	})

	t.Run("resolved proposal is no longer editable", func(t *testing.T) {
		p := pendingProposal("cp-1", "user-1")
		p.Status = domain.ProposalStatusAccepted
		repo := &mockProposalRepository{byID: map[string]*domain.CounterProposal{"cp-1": p}}
		svc := NewCounterProposalService(repo, 2*time.Second)

		desc := "updated"
		if _, err := svc.UpdateProposal(ctx, owner, "cp-1", domain.ProposalUpdate{Description: &desc}); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("owner or admin may delete", func(t *testing.T) {
		repo := &mockProposalRepository{byID: map[string]*domain.CounterProposal{
			"cp-1": pendingProposal("cp-1", "user-1"),
			"cp-2": pendingProposal("cp-2", "user-1"),
		}}
		svc := NewCounterProposalService(repo, 2*time.Second)

		if err := svc.DeleteProposal(ctx, stranger, "cp-1"); !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
		if err := svc.DeleteProposal(ctx, owner, "cp-1"); err != nil {
			t.Fatalf("owner delete failed: %v", err)
		}
		if err := svc.DeleteProposal(ctx, admin, "cp-2"); err != nil {
			t.Fatalf("admin delete failed: %v", err)
		}
	})
}
