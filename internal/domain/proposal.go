package domain

import (
	"context"
	"time"
)

// Counter-proposal statuses. pending is the only non-terminal state.
const (
	ProposalStatusPending  = "pending"
	ProposalStatusAccepted = "accepted"
	ProposalStatusRejected = "rejected"
)

// CounterProposal represents an unsolicited request for a custom event.
// swagger:model CounterProposal
type CounterProposal struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	BrandName   string    `json:"brand_name"`
	Description string    `json:"description"`
	Budget      string    `json:"budget"`
	TargetDate  time.Time `json:"target_date"`
	Category    string    `json:"category"`
	Status      string    `json:"status"`
	SubmittedAt time.Time `json:"submitted_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewCounterProposal returns a pending CounterProposal for the given user.
func NewCounterProposal(userID, brandName, description, budget, category string, targetDate, submittedAt time.Time) *CounterProposal {
	return &CounterProposal{
		UserID:      userID,
		BrandName:   brandName,
		Description: description,
		Budget:      budget,
		TargetDate:  targetDate,
		Category:    category,
		Status:      ProposalStatusPending,
		SubmittedAt: submittedAt,
	}
}

// ProposalUpdate carries the fields of a partial proposal update. Nil means
// leave the column untouched.
type ProposalUpdate struct {
	BrandName   *string
	Description *string
	Budget      *string
	TargetDate  *time.Time
	Category    *string
}

// ProposalStats holds aggregate per-status counts, computed store-side.
// swagger:model ProposalStats
type ProposalStats struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Accepted int `json:"accepted"`
	Rejected int `json:"rejected"`
}

// CounterProposalRepository defines storage operations for counter-proposals.
type CounterProposalRepository interface {
	Create(ctx context.Context, p *CounterProposal) error
	GetByID(ctx context.Context, id string) (*CounterProposal, error)
	ListByUserID(ctx context.Context, userID string) ([]*CounterProposal, error)
	ListAll(ctx context.Context, params PaginationParams) ([]*CounterProposal, int, error)
	Update(ctx context.Context, id string, upd ProposalUpdate) (*CounterProposal, error)
	UpdateStatus(ctx context.Context, id, status string) (*CounterProposal, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*ProposalStats, error)
}

// CounterProposalService defines submitting and reviewing counter-proposals.
type CounterProposalService interface {
	SubmitProposal(ctx context.Context, actor Actor, p *CounterProposal) error
	GetProposalByID(ctx context.Context, actor Actor, id string) (*CounterProposal, error)
	ListMyProposals(ctx context.Context, actor Actor) ([]*CounterProposal, error)
	ListAllProposals(ctx context.Context, actor Actor, params PaginationParams) ([]*CounterProposal, int, error)
	UpdateProposal(ctx context.Context, actor Actor, id string, upd ProposalUpdate) (*CounterProposal, error)
	UpdateProposalStatus(ctx context.Context, actor Actor, id, status string) (*CounterProposal, error)
	DeleteProposal(ctx context.Context, actor Actor, id string) error
	GetProposalStats(ctx context.Context, actor Actor) (*ProposalStats, error)
}
