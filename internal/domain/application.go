package domain

import (
	"context"
	"time"
)

// Application statuses. pending is the only non-terminal state.
const (
	ApplicationStatusPending  = "pending"
	ApplicationStatusApproved = "approved"
	ApplicationStatusRejected = "rejected"
)

// Application represents a user's application to participate in an event.
// At most one application exists per (user, event) pair.
// swagger:model Application
type Application struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	UserEmail string    `json:"user_email"`
	AppliedAt time.Time `json:"applied_at"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// NewApplication returns a pending Application for the given event and user.
func NewApplication(eventID, userID, userName, userEmail string, appliedAt time.Time) *Application {
	return &Application{
		EventID:   eventID,
		UserID:    userID,
		UserName:  userName,
		UserEmail: userEmail,
		AppliedAt: appliedAt,
		Status:    ApplicationStatusPending,
	}
}

// ApplicationWithEvent bundles an application with a summary of its event.
type ApplicationWithEvent struct {
	Application *Application `json:"application"`
	Event       *Event       `json:"event"`
}

// ApplicationStats holds aggregate per-status counts, computed store-side.
// swagger:model ApplicationStats
type ApplicationStats struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

// ApplicationRepository defines storage operations for applications.
// Create also increments the event's applications_count in the same
// transaction, and maps a duplicate (user, event) insert to ErrConflict.
type ApplicationRepository interface {
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id string) (*Application, error)
	GetByEventAndUser(ctx context.Context, eventID, userID string) (*Application, error)
	ListByUserID(ctx context.Context, userID string) ([]*ApplicationWithEvent, error)
	ListAll(ctx context.Context, p PaginationParams) ([]*ApplicationWithEvent, int, error)
	ListByEventID(ctx context.Context, eventID string) ([]*Application, error)
	UpdateStatus(ctx context.Context, id, status string) (*Application, error)
	Stats(ctx context.Context) (*ApplicationStats, error)
}

// ApplicationService defines applying to events and admin application review.
type ApplicationService interface {
	Apply(ctx context.Context, actor Actor, eventID, userName, userEmail string) (*Application, error)
	ApplyWithBrandProfile(ctx context.Context, actor Actor, eventID string) (*Application, error)
	HasUserApplied(ctx context.Context, userID, eventID string) (bool, error)
	ListMyApplications(ctx context.Context, actor Actor) ([]*ApplicationWithEvent, error)
	ListAllApplications(ctx context.Context, actor Actor, p PaginationParams) ([]*ApplicationWithEvent, int, error)
	ListEventApplications(ctx context.Context, actor Actor, eventID string) ([]*Application, error)
	UpdateApplicationStatus(ctx context.Context, actor Actor, id, status string) (*Application, error)
	GetApplicationStats(ctx context.Context, actor Actor) (*ApplicationStats, error)
}
