package domain

import (
	"context"
	"time"
)

// Event statuses.
const (
	EventStatusOpen     = "open"
	EventStatusClosed   = "closed"
	EventStatusUpcoming = "upcoming"
)

// CategoryAll is the sentinel filter value meaning "no category filter".
const CategoryAll = "all"

// Event represents a published event listing
// swagger:model Event
type Event struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Summary           string    `json:"summary"`
	Description       string    `json:"description"`
	Date              time.Time `json:"date"`
	Location          string    `json:"location"`
	Organizer         string    `json:"organizer"`
	Category          string    `json:"category"`
	Status            string    `json:"status"`
	ApplicationsCount int       `json:"applications_count"`
	Eligibility       string    `json:"eligibility"`
	ImageURL          *string   `json:"image_url"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// EventFilter narrows ListEvents. Zero values mean no filter; Category "all"
// is equivalent to empty. Search matches title or summary, case-insensitive.
type EventFilter struct {
	Category string
	Status   string
	Search   string
}

// EventUpdate carries the fields of a partial event update. Nil means leave
// the column untouched.
type EventUpdate struct {
	Title       *string
	Summary     *string
	Description *string
	Date        *time.Time
	Location    *string
	Organizer   *string
	Category    *string
	Status      *string
	Eligibility *string
	ImageURL    *string
}

// EventStats holds aggregate event figures, computed store-side.
// swagger:model EventStats
type EventStats struct {
	TotalEvents             int            `json:"total_events"`
	TotalApplications       int            `json:"total_applications"`
	CategoryCount           map[string]int `json:"category_count"`
	AvgApplicationsPerEvent int            `json:"avg_applications_per_event"`
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, e *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context, filter EventFilter) ([]*Event, error)
	Update(ctx context.Context, id string, upd EventUpdate) (*Event, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*EventStats, error)
}

// EventService defines event browsing and admin event management.
type EventService interface {
	ListEvents(ctx context.Context, filter EventFilter) ([]*Event, error)
	GetEventByID(ctx context.Context, id string) (*Event, error)
	CreateEvent(ctx context.Context, actor Actor, e *Event) error
	UpdateEvent(ctx context.Context, actor Actor, id string, upd EventUpdate) (*Event, error)
	DeleteEvent(ctx context.Context, actor Actor, id string) error
	GetEventStats(ctx context.Context, actor Actor) (*EventStats, error)
}
