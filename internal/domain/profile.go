package domain

import (
	"context"
	"time"
)

// Roles compared against Profile.Role. Role is the sole authorization signal.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Profile represents a registered identity. The row is created alongside
// registration (password sign-up or first OAuth sign-in).
// swagger:model Profile
type Profile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Credential fields are nil for OAuth-registered identities and are
	// never serialized.
	PasswordHash *string `json:"-"`
	Salt         *string `json:"-"`
}

// NewProfile returns a new Profile with the given fields. ID is typically set by the repository on create.
func NewProfile(email, name, role string, createdAt, updatedAt time.Time) *Profile {
	return &Profile{
		Email:     email,
		Name:      name,
		Role:      role,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// Actor identifies the authenticated caller of an operation. Admin-only
// mutations take an Actor and fail with ErrForbidden when the role is not
// admin, regardless of what the store would enforce.
type Actor struct {
	ID   string
	Role string
}

// IsAdmin reports whether the actor carries the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// ProfileRepository defines the interface for profile storage
type ProfileRepository interface {
	Create(ctx context.Context, p *Profile) error
	GetByID(ctx context.Context, id string) (*Profile, error)
	GetByEmail(ctx context.Context, email string) (*Profile, error)
	Update(ctx context.Context, p *Profile) error
}
