package domain

import (
	"context"
	"io"
	"time"
)

// BrandProfile is a user's saved company profile, used to pre-fill one-click
// applications. Each user has at most one.
// swagger:model BrandProfile
type BrandProfile struct {
	ID                   string    `json:"id"`
	UserID               string    `json:"user_id"`
	BrandName            string    `json:"brand_name"`
	CompanyName          string    `json:"company_name"`
	BusinessNumber       string    `json:"business_number"`
	RepresentativeName   string    `json:"representative_name"`
	Email                string    `json:"email"`
	Phone                string    `json:"phone"`
	Website              *string   `json:"website"`
	Description          string    `json:"description"`
	Industry             string    `json:"industry"`
	Address              string    `json:"address"`
	ProductImages        []string  `json:"product_images"`
	BusinessRegistration *string   `json:"business_registration"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// BrandProfileUpdate carries the fields of a partial brand profile update.
// Nil means leave the column untouched.
type BrandProfileUpdate struct {
	BrandName            *string
	CompanyName          *string
	BusinessNumber       *string
	RepresentativeName   *string
	Email                *string
	Phone                *string
	Website              *string
	Description          *string
	Industry             *string
	Address              *string
	ProductImages        []string
	BusinessRegistration *string
}

// BrandProfileRepository defines storage operations for brand profiles.
// Create maps a duplicate user_id insert to ErrConflict.
type BrandProfileRepository interface {
	Create(ctx context.Context, bp *BrandProfile) error
	GetByUserID(ctx context.Context, userID string) (*BrandProfile, error)
	Update(ctx context.Context, userID string, upd BrandProfileUpdate) (*BrandProfile, error)
	Delete(ctx context.Context, userID string) error
}

// FileStore writes binary objects to the two storage buckets and returns
// their public URLs. Keys are namespaced by user id.
type FileStore interface {
	UploadProductImage(ctx context.Context, userID, filename string, body io.Reader) (string, error)
	UploadBusinessRegistration(ctx context.Context, userID, filename string, body io.Reader) (string, error)
}

// BrandProfileService defines brand profile management and document uploads.
type BrandProfileService interface {
	GetMyBrandProfile(ctx context.Context, actor Actor) (*BrandProfile, error)
	CreateBrandProfile(ctx context.Context, actor Actor, bp *BrandProfile) error
	UpdateBrandProfile(ctx context.Context, actor Actor, upd BrandProfileUpdate) (*BrandProfile, error)
	DeleteBrandProfile(ctx context.Context, actor Actor) error
	UploadProductImage(ctx context.Context, actor Actor, filename string, body io.Reader) (string, error)
	UploadBusinessRegistration(ctx context.Context, actor Actor, filename string, body io.Reader) (string, error)
}
