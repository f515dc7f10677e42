package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"brandexpo/internal/domain"
)

const brandProfileColumns = `id, user_id, brand_name, company_name, business_number, representative_name, email, phone, website, description, industry, address, product_images, business_registration, created_at, updated_at`

type brandProfileRepository struct {
	DB *sql.DB
}

func NewBrandProfileRepository(db *sql.DB) domain.BrandProfileRepository {
	return &brandProfileRepository{
		DB: db,
	}
}

func scanBrandProfile(row interface{ Scan(...any) error }) (*domain.BrandProfile, error) {
	bp := &domain.BrandProfile{}
	var websiteNull, registrationNull sql.NullString
	err := row.Scan(
		&bp.ID, &bp.UserID, &bp.BrandName, &bp.CompanyName, &bp.BusinessNumber,
		&bp.RepresentativeName, &bp.Email, &bp.Phone, &websiteNull,
		&bp.Description, &bp.Industry, &bp.Address, pq.Array(&bp.ProductImages),
		&registrationNull, &bp.CreatedAt, &bp.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if websiteNull.Valid {
		bp.Website = &websiteNull.String
	}
	if registrationNull.Valid {
		bp.BusinessRegistration = &registrationNull.String
	}
	return bp, nil
}

// Create inserts the profile. A second profile for the same user violates the
// user_id uniqueness constraint and returns domain.ErrConflict.
func (r *brandProfileRepository) Create(ctx context.Context, bp *domain.BrandProfile) error {
	query := `
		INSERT INTO brand_profiles (user_id, brand_name, company_name, business_number, representative_name, email, phone, website, description, industry, address, product_images, business_registration)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at
	`
	var website, registration sql.NullString
	if bp.Website != nil {
		website = sql.NullString{String: *bp.Website, Valid: true}
	}
	if bp.BusinessRegistration != nil {
		registration = sql.NullString{String: *bp.BusinessRegistration, Valid: true}
	}
	err := r.DB.QueryRowContext(ctx, query,
		bp.UserID, bp.BrandName, bp.CompanyName, bp.BusinessNumber,
		bp.RepresentativeName, bp.Email, bp.Phone, website, bp.Description,
		bp.Industry, bp.Address, pq.Array(bp.ProductImages), registration,
	).Scan(&bp.ID, &bp.CreatedAt, &bp.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrConflict
		}
		return err
	}
	return nil
}

func (r *brandProfileRepository) GetByUserID(ctx context.Context, userID string) (*domain.BrandProfile, error) {
	query := `
		SELECT ` + brandProfileColumns + `
		FROM brand_profiles
		WHERE user_id = $1
	`
	bp, err := scanBrandProfile(r.DB.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return bp, nil
}

func (r *brandProfileRepository) Update(ctx context.Context, userID string, upd domain.BrandProfileUpdate) (*domain.BrandProfile, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{}
	n := 1
	add := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, n))
		args = append(args, value)
		n++
	}
	if upd.BrandName != nil {
		add("brand_name", *upd.BrandName)
	}
	if upd.CompanyName != nil {
		add("company_name", *upd.CompanyName)
	}
	if upd.BusinessNumber != nil {
		add("business_number", *upd.BusinessNumber)
	}
	if upd.RepresentativeName != nil {
		add("representative_name", *upd.RepresentativeName)
	}
	if upd.Email != nil {
		add("email", *upd.Email)
	}
	if upd.Phone != nil {
		add("phone", *upd.Phone)
	}
	if upd.Website != nil {
		add("website", *upd.Website)
	}
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.Industry != nil {
		add("industry", *upd.Industry)
	}
	if upd.Address != nil {
		add("address", *upd.Address)
	}
	if upd.ProductImages != nil {
		add("product_images", pq.Array(upd.ProductImages))
	}
	if upd.BusinessRegistration != nil {
		add("business_registration", *upd.BusinessRegistration)
	}
	if n == 1 {
		// No fields to update; just fetch current row
		return r.GetByUserID(ctx, userID)
	}
	args = append(args, userID)
	query := fmt.Sprintf(`
		UPDATE brand_profiles SET %s
		WHERE user_id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), n, brandProfileColumns)
	bp, err := scanBrandProfile(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return bp, nil
}

func (r *brandProfileRepository) Delete(ctx context.Context, userID string) error {
	query := `DELETE FROM brand_profiles WHERE user_id = $1`
	result, err := r.DB.ExecContext(ctx, query, userID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
