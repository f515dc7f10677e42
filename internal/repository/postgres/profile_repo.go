package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"brandexpo/internal/domain"
)

type profileRepository struct {
	DB *sql.DB
}

func NewProfileRepository(db *sql.DB) domain.ProfileRepository {
	return &profileRepository{DB: db}
}

// Create inserts the profile. A duplicate email returns domain.ErrConflict.
func (r *profileRepository) Create(ctx context.Context, p *domain.Profile) error {
	query := `
		INSERT INTO profiles (email, name, role, password_hash, salt)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	err := r.DB.QueryRowContext(ctx, query, p.Email, p.Name, p.Role, p.PasswordHash, p.Salt).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrConflict
		}
		return err
	}
	return nil
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	query := `
		SELECT id, email, name, role, password_hash, salt, created_at, updated_at
		FROM profiles
		WHERE id = $1
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

func (r *profileRepository) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	query := `
		SELECT id, email, name, role, password_hash, salt, created_at, updated_at
		FROM profiles
		WHERE email = $1
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, email))
}

func (r *profileRepository) scanOne(row *sql.Row) (*domain.Profile, error) {
	p := &domain.Profile{}
	var hashNull, saltNull sql.NullString
	err := row.Scan(&p.ID, &p.Email, &p.Name, &p.Role, &hashNull, &saltNull, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if hashNull.Valid {
		p.PasswordHash = &hashNull.String
	}
	if saltNull.Valid {
		p.Salt = &saltNull.String
	}
	return p, nil
}

func (r *profileRepository) Update(ctx context.Context, p *domain.Profile) error {
	query := `
		UPDATE profiles
		SET name = $1, role = $2, updated_at = NOW()
		WHERE id = $3
	`
	result, err := r.DB.ExecContext(ctx, query, p.Name, p.Role, p.ID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
