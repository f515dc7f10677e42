package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"brandexpo/internal/domain"
)

const proposalColumns = `id, user_id, brand_name, description, budget, target_date, category, status, submitted_at, created_at`

type proposalRepository struct {
	DB *sql.DB
}

func NewCounterProposalRepository(db *sql.DB) domain.CounterProposalRepository {
	return &proposalRepository{
		DB: db,
	}
}

func scanProposal(row interface{ Scan(...any) error }) (*domain.CounterProposal, error) {
	p := &domain.CounterProposal{}
	err := row.Scan(
		&p.ID, &p.UserID, &p.BrandName, &p.Description, &p.Budget,
		&p.TargetDate, &p.Category, &p.Status, &p.SubmittedAt, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *proposalRepository) Create(ctx context.Context, p *domain.CounterProposal) error {
	query := `
		INSERT INTO counter_proposals (user_id, brand_name, description, budget, target_date, category, status, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`
	return r.DB.QueryRowContext(ctx, query,
		p.UserID, p.BrandName, p.Description, p.Budget, p.TargetDate,
		p.Category, p.Status, p.SubmittedAt,
	).Scan(&p.ID, &p.CreatedAt)
}

func (r *proposalRepository) GetByID(ctx context.Context, id string) (*domain.CounterProposal, error) {
	query := `
		SELECT ` + proposalColumns + `
		FROM counter_proposals
		WHERE id = $1
	`
	p, err := scanProposal(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *proposalRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.CounterProposal, error) {
	query := `
		SELECT ` + proposalColumns + `
		FROM counter_proposals
		WHERE user_id = $1
		ORDER BY submitted_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProposals(rows)
}

func (r *proposalRepository) ListAll(ctx context.Context, params domain.PaginationParams) ([]*domain.CounterProposal, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM counter_proposals`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + proposalColumns + `
		FROM counter_proposals
		ORDER BY submitted_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.DB.QueryContext(ctx, query, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	proposals, err := collectProposals(rows)
	if err != nil {
		return nil, 0, err
	}
	return proposals, total, nil
}

func collectProposals(rows *sql.Rows) ([]*domain.CounterProposal, error) {
	proposals := make([]*domain.CounterProposal, 0)
	for rows.Next() {
		p, err := scanProposal(rows)
		if err != nil {
			return nil, err
		}
		proposals = append(proposals, p)
	}
	return proposals, rows.Err()
}

func (r *proposalRepository) Update(ctx context.Context, id string, upd domain.ProposalUpdate) (*domain.CounterProposal, error) {
	setClauses := []string{}
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
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.Budget != nil {
		add("budget", *upd.Budget)
	}
	if upd.TargetDate != nil {
		add("target_date", *upd.TargetDate)
	}
	if upd.Category != nil {
		add("category", *upd.Category)
	}
	if n == 1 {
		// No fields to update; just fetch current row
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE counter_proposals SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), n, proposalColumns)
	p, err := scanProposal(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *proposalRepository) UpdateStatus(ctx context.Context, id, status string) (*domain.CounterProposal, error) {
	query := fmt.Sprintf(`
		UPDATE counter_proposals
		SET status = $1
		WHERE id = $2
		RETURNING %s
	`, proposalColumns)
	p, err := scanProposal(r.DB.QueryRowContext(ctx, query, status, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *proposalRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM counter_proposals WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Stats aggregates per-status counts in the store instead of transferring rows.
func (r *proposalRepository) Stats(ctx context.Context) (*domain.ProposalStats, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'pending'),
		       COUNT(*) FILTER (WHERE status = 'accepted'),
		       COUNT(*) FILTER (WHERE status = 'rejected')
		FROM counter_proposals
	`
	stats := &domain.ProposalStats{}
	err := r.DB.QueryRowContext(ctx, query).Scan(&stats.Total, &stats.Pending, &stats.Accepted, &stats.Rejected)
	if err != nil {
		return nil, err
	}
	return stats, nil
}
