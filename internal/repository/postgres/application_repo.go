package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"brandexpo/internal/domain"
)

const applicationColumns = `id, event_id, user_id, user_name, user_email, applied_at, status, created_at`

type applicationRepository struct {
	DB *sql.DB
}

func NewApplicationRepository(db *sql.DB) domain.ApplicationRepository {
	return &applicationRepository{
		DB: db,
	}
}

// Create inserts the application and increments the event's
// applications_count in the same transaction, so the denormalized counter
// never diverges from the true count. A duplicate (event_id, user_id) pair
// returns domain.ErrConflict.
func (r *applicationRepository) Create(ctx context.Context, app *domain.Application) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	insertQuery := `
		INSERT INTO applications (event_id, user_id, user_name, user_email, applied_at, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err = tx.QueryRowContext(ctx, insertQuery,
		app.EventID, app.UserID, app.UserName, app.UserEmail, app.AppliedAt, app.Status,
	).Scan(&app.ID, &app.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrConflict
		}
		return err
	}

	counterQuery := `
		UPDATE events
		SET applications_count = applications_count + 1, updated_at = NOW()
		WHERE id = $1
	`
	result, err := tx.ExecContext(ctx, counterQuery, app.EventID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}

	return tx.Commit()
}

func (r *applicationRepository) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	query := `
		SELECT ` + applicationColumns + `
		FROM applications
		WHERE id = $1
	`
	app := &domain.Application{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&app.ID, &app.EventID, &app.UserID, &app.UserName, &app.UserEmail,
		&app.AppliedAt, &app.Status, &app.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return app, nil
}

func (r *applicationRepository) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.Application, error) {
	query := `
		SELECT ` + applicationColumns + `
		FROM applications
		WHERE event_id = $1 AND user_id = $2
	`
	app := &domain.Application{}
	err := r.DB.QueryRowContext(ctx, query, eventID, userID).Scan(
		&app.ID, &app.EventID, &app.UserID, &app.UserName, &app.UserEmail,
		&app.AppliedAt, &app.Status, &app.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return app, nil
}

func (r *applicationRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.ApplicationWithEvent, error) {
	query := `
		SELECT a.id, a.event_id, a.user_id, a.user_name, a.user_email, a.applied_at, a.status, a.created_at,
		       e.id, e.title, e.date, e.location, e.category, e.status
		FROM applications a
		JOIN events e ON e.id = a.event_id
		WHERE a.user_id = $1
		ORDER BY a.applied_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanApplicationsWithEvent(rows)
}

func (r *applicationRepository) ListAll(ctx context.Context, p domain.PaginationParams) ([]*domain.ApplicationWithEvent, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM applications`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT a.id, a.event_id, a.user_id, a.user_name, a.user_email, a.applied_at, a.status, a.created_at,
		       e.id, e.title, e.date, e.location, e.category, e.status
		FROM applications a
		JOIN events e ON e.id = a.event_id
		ORDER BY a.applied_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.DB.QueryContext(ctx, query, p.PageSize, p.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	apps, err := scanApplicationsWithEvent(rows)
	if err != nil {
		return nil, 0, err
	}
	return apps, total, nil
}

func scanApplicationsWithEvent(rows *sql.Rows) ([]*domain.ApplicationWithEvent, error) {
	result := make([]*domain.ApplicationWithEvent, 0)
	for rows.Next() {
		app := &domain.Application{}
		ev := &domain.Event{}
		if err := rows.Scan(
			&app.ID, &app.EventID, &app.UserID, &app.UserName, &app.UserEmail,
			&app.AppliedAt, &app.Status, &app.CreatedAt,
			&ev.ID, &ev.Title, &ev.Date, &ev.Location, &ev.Category, &ev.Status,
		); err != nil {
			return nil, err
		}
		result = append(result, &domain.ApplicationWithEvent{Application: app, Event: ev})
	}
	return result, rows.Err()
}

func (r *applicationRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Application, error) {
	query := `
		SELECT ` + applicationColumns + `
		FROM applications
		WHERE event_id = $1
		ORDER BY applied_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	apps := make([]*domain.Application, 0)
	for rows.Next() {
		app := &domain.Application{}
		if err := rows.Scan(
			&app.ID, &app.EventID, &app.UserID, &app.UserName, &app.UserEmail,
			&app.AppliedAt, &app.Status, &app.CreatedAt,
		); err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

func (r *applicationRepository) UpdateStatus(ctx context.Context, id, status string) (*domain.Application, error) {
	query := fmt.Sprintf(`
		UPDATE applications
		SET status = $1
		WHERE id = $2
		RETURNING %s
	`, applicationColumns)
	app := &domain.Application{}
	err := r.DB.QueryRowContext(ctx, query, status, id).Scan(
		&app.ID, &app.EventID, &app.UserID, &app.UserName, &app.UserEmail,
		&app.AppliedAt, &app.Status, &app.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return app, nil
}

// Stats aggregates per-status counts in the store instead of transferring rows.
func (r *applicationRepository) Stats(ctx context.Context) (*domain.ApplicationStats, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'pending'),
		       COUNT(*) FILTER (WHERE status = 'approved'),
		       COUNT(*) FILTER (WHERE status = 'rejected')
		FROM applications
	`
	stats := &domain.ApplicationStats{}
	err := r.DB.QueryRowContext(ctx, query).Scan(&stats.Total, &stats.Pending, &stats.Approved, &stats.Rejected)
	if err != nil {
		return nil, err
	}
	return stats, nil
}
