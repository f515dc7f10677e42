package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"brandexpo/internal/domain"
)

const eventColumns = `id, title, summary, description, date, location, organizer, category, status, applications_count, eligibility, image_url, created_at, updated_at`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func scanEvent(row interface{ Scan(...any) error }) (*domain.Event, error) {
	e := &domain.Event{}
	var imageNull sql.NullString
	err := row.Scan(
		&e.ID, &e.Title, &e.Summary, &e.Description, &e.Date, &e.Location,
		&e.Organizer, &e.Category, &e.Status, &e.ApplicationsCount,
		&e.Eligibility, &imageNull, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if imageNull.Valid {
		e.ImageURL = &imageNull.String
	}
	return e, nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (title, summary, description, date, location, organizer, category, status, eligibility, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, applications_count, created_at, updated_at
	`
	var imageURL sql.NullString
	if e.ImageURL != nil {
		imageURL = sql.NullString{String: *e.ImageURL, Valid: true}
	}
	return r.DB.QueryRowContext(ctx, query,
		e.Title, e.Summary, e.Description, e.Date, e.Location, e.Organizer,
		e.Category, e.Status, e.Eligibility, imageURL,
	).Scan(&e.ID, &e.ApplicationsCount, &e.CreatedAt, &e.UpdatedAt)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE id = $1
	`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// List returns events ordered by date ascending. Category "all" (or empty)
// means no category filter; search matches title or summary case-insensitively.
func (r *eventRepository) List(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	whereClauses := []string{}
	args := []interface{}{}
	n := 1
	if filter.Category != "" && filter.Category != domain.CategoryAll {
		whereClauses = append(whereClauses, fmt.Sprintf("category = $%d", n))
		args = append(args, filter.Category)
		n++
	}
	if filter.Status != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("status = $%d", n))
		args = append(args, filter.Status)
		n++
	}
	if filter.Search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("(title ILIKE $%d OR summary ILIKE $%d)", n, n))
		args = append(args, "%"+filter.Search+"%")
		n++
	}
	query := `SELECT ` + eventColumns + ` FROM events`
	if len(whereClauses) > 0 {
		query += " WHERE " + strings.Join(whereClauses, " AND ")
	}
	query += " ORDER BY date ASC"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, id string, upd domain.EventUpdate) (*domain.Event, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{}
	n := 1
	add := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, n))
		args = append(args, value)
		n++
	}
	if upd.Title != nil {
		add("title", *upd.Title)
	}
	if upd.Summary != nil {
		add("summary", *upd.Summary)
	}
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.Date != nil {
		add("date", *upd.Date)
	}
	if upd.Location != nil {
		add("location", *upd.Location)
	}
	if upd.Organizer != nil {
		add("organizer", *upd.Organizer)
	}
	if upd.Category != nil {
		add("category", *upd.Category)
	}
	if upd.Status != nil {
		add("status", *upd.Status)
	}
	if upd.Eligibility != nil {
		add("eligibility", *upd.Eligibility)
	}
	if upd.ImageURL != nil {
		add("image_url", *upd.ImageURL)
	}
	if n == 1 {
		// No fields to update; just fetch current row
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE events SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), n, eventColumns)
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM events WHERE id = $1`
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

// Stats aggregates event figures in the store instead of transferring rows.
func (r *eventRepository) Stats(ctx context.Context) (*domain.EventStats, error) {
	stats := &domain.EventStats{CategoryCount: make(map[string]int)}

	totalsQuery := `
		SELECT COUNT(*), COALESCE(SUM(applications_count), 0)
		FROM events
	`
	if err := r.DB.QueryRowContext(ctx, totalsQuery).Scan(&stats.TotalEvents, &stats.TotalApplications); err != nil {
		return nil, err
	}

	categoryQuery := `
		SELECT category, COUNT(*)
		FROM events
		GROUP BY category
	`
	rows, err := r.DB.QueryContext(ctx, categoryQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, err
		}
		stats.CategoryCount[category] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if stats.TotalEvents > 0 {
		// Round half away from zero, matching the admin dashboard figure.
		stats.AvgApplicationsPerEvent = (stats.TotalApplications + stats.TotalEvents/2) / stats.TotalEvents
	}
	return stats, nil
}
