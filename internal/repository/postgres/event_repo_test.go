package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"brandexpo/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

var eventRowColumns = []string{
	"id", "title", "summary", "description", "date", "location", "organizer",
	"category", "status", "applications_count", "eligibility", "image_url",
	"created_at", "updated_at",
}

func addEventRow(rows *sqlmock.Rows, id, title, summary, category, status string, date time.Time) *sqlmock.Rows {
	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return rows.AddRow(id, title, summary, "desc", date, "Seoul", "org", category, status, 0, "anyone", nil, ts, ts)
}

func TestEventRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		id      string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "success",
			id:   "ev-1",
			mock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(eventRowColumns)
				addEventRow(rows, "ev-1", "Spring Fair", "pop-up fair", "IT", "open", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
				mock.ExpectQuery(`SELECT id, title, summary, description, date`).
					WithArgs("ev-1").
					WillReturnRows(rows)
			},
		},
		{
			name: "not found",
			id:   "ev-missing",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, title, summary, description, date`).
					WithArgs("ev-missing").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)
			got, err := repo.GetByID(ctx, tt.id)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Nil(t, got)
			} else {
				require.NoError(t, err)
				require.Equal(t, tt.id, got.ID)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_List(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		filter domain.EventFilter
		mock   func(mock sqlmock.Sqlmock)
		want   int
	}{
		{
			name:   "no filter",
			filter: domain.EventFilter{},
			mock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(eventRowColumns)
				addEventRow(rows, "ev-1", "A", "a", "IT", "open", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
				addEventRow(rows, "ev-2", "B", "b", "Food", "open", time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC))
				mock.ExpectQuery(`SELECT id, title, .* FROM events ORDER BY date ASC`).
					WillReturnRows(rows)
			},
			want: 2,
		},
		{
			name:   "category all is no filter",
			filter: domain.EventFilter{Category: "all"},
			mock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(eventRowColumns)
				addEventRow(rows, "ev-1", "A", "a", "IT", "open", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
				mock.ExpectQuery(`SELECT id, title, .* FROM events ORDER BY date ASC`).
					WillReturnRows(rows)
			},
			want: 1,
		},
		{
			name:   "category filter",
			filter: domain.EventFilter{Category: "IT"},
			mock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(eventRowColumns)
				addEventRow(rows, "ev-1", "A", "a", "IT", "open", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
				mock.ExpectQuery(`SELECT id, title, .* FROM events WHERE category = \$1 ORDER BY date ASC`).
					WithArgs("IT").
					WillReturnRows(rows)
			},
			want: 1,
		},
		{
			name:   "search filter",
			filter: domain.EventFilter{Search: "conference"},
			mock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(eventRowColumns)
				addEventRow(rows, "ev-3", "Dev Conference", "talks", "IT", "open", time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC))
				mock.ExpectQuery(`SELECT id, title, .* FROM events WHERE \(title ILIKE \$1 OR summary ILIKE \$1\) ORDER BY date ASC`).
					WithArgs("%conference%").
					WillReturnRows(rows)
			},
			want: 1,
		},
		{
			name:   "empty result is empty slice",
			filter: domain.EventFilter{Status: "closed"},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, title, .* FROM events WHERE status = \$1 ORDER BY date ASC`).
					WithArgs("closed").
					WillReturnRows(sqlmock.NewRows(eventRowColumns))
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)
			got, err := repo.List(ctx, tt.filter)
			require.NoError(t, err)
			require.NotNil(t, got)
			require.Len(t, got, tt.want)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`DELETE FROM events WHERE id = \$1`).
			WithArgs("ev-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewEventRepository(db)
		require.NoError(t, repo.Delete(ctx, "ev-1"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`DELETE FROM events WHERE id = \$1`).
			WithArgs("ev-missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewEventRepository(db)
		err = repo.Delete(ctx, "ev-missing")
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEventRepository_Stats(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\), COALESCE\(SUM\(applications_count\), 0\)`).
		WillReturnRows(sqlmock.NewRows([]string{"count", "sum"}).AddRow(4, 10))
	mock.ExpectQuery(`SELECT category, COUNT\(\*\)`).
		WillReturnRows(sqlmock.NewRows([]string{"category", "count"}).
			AddRow("IT", 3).
			AddRow("Food", 1))

	repo := NewEventRepository(db)
	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, 4, stats.TotalEvents)
	require.Equal(t, 10, stats.TotalApplications)
	require.Equal(t, map[string]int{"IT": 3, "Food": 1}, stats.CategoryCount)
	require.Equal(t, 3, stats.AvgApplicationsPerEvent) // round(10/4)
	require.NoError(t, mock.ExpectationsWereMet())
}
