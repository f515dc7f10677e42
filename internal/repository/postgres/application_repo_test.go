package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"brandexpo/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

var applicationRowColumns = []string{
	"id", "event_id", "user_id", "user_name", "user_email", "applied_at",
	"status", "created_at",
}

func TestApplicationRepository_Create(t *testing.T) {
	ctx := context.Background()
	appliedAt := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "success increments counter in same transaction",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`INSERT INTO applications`).
					WithArgs("ev-1", "user-1", "Jane", "jane@brand.co", appliedAt, "pending").
					WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).
						AddRow("app-1", time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)))
				mock.ExpectExec(`UPDATE events\s+SET applications_count = applications_count \+ 1`).
					WithArgs("ev-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "duplicate application maps to conflict",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`INSERT INTO applications`).
					WillReturnError(&pq.Error{Code: "23505"})
				mock.ExpectRollback()
			},
			wantErr: domain.ErrConflict,
		},
		{
			name: "missing event maps to not found",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`INSERT INTO applications`).
					WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).
						AddRow("app-1", time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)))
				mock.ExpectExec(`UPDATE events\s+SET applications_count = applications_count \+ 1`).
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectRollback()
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
			repo := NewApplicationRepository(db)
			app := domain.NewApplication("ev-1", "user-1", "Jane", "jane@brand.co", appliedAt)
			err = repo.Create(ctx, app)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				require.Equal(t, "app-1", app.ID)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestApplicationRepository_GetByEventAndUser(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		ts := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
		mock.ExpectQuery(`SELECT id, event_id, user_id`).
			WithArgs("ev-1", "user-1").
			WillReturnRows(sqlmock.NewRows(applicationRowColumns).
				AddRow("app-1", "ev-1", "user-1", "Jane", "jane@brand.co", ts, "pending", ts))

		repo := NewApplicationRepository(db)
		got, err := repo.GetByEventAndUser(ctx, "ev-1", "user-1")
		require.NoError(t, err)
		require.Equal(t, "app-1", got.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent row maps to not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, event_id, user_id`).
			WithArgs("ev-1", "user-2").
			WillReturnError(sql.ErrNoRows)

		repo := NewApplicationRepository(db)
		got, err := repo.GetByEventAndUser(ctx, "ev-1", "user-2")
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.Nil(t, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestApplicationRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("returns updated row", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		ts := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
		mock.ExpectQuery(`UPDATE applications\s+SET status = \$1\s+WHERE id = \$2`).
			WithArgs("approved", "app-1").
			WillReturnRows(sqlmock.NewRows(applicationRowColumns).
				AddRow("app-1", "ev-1", "user-1", "Jane", "jane@brand.co", ts, "approved", ts))

		repo := NewApplicationRepository(db)
		got, err := repo.UpdateStatus(ctx, "app-1", "approved")
		require.NoError(t, err)
		require.Equal(t, "approved", got.Status)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`UPDATE applications\s+SET status = \$1\s+WHERE id = \$2`).
			WithArgs("approved", "app-missing").
			WillReturnError(sql.ErrNoRows)

		repo := NewApplicationRepository(db)
		_, err = repo.UpdateStatus(ctx, "app-missing", "approved")
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestApplicationRepository_ListByUserID(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	ts := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	cols := []string{
		"id", "event_id", "user_id", "user_name", "user_email", "applied_at", "status", "created_at",
		"e_id", "e_title", "e_date", "e_location", "e_category", "e_status",
	}
	mock.ExpectQuery(`SELECT a.id, a.event_id, .* FROM applications a\s+JOIN events e ON e.id = a.event_id\s+WHERE a.user_id = \$1`).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("app-1", "ev-1", "user-1", "Jane", "jane@brand.co", ts, "approved", ts,
				"ev-1", "Spring Fair", ts, "Seoul", "IT", "open"))

	repo := NewApplicationRepository(db)
	got, err := repo.ListByUserID(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "approved", got[0].Application.Status)
	require.Equal(t, "Spring Fair", got[0].Event.Title)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationRepository_Stats(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\),\s+COUNT\(\*\) FILTER \(WHERE status = 'pending'\)`).
		WillReturnRows(sqlmock.NewRows([]string{"total", "pending", "approved", "rejected"}).
			AddRow(6, 3, 2, 1))

	repo := NewApplicationRepository(db)
	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, 6, stats.Total)
	require.Equal(t, stats.Total, stats.Pending+stats.Approved+stats.Rejected)
	require.NoError(t, mock.ExpectationsWereMet())
}
