package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestKVRepository_Get(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		key       string
		mock      func(mock sqlmock.Sqlmock)
		wantValue string
		wantOK    bool
		wantErr   bool
	}{
		{
			name: "found",
			key:  "eventPlannerData",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT value\s+FROM kv_entries`).
					WithArgs("eventPlannerData").
					WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("[]"))
			},
			wantValue: "[]",
			wantOK:    true,
		},
		{
			name: "missing key",
			key:  "eventPlannerData",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT value\s+FROM kv_entries`).
					WithArgs("eventPlannerData").
					WillReturnError(sql.ErrNoRows)
			},
			wantOK: false,
		},
		{
			name: "db error",
			key:  "eventPlannerData",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT value\s+FROM kv_entries`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewKVRepository(db)
			value, ok, err := repo.Get(ctx, tt.key)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantOK, ok)
			require.Equal(t, tt.wantValue, value)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestKVRepository_Set(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
	}{
		{
			name: "upsert",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO kv_entries \(key, value, updated_at\)`).
					WithArgs("eventPlannerData", `[{"id":"e1"}]`, sqlmock.AnyArg()).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO kv_entries`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewKVRepository(db)
			err = repo.Set(ctx, "eventPlannerData", `[{"id":"e1"}]`)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEnsureSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS kv_entries`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, EnsureSchema(context.Background(), db))
	require.NoError(t, mock.ExpectationsWereMet())
}
