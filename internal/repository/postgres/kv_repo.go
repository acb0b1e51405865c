package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"eventplanner/internal/domain"
)

// Schema creates the table used by the key-value repository.
const Schema = `
	CREATE TABLE IF NOT EXISTS kv_entries (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)
`

type kvRepository struct {
	DB *sql.DB
}

func NewKVRepository(db *sql.DB) domain.KVStore {
	return &kvRepository{
		DB: db,
	}
}

// EnsureSchema creates the kv_entries table if it is missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, Schema)
	return err
}

func (r *kvRepository) Get(ctx context.Context, key string) (string, bool, error) {
	query := `
		SELECT value
		FROM kv_entries
		WHERE key = $1
	`
	var value string
	err := r.DB.QueryRowContext(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

func (r *kvRepository) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`
	_, err := r.DB.ExecContext(ctx, query, key, value, time.Now().UTC())
	return err
}
