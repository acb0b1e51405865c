package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/extra/bundebug"

	"eventplanner/internal/domain"
)

// KVEntry is one persisted key.
type KVEntry struct {
	bun.BaseModel `bun:"table:kv_entries"`

	Key       string    `bun:"key,pk,notnull"`
	Value     string    `bun:"value,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

// Open opens (creating if needed) the sqlite database at path and ensures the schema exists.
// Use ":memory:" for a throwaway database. Set BUNDEBUG=1 to log queries.
func Open(ctx context.Context, path string) (*bun.DB, error) {
	dsn := path
	if path != ":memory:" {
		dsn = "file:" + path + "?mode=rwc"
	}
	raw, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// a single connection keeps ":memory:" databases shared between queries
	raw.SetMaxOpenConns(1)
	db := bun.NewDB(raw, sqlitedialect.New())
	db.AddQueryHook(bundebug.NewQueryHook(bundebug.FromEnv("BUNDEBUG")))
	if err := CreateSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// CreateSchema creates the kv table if it does not exist.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	if err := db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewCreateTable().
			Model((*KVEntry)(nil)).
			IfNotExists().
			Exec(ctx)
		return err
	}); err != nil {
		return fmt.Errorf("CreateSchema: %w", err)
	}
	return nil
}

type kvRepository struct {
	db *bun.DB
}

// NewKVRepository returns a KVStore backed by the kv_entries table.
func NewKVRepository(db *bun.DB) domain.KVStore {
	return &kvRepository{db: db}
}

func (r *kvRepository) Get(ctx context.Context, key string) (string, bool, error) {
	entry := new(KVEntry)
	err := r.db.NewSelect().
		Model(entry).
		Where("key = ?", key).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("select kv entry: %w", err)
	}
	return entry.Value, true, nil
}

func (r *kvRepository) Set(ctx context.Context, key, value string) error {
	entry := &KVEntry{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	if _, err := r.db.NewInsert().
		Model(entry).
		On("CONFLICT (key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx); err != nil {
		return fmt.Errorf("upsert kv entry: %w", err)
	}
	return nil
}
