package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/shikshahq/school-console-api/internal/store"
)

// PostgresSnapshotRepository keeps all snapshot blobs in one table, one row
// per key. The blob stays an opaque JSON document; there is deliberately no
// per-entity schema.
type PostgresSnapshotRepository struct {
	db *sqlx.DB
}

// NewPostgresSnapshotRepository builds a Postgres-backed snapshot repository.
func NewPostgresSnapshotRepository(db *sqlx.DB) *PostgresSnapshotRepository {
	return &PostgresSnapshotRepository{db: db}
}

// EnsureSchema creates the snapshots table when missing.
func (r *PostgresSnapshotRepository) EnsureSchema(ctx context.Context) error {
	const ddl = `CREATE TABLE IF NOT EXISTS snapshots (
		key TEXT PRIMARY KEY,
		data JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`
	if _, err := r.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create snapshots table: %w", err)
	}
	return nil
}

// Load reads the blob for key, returning store.ErrNotFound when absent.
func (r *PostgresSnapshotRepository) Load(ctx context.Context, key string) ([]byte, error) {
	const query = `SELECT data FROM snapshots WHERE key = $1`
	var data []byte
	if err := r.db.GetContext(ctx, &data, query, key); err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("load snapshot %s: %w", key, err)
	}
	return data, nil
}

// Save upserts the blob for key.
func (r *PostgresSnapshotRepository) Save(ctx context.Context, key string, data []byte) error {
	const query = `INSERT INTO snapshots (key, data, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.ExecContext(ctx, query, key, data, time.Now().UTC()); err != nil {
		return fmt.Errorf("save snapshot %s: %w", key, err)
	}
	return nil
}
