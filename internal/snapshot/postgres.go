package snapshot

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS replay_snapshots (
	id BIGSERIAL PRIMARY KEY,
	run_id UUID NOT NULL,
	source TEXT NOT NULL,
	client INTEGER NOT NULL,
	available DOUBLE PRECISION NOT NULL,
	held DOUBLE PRECISION NOT NULL,
	total DOUBLE PRECISION NOT NULL,
	locked BOOLEAN NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_replay_snapshots_run_id ON replay_snapshots(run_id);
CREATE INDEX IF NOT EXISTS idx_replay_snapshots_client ON replay_snapshots(client);
`

// Pool is the subset of pgxpool.Pool the store uses.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Ping(ctx context.Context) error
	Close()
}

// PostgresStore writes snapshot rows to a PostgreSQL database.
type PostgresStore struct {
	Pool Pool
}

// NewPostgresStore connects to the database at dsn and ensures the snapshot
// schema exists.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &PostgresStore{Pool: pool}
	if err := store.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return store, nil
}

func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	queryCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := s.Pool.Exec(queryCtx, postgresSchema); err != nil {
		return fmt.Errorf("failed to create snapshot schema: %w", err)
	}
	return nil
}

// Save writes all rows of one run.
func (s *PostgresStore) Save(ctx context.Context, run RunInfo, rows []Row) error {
	queryCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	query := `
		INSERT INTO replay_snapshots (run_id, source, client, available, held, total, locked, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	for _, row := range rows {
		_, err := s.Pool.Exec(queryCtx, query,
			run.ID, run.Source, int32(row.Client), row.Available, row.Held, row.Total, row.Locked, run.StartedAt)
		if err != nil {
			return fmt.Errorf("failed to insert snapshot for client %d: %w", row.Client, err)
		}
	}

	return nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	s.Pool.Close()
	return nil
}
