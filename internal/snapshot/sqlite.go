package snapshot

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS replay_snapshots (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT NOT NULL,
	source TEXT NOT NULL,
	client INTEGER NOT NULL,
	available REAL NOT NULL,
	held REAL NOT NULL,
	total REAL NOT NULL,
	locked INTEGER NOT NULL,
	created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_replay_snapshots_run_id ON replay_snapshots(run_id);
CREATE INDEX IF NOT EXISTS idx_replay_snapshots_client ON replay_snapshots(client);
`

// SQLiteStore writes snapshot rows to a SQLite database file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at dsn and ensures the
// snapshot schema exists.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create snapshot schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Save writes all rows of one run in a single transaction.
func (s *SQLiteStore) Save(ctx context.Context, run RunInfo, rows []Row) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO replay_snapshots (run_id, source, client, available, held, total, locked, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	for _, row := range rows {
		_, err := tx.ExecContext(ctx, query,
			run.ID, run.Source, row.Client, row.Available, row.Held, row.Total, row.Locked, run.StartedAt)
		if err != nil {
			return fmt.Errorf("failed to insert snapshot for client %d: %w", row.Client, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
