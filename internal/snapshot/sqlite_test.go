package snapshot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(":memory:")
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_Save(t *testing.T) {
	store := setupSQLiteStore(t)
	ctx := context.Background()

	run := RunInfo{
		ID:        "a6a0ae9d-52f8-4b46-9a14-6de8db52a9bb",
		Source:    "transactions.csv",
		StartedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	rows := []Row{
		{Client: 1, Available: 1.5, Held: 0, Total: 1.5, Locked: false},
		{Client: 2, Available: 0, Held: 0, Total: 0, Locked: true},
	}

	require.NoError(t, store.Save(ctx, run, rows))

	var count int
	err := store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM replay_snapshots WHERE run_id = ?", run.ID).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	var available, total float64
	var locked bool
	var source string
	err = store.db.QueryRowContext(ctx,
		"SELECT available, total, locked, source FROM replay_snapshots WHERE run_id = ? AND client = ?",
		run.ID, 1).Scan(&available, &total, &locked, &source)
	require.NoError(t, err)
	assert.Equal(t, 1.5, available)
	assert.Equal(t, 1.5, total)
	assert.False(t, locked)
	assert.Equal(t, "transactions.csv", source)
}

func TestSQLiteStore_SaveEmptyRun(t *testing.T) {
	store := setupSQLiteStore(t)
	ctx := context.Background()

	run := RunInfo{ID: "empty-run", Source: "empty.csv", StartedAt: time.Now().UTC()}
	require.NoError(t, store.Save(ctx, run, nil))

	var count int
	err := store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM replay_snapshots WHERE run_id = ?", run.ID).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestSQLiteStore_TwoRunsKeptApart(t *testing.T) {
	store := setupSQLiteStore(t)
	ctx := context.Background()

	first := RunInfo{ID: "run-1", Source: "a.csv", StartedAt: time.Now().UTC()}
	second := RunInfo{ID: "run-2", Source: "b.csv", StartedAt: time.Now().UTC()}

	require.NoError(t, store.Save(ctx, first, []Row{{Client: 1, Available: 1}}))
	require.NoError(t, store.Save(ctx, second, []Row{{Client: 1, Available: 2}, {Client: 2}}))

	var count int
	err := store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM replay_snapshots WHERE run_id = ?", second.ID).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
