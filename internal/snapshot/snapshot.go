// Package snapshot persists the final account snapshots of a single replay
// run to an external database. It is strictly an output sink: nothing in the
// engine ever reads snapshots back.
package snapshot

import (
	"context"
	"fmt"
	"time"

	"github.com/example/tx-replay/internal/config"
	"github.com/example/tx-replay/internal/ledger"
)

// Row is one client's final snapshot as written to the sink.
type Row struct {
	Client    ledger.ClientID
	Available float64
	Held      float64
	Total     float64
	Locked    bool
}

// RunInfo identifies the replay run the rows belong to.
type RunInfo struct {
	ID        string
	Source    string
	StartedAt time.Time
}

// Store writes one run's snapshot rows to a backing database.
type Store interface {
	Save(ctx context.Context, run RunInfo, rows []Row) error
	Close() error
}

// Open creates the store selected by the configuration, or (nil, nil) when
// no snapshot sink is configured.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.SnapshotDriver {
	case "":
		return nil, nil
	case config.DriverSQLite:
		return NewSQLiteStore(cfg.SnapshotDSN)
	case config.DriverPostgres:
		return NewPostgresStore(ctx, cfg.SnapshotDSN)
	default:
		return nil, fmt.Errorf("unknown snapshot driver %q", cfg.SnapshotDriver)
	}
}

// Collect derives the snapshot rows for every client known to the processor.
func Collect(p *ledger.Processor) []Row {
	clients := p.Clients()
	rows := make([]Row, 0, len(clients))
	for _, client := range clients {
		acct := client.Account()
		rows = append(rows, Row{
			Client:    client.ID,
			Available: acct.Available,
			Held:      acct.Held,
			Total:     acct.Total(),
			Locked:    acct.Locked,
		})
	}
	return rows
}
