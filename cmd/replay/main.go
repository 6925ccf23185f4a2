package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/example/tx-replay/internal/config"
	"github.com/example/tx-replay/internal/ledger"
	"github.com/example/tx-replay/internal/records"
	"github.com/example/tx-replay/internal/report"
	"github.com/example/tx-replay/internal/snapshot"
	"github.com/example/tx-replay/pkg/audit"

	"github.com/google/uuid"
)

func main() {
	if len(os.Args) != 2 {
		log.Fatalf("usage: %s FILE", os.Args[0])
	}
	path := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		log.Fatalf("Failed to open file %s: %v", path, err)
	}
	defer file.Close()

	run := snapshot.RunInfo{
		ID:        uuid.NewString(),
		Source:    path,
		StartedAt: time.Now().UTC(),
	}

	journal := audit.NewJournal(run.ID)
	processor := ledger.NewProcessor(journal)
	stats := processor.Replay(records.NewReader(file))

	if err := report.Write(os.Stdout, processor); err != nil {
		log.Fatalf("Failed to write report: %v", err)
	}

	log.Printf("run %s: %d records applied, %d absorbed (%d no-op, %d rejected)",
		run.ID, stats.Applied, stats.Absorbed(), stats.NoOps, stats.Rejected)

	if cfg.SnapshotsEnabled() {
		ctx := context.Background()
		store, err := snapshot.Open(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to open snapshot store: %v", err)
		}
		defer store.Close()

		if err := store.Save(ctx, run, snapshot.Collect(processor)); err != nil {
			log.Fatalf("Failed to save snapshots: %v", err)
		}
		log.Printf("run %s: snapshots written to %s sink", run.ID, cfg.SnapshotDriver)
	}
}
