package config

import (
	"errors"
	"fmt"
	"os"
)

// Snapshot sink drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds the optional runtime configuration. With nothing set, the
// process reads one input file and writes the report to stdout, nothing
// else.
type Config struct {
	// SnapshotDriver selects where the final per-run snapshots are also
	// written: "sqlite", "postgres", or empty for no snapshot sink.
	SnapshotDriver string
	// SnapshotDSN is the data source for the selected driver.
	SnapshotDSN string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		SnapshotDriver: os.Getenv("SNAPSHOT_DRIVER"),
		SnapshotDSN:    os.Getenv("SNAPSHOT_DSN"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	switch c.SnapshotDriver {
	case "", DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unknown SNAPSHOT_DRIVER %q (use %s or %s)", c.SnapshotDriver, DriverSQLite, DriverPostgres)
	}

	if c.SnapshotDriver != "" && c.SnapshotDSN == "" {
		return errors.New("SNAPSHOT_DSN is required when SNAPSHOT_DRIVER is set")
	}
	if c.SnapshotDriver == "" && c.SnapshotDSN != "" {
		return errors.New("SNAPSHOT_DSN is set but SNAPSHOT_DRIVER is not")
	}

	return nil
}

// SnapshotsEnabled reports whether a snapshot sink is configured.
func (c *Config) SnapshotsEnabled() bool {
	return c.SnapshotDriver != ""
}
