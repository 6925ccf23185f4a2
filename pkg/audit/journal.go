package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"
)

// Entry records one absorbed anomaly from a replay run: a malformed row, an
// annotation against an unknown transaction, a chargeback without an open
// dispute, and so on. Entries are hash-chained so a run's anomaly trail can
// be verified after the fact.
type Entry struct {
	Seq          int    `json:"seq"`
	Timestamp    string `json:"timestamp"`
	PreviousHash string `json:"previous_hash"`
	Kind         string `json:"kind"`
	Detail       string `json:"detail"`
	Hash         string `json:"hash"`
}

// Journal is a tamper-evident anomaly trail for a single replay run. The
// chain is seeded from the run id, so entries from different runs never
// verify against each other.
type Journal struct {
	mu       sync.Mutex
	runID    string
	prevHash string
	entries  []*Entry
}

// NewJournal creates a journal for the given run id.
func NewJournal(runID string) *Journal {
	return &Journal{
		runID:    runID,
		prevHash: seedHash(runID),
	}
}

// RunID returns the run id the journal was created for.
func (j *Journal) RunID() string {
	return j.runID
}

// Record appends an anomaly to the chain and returns the new entry.
func (j *Journal) Record(kind, detail string) *Entry {
	j.mu.Lock()
	defer j.mu.Unlock()

	entry := &Entry{
		Seq:          len(j.entries),
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		PreviousHash: j.prevHash,
		Kind:         kind,
		Detail:       detail,
	}
	entry.Hash = entryHash(entry)

	j.prevHash = entry.Hash
	j.entries = append(j.entries, entry)
	return entry
}

// Recordf is Record with fmt.Sprintf formatting of the detail.
func (j *Journal) Recordf(kind, format string, args ...interface{}) *Entry {
	return j.Record(kind, fmt.Sprintf(format, args...))
}

// Entries returns the recorded anomalies in order.
func (j *Journal) Entries() []*Entry {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]*Entry, len(j.entries))
	copy(out, j.entries)
	return out
}

// Len returns the number of recorded anomalies.
func (j *Journal) Len() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.entries)
}

// VerifyChain checks that entries form a valid hash chain for the run.
func VerifyChain(runID string, entries []*Entry) bool {
	prevHash := seedHash(runID)
	for i, entry := range entries {
		if entry.Seq != i || entry.PreviousHash != prevHash {
			return false
		}
		if entryHash(entry) != entry.Hash {
			return false
		}
		prevHash = entry.Hash
	}
	return true
}

func seedHash(runID string) string {
	sum := sha256.Sum256([]byte("run|" + runID))
	return hex.EncodeToString(sum[:])
}

func entryHash(e *Entry) string {
	input := fmt.Sprintf("%s|%d|%s|%s|%s", e.PreviousHash, e.Seq, e.Timestamp, e.Kind, e.Detail)
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}
