package ledger

import (
	"errors"
	"fmt"
	"io"

	"github.com/example/tx-replay/internal/records"
	"github.com/example/tx-replay/pkg/audit"
)

// ApplyStatus classifies what ingesting one record did. The distinction is
// internal: no status is ever surfaced to the caller as an error, matching
// the silent-drop contract of the input stream.
type ApplyStatus string

const (
	// StatusApplied means the record mutated a client's log.
	StatusApplied ApplyStatus = "applied"
	// StatusNoOp means the record was well-formed but had no effect, e.g. a
	// dispute against an unknown tx id or a chargeback without an open
	// dispute.
	StatusNoOp ApplyStatus = "no_op"
	// StatusRejected means the record did not have the required shape for
	// its type and was dropped before touching any log.
	StatusRejected ApplyStatus = "rejected"
)

// ApplyResult reports the outcome of ingesting one record.
type ApplyResult struct {
	Status ApplyStatus
	Reason string
}

func applied() ApplyResult {
	return ApplyResult{Status: StatusApplied}
}

func noOp(format string, args ...interface{}) ApplyResult {
	return ApplyResult{Status: StatusNoOp, Reason: fmt.Sprintf(format, args...)}
}

func rejected(format string, args ...interface{}) ApplyResult {
	return ApplyResult{Status: StatusRejected, Reason: fmt.Sprintf(format, args...)}
}

// Processor ingests the record stream and owns the client registry. It is
// single-threaded: one record at a time, in stream order.
type Processor struct {
	clients map[ClientID]*Client
	journal *audit.Journal
}

// NewProcessor creates a processor. The journal may be nil; when present,
// every absorbed anomaly is recorded on it.
func NewProcessor(journal *audit.Journal) *Processor {
	return &Processor{
		clients: make(map[ClientID]*Client),
		journal: journal,
	}
}

// Apply ingests one record, creating the owning client on first reference
// and updating its transaction log. Anomalies never propagate as errors;
// they come back as no-op or rejected results and land on the journal.
func (p *Processor) Apply(rec records.Record) ApplyResult {
	result := p.apply(rec)
	if result.Status != StatusApplied && p.journal != nil {
		p.journal.Recordf(rec.Type, "client=%d tx=%d: %s", rec.Client, rec.Tx, result.Reason)
	}
	return result
}

func (p *Processor) apply(rec records.Record) ApplyResult {
	switch rec.Type {
	case records.TypeDeposit, records.TypeWithdrawal:
		if !rec.HasAmount {
			return rejected("missing amount for %s", rec.Type)
		}
		client := p.ensureClient(ClientID(rec.Client))
		client.Log.Put(TxID(rec.Tx), NewTransaction(TxKind(rec.Type), rec.Amount))
		return applied()

	case records.TypeDispute:
		return p.transition(rec, StateDisputed)

	case records.TypeResolve:
		return p.transition(rec, StateNormal)

	case records.TypeChargeback:
		return p.transition(rec, StateChargedBack)

	default:
		return rejected("unknown record type %q", rec.Type)
	}
}

// transition applies an annotation record by driving the referenced
// transaction's dispute state machine. A disallowed transition is a no-op,
// not an error: resolving a never-disputed transaction, chargeback without
// an open dispute, and annotations on terminal transactions all fall out of
// the AllowedTransitions table.
func (p *Processor) transition(rec records.Record, to TxState) ApplyResult {
	client := p.ensureClient(ClientID(rec.Client))
	tx, ok := client.Log.Get(TxID(rec.Tx))
	if !ok {
		return noOp("%s references unknown tx", rec.Type)
	}

	if err := tx.Transition(TxID(rec.Tx), to); err != nil {
		return noOp("%s not allowed: %v", rec.Type, err)
	}
	return applied()
}

// ensureClient returns the client for id, creating it with an empty log on
// first reference.
func (p *Processor) ensureClient(id ClientID) *Client {
	client, ok := p.clients[id]
	if !ok {
		client = NewClient(id)
		p.clients[id] = client
	}
	return client
}

// Client looks up a client by id.
func (p *Processor) Client(id ClientID) (*Client, bool) {
	client, ok := p.clients[id]
	return client, ok
}

// Clients returns every known client in unspecified order.
func (p *Processor) Clients() []*Client {
	out := make([]*Client, 0, len(p.clients))
	for _, client := range p.clients {
		out = append(out, client)
	}
	return out
}

// Account derives the current snapshot for one client.
func (p *Processor) Account(id ClientID) (Account, bool) {
	client, ok := p.clients[id]
	if !ok {
		return Account{}, false
	}
	return client.Account(), true
}

// Stats summarizes one replay run.
type Stats struct {
	Applied  int
	NoOps    int
	Rejected int
}

// Absorbed returns the number of records that were dropped or had no effect.
func (s Stats) Absorbed() int {
	return s.NoOps + s.Rejected
}

// Replay consumes the reader to exhaustion, applying every record in stream
// order. Malformed rows count as rejected; nothing aborts the run.
func (p *Processor) Replay(r *records.Reader) Stats {
	var stats Stats
	for {
		rec, err := r.Next()
		if err == io.EOF {
			return stats
		}
		if err != nil {
			stats.Rejected++
			if p.journal != nil && errors.Is(err, records.ErrBadRow) {
				p.journal.Recordf("parse", "row dropped: %v", err)
			}
			continue
		}

		switch p.Apply(rec).Status {
		case StatusApplied:
			stats.Applied++
		case StatusNoOp:
			stats.NoOps++
		case StatusRejected:
			stats.Rejected++
		}
	}
}
