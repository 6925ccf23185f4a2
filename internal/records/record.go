package records

import (
	"fmt"
	"strconv"
	"strings"
)

// Record types carried on the input stream. Deposit and withdrawal are
// monetary events; dispute, resolve and chargeback annotate an earlier
// monetary event by transaction id.
const (
	TypeDeposit    = "deposit"
	TypeWithdrawal = "withdrawal"
	TypeDispute    = "dispute"
	TypeResolve    = "resolve"
	TypeChargeback = "chargeback"
)

// Record is one decoded row of the input stream.
type Record struct {
	Type      string
	Client    uint16
	Tx        uint16
	Amount    float64
	HasAmount bool
}

// IsMonetary reports whether the record carries funds itself rather than
// annotating an earlier transaction.
func (r Record) IsMonetary() bool {
	return r.Type == TypeDeposit || r.Type == TypeWithdrawal
}

// Parse decodes a raw CSV row into a Record. Fields are whitespace-trimmed
// and the type is lowercased before any interpretation. An error means the
// row does not have the required shape and must be dropped by the caller;
// decoding never aborts the surrounding stream.
func Parse(fields []string) (Record, error) {
	if len(fields) < 3 {
		return Record{}, fmt.Errorf("row has %d fields, need at least 3", len(fields))
	}

	var rec Record
	rec.Type = strings.ToLower(strings.TrimSpace(fields[0]))
	if rec.Type == "" {
		return Record{}, fmt.Errorf("empty record type")
	}

	client, err := strconv.ParseUint(strings.TrimSpace(fields[1]), 10, 16)
	if err != nil {
		return Record{}, fmt.Errorf("invalid client id %q: %w", fields[1], err)
	}
	rec.Client = uint16(client)

	tx, err := strconv.ParseUint(strings.TrimSpace(fields[2]), 10, 16)
	if err != nil {
		return Record{}, fmt.Errorf("invalid tx id %q: %w", fields[2], err)
	}
	rec.Tx = uint16(tx)

	if len(fields) > 3 {
		raw := strings.TrimSpace(fields[3])
		if raw != "" {
			amount, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return Record{}, fmt.Errorf("invalid amount %q: %w", fields[3], err)
			}
			if amount < 0 {
				return Record{}, fmt.Errorf("negative amount %q", fields[3])
			}
			rec.Amount = amount
			rec.HasAmount = true
		}
	}

	return rec, nil
}
