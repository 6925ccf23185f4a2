package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/example/tx-replay/internal/ledger"
)

// Header is the first row of every report.
var Header = []string{"client", "available", "held", "total", "locked"}

// Write renders the final account snapshot of every known client as CSV.
// Row order over clients is unspecified.
func Write(w io.Writer, p *ledger.Processor) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("error writing header: %w", err)
	}

	for _, client := range p.Clients() {
		acct := client.Account()
		row := []string{
			strconv.FormatUint(uint64(client.ID), 10),
			formatAmount(acct.Available),
			formatAmount(acct.Held),
			formatAmount(acct.Total()),
			strconv.FormatBool(acct.Locked),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("error writing row for client %d: %w", client.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// formatAmount renders a monetary value in its shortest exact decimal form,
// so 1.5 stays "1.5" and 0 stays "0".
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
