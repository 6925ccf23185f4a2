package records

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

// ErrBadRow marks a row that parsed as CSV but does not have the record
// shape. Callers skip these rows; they are never fatal.
var ErrBadRow = errors.New("malformed record row")

// Reader decodes records from a CSV stream one row at a time.
type Reader struct {
	csv     *csv.Reader
	started bool
}

// NewReader wraps r in a record decoder. Rows may have a variable number of
// fields; shape validation happens per row in Next.
func NewReader(r io.Reader) *Reader {
	c := csv.NewReader(r)
	c.FieldsPerRecord = -1
	c.TrimLeadingSpace = true
	return &Reader{csv: c}
}

// Next returns the next record on the stream. It returns io.EOF at the end
// of input and an error wrapping ErrBadRow for rows that fail to parse into
// the record shape; any other CSV-level error is also reported as ErrBadRow
// so a corrupt row cannot abort ingestion.
func (r *Reader) Next() (Record, error) {
	for {
		fields, err := r.csv.Read()
		if err == io.EOF {
			return Record{}, io.EOF
		}
		if err != nil {
			return Record{}, errors.Join(ErrBadRow, err)
		}

		if !r.started {
			r.started = true
			if isHeader(fields) {
				continue
			}
		}

		rec, err := Parse(fields)
		if err != nil {
			return Record{}, errors.Join(ErrBadRow, err)
		}
		return rec, nil
	}
}

// isHeader matches the conventional header row so it is skipped silently
// instead of being reported as a malformed record.
func isHeader(fields []string) bool {
	return len(fields) > 0 && strings.EqualFold(strings.TrimSpace(fields[0]), "type")
}
