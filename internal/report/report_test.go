package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/tx-replay/internal/ledger"
	"github.com/example/tx-replay/internal/records"
)

func buildProcessor(t *testing.T, input string) *ledger.Processor {
	t.Helper()
	p := ledger.NewProcessor(nil)
	p.Replay(records.NewReader(strings.NewReader(input)))
	return p
}

func TestWrite_HeaderOnly(t *testing.T) {
	p := ledger.NewProcessor(nil)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, p))

	assert.Equal(t, "client,available,held,total,locked\n", buf.String())
}

// Row order over clients is unspecified, so rows are compared as a set.
func TestWrite_Rows(t *testing.T) {
	p := buildProcessor(t, `type,client,tx,amount
deposit, 1, 1, 1.0
deposit, 2, 2, 2.0
deposit, 1, 3, 2.0
withdrawal, 1, 4, 1.5
withdrawal, 2, 5, 3.0
dispute, 1, 3,
resolve, 1, 3,
dispute, 2, 2,
chargeback, 2, 2,
`)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, p))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "client,available,held,total,locked", lines[0])
	assert.ElementsMatch(t, []string{
		"1,1.5,0,1.5,false",
		"2,0,0,0,true",
	}, lines[1:])
}

func TestWrite_HeldColumn(t *testing.T) {
	p := buildProcessor(t, `type,client,tx,amount
deposit, 1, 1, 1.0
dispute, 1, 1,
`)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, p))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "1,0,1,1,false", lines[1])
}

func TestFormatAmount(t *testing.T) {
	testCases := []struct {
		value    float64
		expected string
	}{
		{0, "0"},
		{1, "1"},
		{1.5, "1.5"},
		{0.25, "0.25"},
		{1234.5678, "1234.5678"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, formatAmount(tc.value))
	}
}
