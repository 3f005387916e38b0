// Package observabilitytest provides loggers for tests.
package observabilitytest

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wandb/tschart/internal/observability"
)

// NewTestLogger returns a logger whose output is attached to the test.
func NewTestLogger(t *testing.T) *observability.CoreLogger {
	t.Helper()
	return observability.NewCoreLogger(
		slog.New(slog.NewJSONHandler(t.Output(), &slog.HandlerOptions{Level: slog.LevelDebug})),
		nil,
	)
}

// NewRecordingTestLogger is like NewTestLogger but also returns a buffer
// with every record.
func NewRecordingTestLogger(t *testing.T) (*observability.CoreLogger, *bytes.Buffer) {
	t.Helper()

	logs := &bytes.Buffer{}
	return observability.NewCoreLogger(
		slog.New(slog.NewJSONHandler(
			io.MultiWriter(t.Output(), logs),
			&slog.HandlerOptions{Level: slog.LevelDebug},
		)),
		nil,
	), logs
}

// ExtractLogs decodes the records of a NewRecordingTestLogger buffer,
// dropping the "time" key.
func ExtractLogs(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	records := make([]map[string]any, 0)
	for line := range bytes.Lines(buf.Bytes()) {
		var record map[string]any
		require.NoError(t, json.Unmarshal(line, &record))
		delete(record, "time")
		records = append(records, record)
	}
	return records
}
