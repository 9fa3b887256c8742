package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var record map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &record))
	return record
}

func TestSourceHandler_Threshold(t *testing.T) {
	tests := []struct {
		name       string
		minLevel   slog.Level
		level      slog.Level
		wantSource bool
	}{
		{"info below warn threshold", slog.LevelWarn, slog.LevelInfo, false},
		{"warn at threshold", slog.LevelWarn, slog.LevelWarn, true},
		{"error above threshold", slog.LevelWarn, slog.LevelError, true},
		{"debug with debug threshold", slog.LevelDebug, slog.LevelDebug, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			base := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
			log := slog.New(NewSourceHandler(base, tt.minLevel))

			log.Log(context.Background(), tt.level, "hello")

			record := decodeRecord(t, &buf)
			if tt.wantSource {
				assert.Contains(t, record, slog.SourceKey)
			} else {
				assert.NotContains(t, record, slog.SourceKey)
			}
		})
	}
}

func TestSourceHandler_ReportsCallerThroughWrapper(t *testing.T) {
	var buf bytes.Buffer
	base := slog.NewJSONHandler(&buf, nil)
	log := NewLoggerWithSlog(slog.New(NewSourceHandler(base, slog.LevelWarn)))

	log.Warnw("through the wrapper", "ticket_id", "t-1")

	record := decodeRecord(t, &buf)
	source, ok := record[slog.SourceKey].(map[string]any)
	require.True(t, ok, "source should be an object")
	assert.Equal(t, "source_test.go", filepath.Base(source["file"].(string)))
	assert.Contains(t, source["function"], "TestSourceHandler_ReportsCallerThroughWrapper")
	assert.Equal(t, "t-1", record["ticket_id"])
}

func TestSourceHandler_KeepsAttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	base := slog.NewJSONHandler(&buf, nil)
	log := slog.New(NewSourceHandler(base, slog.LevelError)).With("component", "router").WithGroup("req")

	log.Info("served", "status", 200)

	record := decodeRecord(t, &buf)
	assert.Equal(t, "router", record["component"])
	assert.Equal(t, map[string]any{"status": float64(200)}, record["req"])
}
