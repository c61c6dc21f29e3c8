package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"articles-api/internal/handler/http/requestid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{in: "", want: slog.LevelInfo},
		{in: "debug", want: slog.LevelDebug},
		{in: "DEBUG", want: slog.LevelDebug},
		{in: " warn ", want: slog.LevelWarn},
		{in: "warning", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "verbose", want: slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNewLogger(t *testing.T) {
	assert.NotNil(t, NewLogger("info"))
}

func TestLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		log       func(*slog.Logger)
		wantEntry bool
	}{
		{name: "info logged at info", level: "info", log: func(l *slog.Logger) { l.Info("m") }, wantEntry: true},
		{name: "debug dropped at info", level: "info", log: func(l *slog.Logger) { l.Debug("m") }, wantEntry: false},
		{name: "debug logged at debug", level: "debug", log: func(l *slog.Logger) { l.Debug("m") }, wantEntry: true},
		{name: "warn dropped at error", level: "error", log: func(l *slog.Logger) { l.Warn("m") }, wantEntry: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(newLogger(&buf, tt.level))
			assert.Equal(t, tt.wantEntry, buf.Len() > 0)
		})
	}
}

func TestLogger_JSONStructure(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "info")

	logger.Info("article created", slog.Int64("id", 7))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "article created", entry["msg"])
	assert.Equal(t, float64(7), entry["id"])
	assert.Contains(t, entry, "time")
}

func TestWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	base := newLogger(&buf, "info")

	ctx := requestid.WithRequestID(context.Background(), "req-123")
	WithRequestID(ctx, base).Info("handled")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-123", entry["request_id"])
}

func TestWithRequestID_Missing(t *testing.T) {
	var buf bytes.Buffer
	base := newLogger(&buf, "info")

	got := WithRequestID(context.Background(), base)
	assert.Same(t, base, got)

	got.Info("handled")
	assert.NotContains(t, buf.String(), "request_id")
}
