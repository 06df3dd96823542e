package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/phrazzld/promptlab/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// restoreDefault puts back the process-wide default logger after Setup.
func restoreDefault(t *testing.T) {
	t.Helper()
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input  string
		want   slog.Level
		wantOK bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{" warn ", slog.LevelWarn, true},
		{"warning", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"verbose", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
	}

	for _, tc := range tests {
		level, ok := logger.ParseLevel(tc.input)
		assert.Equal(t, tc.want, level, "level for %q", tc.input)
		assert.Equal(t, tc.wantOK, ok, "ok for %q", tc.input)
	}
}

func TestSetup(t *testing.T) {
	restoreDefault(t)

	var buf bytes.Buffer
	log := logger.Setup(logger.LoggerConfig{Level: "warn", Output: &buf})
	require.NotNil(t, log)
	assert.Same(t, log, slog.Default(), "Setup installs the default logger")

	log.Info("dropped")
	log.Warn("kept", "component", "test")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "test", entry["component"])
}

func TestSetup_InvalidLevel(t *testing.T) {
	restoreDefault(t)

	var buf bytes.Buffer
	log := logger.Setup(logger.LoggerConfig{Level: "chatty", Output: &buf})

	assert.Contains(t, buf.String(), "invalid log level configured")
	assert.Contains(t, buf.String(), `"configured_level":"chatty"`)

	buf.Reset()
	log.Debug("hidden")
	log.Info("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestContextLogger(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		log, buf := logger.SetupTestLogger(t)
		ctx := logger.WithLogger(context.Background(), log)

		got, ok := logger.FromContext(ctx)
		require.True(t, ok)
		assert.Same(t, log, got)

		logger.FromContextOrDefault(ctx).Info("from context")
		logger.AssertLogContains(t, buf, "from context")
	})

	t.Run("missing falls back to default", func(t *testing.T) {
		_, ok := logger.FromContext(context.Background())
		assert.False(t, ok)
		assert.Same(t, slog.Default(), logger.FromContextOrDefault(context.Background()))
	})

	t.Run("nil logger is ignored", func(t *testing.T) {
		ctx := logger.WithLogger(context.Background(), nil)
		_, ok := logger.FromContext(ctx)
		assert.False(t, ok)
	})
}

func TestTestLogBuffer(t *testing.T) {
	t.Parallel()

	log, buf := logger.SetupTestLogger(t)
	log.Info("first", "n", 1)
	log.Debug("second", "provider", "Gemini")
	log.Info("first", "n", 2)

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	assert.Len(t, buf.EntriesWithMessage("first"), 2)
	assert.Empty(t, buf.EntriesWithMessage("absent"))

	logger.AssertLogField(t, buf, "provider", "Gemini")
	logger.AssertLogField(t, buf, "n", float64(2))

	buf.Reset()
	assert.Empty(t, buf.String())
}
