package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), "level %q", in)
	}
}

func TestInitializeWriterJSON(t *testing.T) {
	defer Initialize("info", false)

	var buf bytes.Buffer
	InitializeWriter(&buf, "debug", true)
	Log.Debug("hello", "run_id", "abc")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "abc", entry["run_id"])
	assert.Contains(t, entry, "source")
}

func TestInitializeWriterFiltersLevel(t *testing.T) {
	defer Initialize("info", false)

	var buf bytes.Buffer
	InitializeWriter(&buf, "warn", false)
	Log.Info("dropped")
	assert.Empty(t, buf.String())

	Log.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}
