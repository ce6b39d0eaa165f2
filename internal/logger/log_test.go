package logger

import (
	"context"
	"golf-coach/internal/config"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWritesJSONToFile(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "app.log")
	Init(config.LogConfig{Level: "debug", File: path, MaxSizeMB: 1})

	Ctx(WithRequestID(context.Background(), "req-1")).Info("round.create", "uid", 1)
	Debug("store.seed", "uid", 1)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `"msg":"logger.init"`)
	assert.Contains(t, out, `"msg":"round.create"`)
	assert.Contains(t, out, `"request_id":"req-1"`)
	assert.Contains(t, out, `"msg":"store.seed"`)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warn"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel("verbose"))
}

func TestRequestIDMissing(t *testing.T) {
	assert.Empty(t, RequestID(context.Background()))
	assert.Equal(t, slog.Default(), Ctx(context.Background()))
}
