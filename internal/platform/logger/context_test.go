package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careergenie/careergenie-api/internal/config"
	"github.com/careergenie/careergenie-api/internal/platform/logger"
)

func TestSetup(t *testing.T) {
	t.Run("returns a usable logger", func(t *testing.T) {
		log, err := logger.Setup(config.ServerConfig{Port: 8080, LogLevel: "debug"})
		require.NoError(t, err)
		require.NotNil(t, log)
		assert.True(t, log.Enabled(context.Background(), slog.LevelDebug))
	})

	t.Run("invalid level falls back to info", func(t *testing.T) {
		log, err := logger.Setup(config.ServerConfig{Port: 8080, LogLevel: "verbose"})
		require.NoError(t, err)
		assert.False(t, log.Enabled(context.Background(), slog.LevelDebug))
		assert.True(t, log.Enabled(context.Background(), slog.LevelInfo))
	})

	t.Run("warn level suppresses info", func(t *testing.T) {
		log, err := logger.Setup(config.ServerConfig{Port: 8080, LogLevel: "warn"})
		require.NoError(t, err)
		assert.False(t, log.Enabled(context.Background(), slog.LevelInfo))
		assert.True(t, log.Enabled(context.Background(), slog.LevelWarn))
	})
}

func TestContextPropagation(t *testing.T) {
	var buf bytes.Buffer
	scoped := slog.New(slog.NewJSONHandler(&buf, nil)).With(slog.String("trace_id", "abc123"))

	ctx := logger.WithLogger(context.Background(), scoped)

	logger.FromContext(ctx).Info("something happened")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "abc123", entry["trace_id"])
	assert.Equal(t, "something happened", entry["msg"])
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	got := logger.FromContext(context.Background())
	assert.Equal(t, slog.Default(), got)
}

func TestFromContextOrDefault(t *testing.T) {
	def := slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))

	t.Run("prefers context logger", func(t *testing.T) {
		scoped := slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))
		ctx := logger.WithLogger(context.Background(), scoped)
		assert.Equal(t, scoped, logger.FromContextOrDefault(ctx, def))
	})

	t.Run("falls back to provided default", func(t *testing.T) {
		assert.Equal(t, def, logger.FromContextOrDefault(context.Background(), def))
	})
}
