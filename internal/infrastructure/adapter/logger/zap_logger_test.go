package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/amirhossein-jamali/cnab-processor/internal/domain/port/core"
)

func newObservedLogger(level core.LogLevel) (core.Logger, *observer.ObservedLogs) {
	obsCore, logs := observer.New(zapcore.DebugLevel)
	return NewZapLoggerFromCore(zap.New(obsCore), level), logs
}

func TestZapLogger_Levels(t *testing.T) {
	log, logs := newObservedLogger(core.LogLevelWarn)

	log.Debug("debug", nil)
	log.Info("info", nil)
	log.Warn("warn", map[string]any{"file_id": "abc"})
	log.Error("error", nil)

	require.Equal(t, 2, logs.Len())
	entries := logs.All()
	assert.Equal(t, "warn", entries[0].Message)
	assert.Equal(t, "abc", entries[0].ContextMap()["file_id"])
	assert.Equal(t, "error", entries[1].Message)
	assert.Equal(t, core.LogLevelWarn, log.GetLevel())
}

func TestZapLogger_SetLevel(t *testing.T) {
	log, logs := newObservedLogger(core.LogLevelInfo)

	log.Debug("hidden", nil)
	log.SetLevel(core.LogLevelDebug)
	log.Debug("shown", nil)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "shown", logs.All()[0].Message)
	assert.Equal(t, core.LogLevelDebug, log.GetLevel())
}

func TestZapLogger_With(t *testing.T) {
	log, logs := newObservedLogger(core.LogLevelInfo)

	child := log.With(map[string]any{"file_id": "f-1"})
	child.Info("processing started", map[string]any{"attempt": 1})

	// the child shares the parent's level
	log.SetLevel(core.LogLevelError)
	child.Info("dropped", nil)

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "f-1", fields["file_id"])
	assert.EqualValues(t, 1, fields["attempt"])
	assert.Same(t, log, log.With(nil))
}

func TestNoopLogger(t *testing.T) {
	log := NewNoopLogger()
	log.SetLevel(core.LogLevelError)

	assert.Equal(t, core.LogLevelError, log.GetLevel())
	assert.Same(t, log, log.With(map[string]any{"a": 1}))
	assert.NoError(t, log.Flush())
}
