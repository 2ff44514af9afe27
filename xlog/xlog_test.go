package xlog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/benz9527/xlist/lib/infra"
)

func TestXLogger_JSONOutput(t *testing.T) {
	syncer := &XMemAsOutSyncer{}
	logger := NewXLogger(
		WithXLoggerName("XLogTest"),
		WithXLoggerLevel(LogLevelDebug),
		WithXLoggerEncoder(JSON),
		WithXLoggerWriteSyncer(syncer),
	)

	logger.Debug("debug entry", zap.Int("answer", 42))
	logger.Info("info entry")
	logger.Warn("warn entry")
	logger.Error(errors.New("boom"), "error entry")

	out := syncer.String()
	assert.Contains(t, out, `"msg":"debug entry"`)
	assert.Contains(t, out, `"answer":42`)
	assert.Contains(t, out, `"component":"XLogTest"`)
	assert.Contains(t, out, `"lvl":"WARN"`)
	assert.Contains(t, out, `"error":"boom"`)
	require.NoError(t, logger.Sync())
}

func TestXLogger_IncreaseLogLevel(t *testing.T) {
	syncer := &XMemAsOutSyncer{}
	logger := NewXLogger(
		WithXLoggerLevel(LogLevelDebug),
		WithXLoggerWriteSyncer(syncer),
	)

	logger.IncreaseLogLevel(zapcore.ErrorLevel)
	logger.Info("should be filtered")
	assert.Empty(t, syncer.String())

	logger.Logf(zapcore.ErrorLevel, "still %s", "visible")
	assert.Contains(t, syncer.String(), "still visible")
}

func TestXLogger_ErrorStack(t *testing.T) {
	syncer := &XMemAsOutSyncer{}
	logger := NewXLogger(
		WithXLoggerEncoder(JSON),
		WithXLoggerWriteSyncer(syncer),
	)

	err := infra.NewErrorStack("stacked failure")
	logger.ErrorStack(err, "operation failed")

	out := syncer.String()
	assert.Contains(t, out, `"error":"stacked failure"`)
	assert.Contains(t, out, "errorStack")
	assert.Contains(t, out, "TestXLogger_ErrorStack")

	// Plain errors degrade to the message only.
	syncer.Reset()
	logger.ErrorStack(errors.New("plain"), "operation failed")
	assert.Contains(t, syncer.String(), `"error":"plain"`)
	assert.NotContains(t, syncer.String(), "errorStack")
}

func TestXLogTeeSyncer(t *testing.T) {
	first, second := &XMemAsOutSyncer{}, &XMemAsOutSyncer{}
	logger := NewXLogger(
		WithXLoggerEncoder(PlainText),
		WithXLoggerWriteSyncer(XLogTeeSyncer(first, second)),
	)

	logger.Info("fan out")
	require.NoError(t, logger.Sync())
	assert.Contains(t, first.String(), "fan out")
	assert.Equal(t, first.String(), second.String())
}

func TestAntsXLogger(t *testing.T) {
	syncer := &XMemAsOutSyncer{}
	logger := NewXLogger(WithXLoggerWriteSyncer(syncer))

	antsLogger := NewAntsXLogger(logger)
	antsLogger.Printf("worker %d exits from panic", 3)
	assert.Contains(t, syncer.String(), "worker 3 exits from panic")

	var nilLogger *AntsXLogger
	nilLogger.Printf("must not panic")
}
