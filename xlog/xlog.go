package xlog

import (
	"fmt"
	"os"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/benz9527/xlist/lib/infra"
)

var _ XLogger = (*xLogger)(nil)

type xLogger struct {
	logger atomic.Pointer[zap.Logger]
}

func (l *xLogger) IncreaseLogLevel(level zapcore.Level) {
	logger := l.logger.Load().WithOptions(zap.IncreaseLevel(level))
	l.logger.Store(logger)
}

func (l *xLogger) Sync() error {
	return l.logger.Load().Sync()
}

func (l *xLogger) Debug(msg string, fields ...zap.Field) {
	l.logger.Load().Debug(msg, fields...)
}

func (l *xLogger) Info(msg string, fields ...zap.Field) {
	l.logger.Load().Info(msg, fields...)
}

func (l *xLogger) Warn(msg string, fields ...zap.Field) {
	l.logger.Load().Warn(msg, fields...)
}

func (l *xLogger) Error(err error, msg string, fields ...zap.Field) {
	newFields := []zap.Field{
		zap.String("error", err.Error()),
	}
	newFields = append(newFields, fields...)
	l.logger.Load().Error(msg, newFields...)
}

func (l *xLogger) ErrorStack(err error, msg string, fields ...zap.Field) {
	var newFields []zap.Field
	if es, ok := err.(infra.ErrorStack); ok && es != nil {
		newFields = []zap.Field{
			zap.String("error", es.Error()),
			zap.String("errorStack", fmt.Sprintf("%+v", es)),
		}
	} else {
		newFields = []zap.Field{
			zap.String("error", err.Error()),
		}
	}
	newFields = append(newFields, fields...)
	l.logger.Load().Error(msg, newFields...)
}

func (l *xLogger) Logf(lvl zapcore.Level, format string, args ...any) {
	l.logger.Load().Log(lvl, fmt.Sprintf(format, args...))
}

type loggerCfg struct {
	name    string
	level   LogLevel
	encoder LogEncoderType
	ws      zapcore.WriteSyncer
	lvlEnc  zapcore.LevelEncoder
	tsEnc   zapcore.TimeEncoder
}

type XLoggerOption func(*loggerCfg)

func WithXLoggerName(name string) XLoggerOption {
	return func(cfg *loggerCfg) {
		cfg.name = name
	}
}

func WithXLoggerLevel(lvl LogLevel) XLoggerOption {
	return func(cfg *loggerCfg) {
		cfg.level = lvl
	}
}

func WithXLoggerEncoder(typ LogEncoderType) XLoggerOption {
	return func(cfg *loggerCfg) {
		cfg.encoder = typ
	}
}

// WithXLoggerWriteSyncer redirects the log output, mostly for tests
// that have to assert on the emitted entries.
func WithXLoggerWriteSyncer(ws zapcore.WriteSyncer) XLoggerOption {
	return func(cfg *loggerCfg) {
		cfg.ws = ws
	}
}

func NewXLogger(opts ...XLoggerOption) XLogger {
	cfg := &loggerCfg{
		level:   getLogLevelOrDefault(os.Getenv("XLIST_LOG_LVL")),
		encoder: JSON,
	}
	for _, o := range opts {
		if o != nil {
			o(cfg)
		}
	}
	if cfg.ws == nil {
		cfg.ws = defaultWriteSyncer()
	}
	if cfg.lvlEnc == nil {
		cfg.lvlEnc = zapcore.CapitalLevelEncoder
	}
	if cfg.tsEnc == nil {
		cfg.tsEnc = zapcore.ISO8601TimeEncoder
	}

	encCfg := zapcore.EncoderConfig{
		MessageKey:    "msg",
		LevelKey:      "lvl",
		EncodeLevel:   cfg.lvlEnc,
		TimeKey:       "ts",
		EncodeTime:    cfg.tsEnc,
		CallerKey:     "callAt",
		EncodeCaller:  zapcore.ShortCallerEncoder,
		NameKey:       "component",
		EncodeName:    zapcore.FullNameEncoder,
		StacktraceKey: coreKeyIgnored,
	}
	core := zapcore.NewCore(
		getEncoderByType(cfg.encoder)(encCfg),
		cfg.ws,
		zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
			return lvl >= cfg.level.zapLevel()
		}),
	)

	zl := zap.New(core, zap.AddCaller())
	if len(cfg.name) > 0 {
		zl = zl.Named(cfg.name)
	}
	l := &xLogger{}
	l.logger.Store(zl)
	return l
}
