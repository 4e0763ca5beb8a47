package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger keeps the printf-style API used across services. Info and Warn go
// to stdout, Error goes to stderr.
type Logger struct {
	base  *zap.Logger
	info  *zap.SugaredLogger
	warn  *zap.SugaredLogger
	error *zap.SugaredLogger
}

func New() *Logger {
	level := zapcore.InfoLevel
	if lvl, err := zapcore.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		level = lvl
	}
	return newWithLevel(level)
}

func newWithLevel(level zapcore.Level) *Logger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encoderCfg)

	stdout := zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), zap.NewAtomicLevelAt(level))
	stderr := zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), zap.NewAtomicLevelAt(zapcore.ErrorLevel))

	base := zap.New(stdout, zap.AddCaller(), zap.AddCallerSkip(1))
	errLogger := zap.New(stderr, zap.AddCaller(), zap.AddCallerSkip(1))

	return &Logger{
		base:  base,
		info:  base.Sugar(),
		warn:  base.Sugar(),
		error: errLogger.Sugar(),
	}
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.info.Infof(format, args...)
}

func (l *Logger) Warn(format string, args ...interface{}) {
	l.warn.Warnf(format, args...)
}

func (l *Logger) Error(format string, args ...interface{}) {
	l.error.Errorf(format, args...)
}

// With returns a child logger carrying the given key/value pairs on every entry.
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	return &Logger{
		base:  l.base,
		info:  l.info.With(keysAndValues...),
		warn:  l.warn.With(keysAndValues...),
		error: l.error.With(keysAndValues...),
	}
}

func (l *Logger) Sync() {
	_ = l.info.Sync()
	_ = l.error.Sync()
}
