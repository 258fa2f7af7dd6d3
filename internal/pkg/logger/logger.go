// Package logger is a thin context-aware facade over zap.
//
// Fields attached with WithFields travel inside the context and are added to
// every line logged with it, so handlers tag a request once and services
// log with plain ctx-first calls.
package logger

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxFieldsKey struct{}

var base atomic.Pointer[zap.SugaredLogger]

func init() {
	base.Store(zap.NewNop().Sugar())
}

// Init replaces the no-op logger with a configured one. level is a zap level
// name ("debug", "info", ...); an unknown name falls back to info.
func Init(level string, development bool) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return err
	}

	base.Store(l.Sugar())
	return nil
}

// Set installs an already built logger, mostly for tests.
func Set(l *zap.Logger) {
	base.Store(l.WithOptions(zap.AddCallerSkip(1)).Sugar())
}

func Sync() {
	_ = base.Load().Sync()
}

// WithFields returns a context carrying extra key/value pairs for logging.
func WithFields(ctx context.Context, keysAndValues ...interface{}) context.Context {
	prev, _ := ctx.Value(ctxFieldsKey{}).([]interface{})
	fields := make([]interface{}, 0, len(prev)+len(keysAndValues))
	fields = append(fields, prev...)
	fields = append(fields, keysAndValues...)
	return context.WithValue(ctx, ctxFieldsKey{}, fields)
}

func from(ctx context.Context) *zap.SugaredLogger {
	l := base.Load()
	if ctx == nil {
		return l
	}
	if fields, ok := ctx.Value(ctxFieldsKey{}).([]interface{}); ok && len(fields) > 0 {
		return l.With(fields...)
	}
	return l
}

func Debug(ctx context.Context, args ...interface{}) {
	from(ctx).Debug(args...)
}

func Debugf(ctx context.Context, template string, args ...interface{}) {
	from(ctx).Debugf(template, args...)
}

func Info(ctx context.Context, args ...interface{}) {
	from(ctx).Info(args...)
}

func Infof(ctx context.Context, template string, args ...interface{}) {
	from(ctx).Infof(template, args...)
}

func Warn(ctx context.Context, args ...interface{}) {
	from(ctx).Warn(args...)
}

func Warnf(ctx context.Context, template string, args ...interface{}) {
	from(ctx).Warnf(template, args...)
}

func Error(ctx context.Context, args ...interface{}) {
	from(ctx).Error(args...)
}

func Errorf(ctx context.Context, template string, args ...interface{}) {
	from(ctx).Errorf(template, args...)
}

func Fatal(ctx context.Context, args ...interface{}) {
	from(ctx).Fatal(args...)
}

func Fatalf(ctx context.Context, template string, args ...interface{}) {
	from(ctx).Fatalf(template, args...)
}
