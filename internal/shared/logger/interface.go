package logger

import (
	"context"
	"log/slog"
	"os"
)

// Interface is the logger every component receives by injection. The w
// variants take alternating key/value pairs.
type Interface interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
	With(args ...any) Interface
	Named(name string) Interface

	Debugw(msg string, keysAndValues ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Errorw(msg string, keysAndValues ...interface{})
	Fatalw(msg string, keysAndValues ...interface{})
}

// exit is swapped in tests so Fatal can be observed.
var exit = os.Exit

// slogLogger adapts *slog.Logger to Interface.
type slogLogger struct {
	logger *slog.Logger
}

// NewLogger wraps the process-wide logger configured by Init.
func NewLogger() Interface {
	return NewLoggerWithSlog(Get())
}

func NewLoggerWithSlog(slogLog *slog.Logger) Interface {
	return &slogLogger{logger: slogLog}
}

func (l *slogLogger) log(level slog.Level, msg string, args []any) {
	l.logger.Log(context.Background(), level, msg, args...)
}

func (l *slogLogger) Debug(msg string, args ...any) { l.log(slog.LevelDebug, msg, args) }
func (l *slogLogger) Info(msg string, args ...any)  { l.log(slog.LevelInfo, msg, args) }
func (l *slogLogger) Warn(msg string, args ...any)  { l.log(slog.LevelWarn, msg, args) }
func (l *slogLogger) Error(msg string, args ...any) { l.log(slog.LevelError, msg, args) }

func (l *slogLogger) Debugw(msg string, keysAndValues ...interface{}) {
	l.log(slog.LevelDebug, msg, keysAndValues)
}

func (l *slogLogger) Infow(msg string, keysAndValues ...interface{}) {
	l.log(slog.LevelInfo, msg, keysAndValues)
}

func (l *slogLogger) Warnw(msg string, keysAndValues ...interface{}) {
	l.log(slog.LevelWarn, msg, keysAndValues)
}

func (l *slogLogger) Errorw(msg string, keysAndValues ...interface{}) {
	l.log(slog.LevelError, msg, keysAndValues)
}

// Fatal logs at error level and exits with status 1.
func (l *slogLogger) Fatal(msg string, args ...any) {
	l.log(slog.LevelError, msg, args)
	exit(1)
}

func (l *slogLogger) Fatalw(msg string, keysAndValues ...interface{}) {
	l.Fatal(msg, keysAndValues...)
}

func (l *slogLogger) With(args ...any) Interface {
	return &slogLogger{logger: l.logger.With(args...)}
}

// Named tags every record with component=name, the same key WithComponent uses.
func (l *slogLogger) Named(name string) Interface {
	return &slogLogger{logger: l.logger.With("component", name)}
}
