package logger

import (
	"context"
	"log/slog"
	"runtime"
	"strings"
)

const loggerPackage = "issueflow/internal/shared/logger."

// sourceHandler attaches the caller's file:line to records at or above
// minLevel. The wrapped handler must run with AddSource off.
//
// slog records the PC of whoever called *slog.Logger, which for this package
// is always a wrapper in interface.go or logger.go. The caller is found by
// walking past slog and this package instead.
type sourceHandler struct {
	handler  slog.Handler
	minLevel slog.Level
}

func NewSourceHandler(handler slog.Handler, minLevel slog.Level) slog.Handler {
	return &sourceHandler{handler: handler, minLevel: minLevel}
}

func (h *sourceHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h *sourceHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= h.minLevel {
		if src, ok := callerSource(); ok {
			r.AddAttrs(slog.Any(slog.SourceKey, src))
		}
	}
	return h.handler.Handle(ctx, r)
}

func (h *sourceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &sourceHandler{handler: h.handler.WithAttrs(attrs), minLevel: h.minLevel}
}

func (h *sourceHandler) WithGroup(name string) slog.Handler {
	return &sourceHandler{handler: h.handler.WithGroup(name), minLevel: h.minLevel}
}

func callerSource() (*slog.Source, bool) {
	var pcs [24]uintptr
	n := runtime.Callers(3, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])
	for {
		f, more := frames.Next()
		if !isLoggingFrame(f) {
			return &slog.Source{Function: f.Function, File: f.File, Line: f.Line}, f.Function != ""
		}
		if !more {
			return nil, false
		}
	}
}

// isLoggingFrame reports frames that belong to slog or to this package's
// wrappers. Tests in this package count as callers.
func isLoggingFrame(f runtime.Frame) bool {
	if strings.HasPrefix(f.Function, "log/slog.") {
		return true
	}
	return strings.HasPrefix(f.Function, loggerPackage) && !strings.HasSuffix(f.File, "_test.go")
}
