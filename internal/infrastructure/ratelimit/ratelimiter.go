package ratelimit

import (
	"context"
	"time"
)

// Window is a fixed-window budget: at most Limit hits per Window.
type Window struct {
	Limit  int
	Window time.Duration
}

// Enabled reports whether the window actually limits anything.
func (w Window) Enabled() bool {
	return w.Limit > 0 && w.Window > 0
}

type RateLimiter interface {
	// Allow records a hit for key and reports whether it fits in the window.
	Allow(ctx context.Context, key string, window Window) (bool, error)
	Reset(ctx context.Context, key string) error
}

// bucketStart aligns now to the start of its fixed window.
func bucketStart(now time.Time, window time.Duration) time.Time {
	return now.Truncate(window)
}
