// Package goroutine launches background work that must never crash the process.
package goroutine

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"issueflow/internal/shared/logger"
)

// SafeGoWithTimeout runs fn on its own goroutine with a context detached from
// the caller, so request cancellation does not abort fire-and-forget work.
// A panic is logged with its stack trace instead of taking the server down.
func SafeGoWithTimeout(log logger.Interface, name string, timeout time.Duration, fn func(ctx context.Context)) {
	go func() {
		defer recoverPanic(log, name)

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		fn(ctx)
	}()
}

func recoverPanic(log logger.Interface, name string) {
	if r := recover(); r != nil {
		log.Errorw("goroutine panicked",
			"goroutine", name,
			"panic", fmt.Sprintf("%v", r),
			"stack", string(debug.Stack()),
		)
	}
}
