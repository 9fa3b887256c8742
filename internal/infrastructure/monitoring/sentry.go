// Package monitoring reports panics and unexpected failures to Sentry.
// Every function is a no-op until Init succeeds with a DSN.
package monitoring

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"

	"issueflow/internal/shared/config"
)

const flushTimeout = 2 * time.Second

var enabled bool

// Init configures the global Sentry client. An empty DSN disables reporting.
func Init(cfg config.SentryConfig, environment string) (bool, error) {
	if cfg.DSN == "" {
		enabled = false
		return false, nil
	}

	env := cfg.Environment
	if env == "" {
		env = environment
	}
	sampleRate := cfg.SampleRate
	if sampleRate <= 0 {
		sampleRate = 1.0
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      env,
		SampleRate:       sampleRate,
		AttachStacktrace: true,
	}); err != nil {
		return false, fmt.Errorf("failed to initialize sentry: %w", err)
	}

	enabled = true
	return true, nil
}

// Enabled reports whether events are being sent.
func Enabled() bool {
	return enabled
}

// CaptureException sends err with the given tags and extras.
func CaptureException(err error, tags map[string]string, extras map[string]interface{}) {
	if !enabled || err == nil {
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		for k, v := range tags {
			scope.SetTag(k, v)
		}
		for k, v := range extras {
			scope.SetExtra(k, v)
		}
		sentry.CaptureException(err)
	})
}

// CapturePanic reports a recovered panic value.
func CapturePanic(recovered interface{}, tags map[string]string) {
	if !enabled {
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetLevel(sentry.LevelFatal)
		for k, v := range tags {
			scope.SetTag(k, v)
		}
		sentry.CurrentHub().Recover(recovered)
	})
}

// Flush waits for buffered events before shutdown.
func Flush() {
	if enabled {
		sentry.Flush(flushTimeout)
	}
}
