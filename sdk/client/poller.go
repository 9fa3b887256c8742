package client

import (
	"context"
	"time"
)

// DefaultPollInterval is how often UnreadPoller asks for the unread count.
const DefaultPollInterval = 60 * time.Second

// UnreadCounter is the subset of Client an UnreadPoller needs.
type UnreadCounter interface {
	UnreadCount(ctx context.Context) (int64, error)
}

// UnreadPoller keeps an unread-notification badge current. It polls on a
// fixed interval and whenever Refresh is called.
type UnreadPoller struct {
	api      UnreadCounter
	interval time.Duration
	onCount  func(int64)
	onError  func(error)
	refresh  chan struct{}
}

// PollerOption configures an UnreadPoller.
type PollerOption func(*UnreadPoller)

func WithPollInterval(d time.Duration) PollerOption {
	return func(p *UnreadPoller) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithPollErrorHandler receives failed polls. Failures are otherwise
// dropped and the next tick tries again.
func WithPollErrorHandler(fn func(error)) PollerOption {
	return func(p *UnreadPoller) {
		p.onError = fn
	}
}

func NewUnreadPoller(api UnreadCounter, onCount func(int64), opts ...PollerOption) *UnreadPoller {
	p := &UnreadPoller{
		api:      api,
		interval: DefaultPollInterval,
		onCount:  onCount,
		refresh:  make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Refresh asks for an immediate poll, e.g. when the window regains focus.
// It never blocks; calls made while a refresh is already queued coalesce.
func (p *UnreadPoller) Refresh() {
	select {
	case p.refresh <- struct{}{}:
	default:
	}
}

// Run polls once immediately and then until ctx is cancelled. It returns
// ctx.Err().
func (p *UnreadPoller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.poll(ctx)
		case <-p.refresh:
			p.poll(ctx)
		}
	}
}

func (p *UnreadPoller) poll(ctx context.Context) {
	count, err := p.api.UnreadCount(ctx)
	if err != nil {
		if p.onError != nil && ctx.Err() == nil {
			p.onError(err)
		}
		return
	}
	if p.onCount != nil {
		p.onCount(count)
	}
}
