package ratelimit

import (
	"context"
	"sync"
	"time"
)

type memoryBucket struct {
	start time.Time
	count int
}

// MemoryRateLimiter is a single-process limiter used when Redis is not
// configured.
type MemoryRateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*memoryBucket
	now     func() time.Time
}

func NewMemoryRateLimiter() *MemoryRateLimiter {
	return &MemoryRateLimiter{
		buckets: make(map[string]*memoryBucket),
		now:     time.Now,
	}
}

func (l *MemoryRateLimiter) Allow(ctx context.Context, key string, window Window) (bool, error) {
	if !window.Enabled() {
		return true, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	start := bucketStart(l.now(), window.Window)
	b, ok := l.buckets[key]
	if !ok || !b.start.Equal(start) {
		b = &memoryBucket{start: start}
		l.buckets[key] = b
		l.sweep(start)
	}
	b.count++

	return b.count <= window.Limit, nil
}

func (l *MemoryRateLimiter) Reset(ctx context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.buckets, key)
	return nil
}

// sweep drops buckets from earlier windows. Caller holds mu.
func (l *MemoryRateLimiter) sweep(current time.Time) {
	for k, b := range l.buckets {
		if b.start.Before(current) {
			delete(l.buckets, k)
		}
	}
}
