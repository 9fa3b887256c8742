package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *redis.Client {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})

	return client
}

func TestRedisRateLimiter_Allow(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client)
	ctx := context.Background()
	window := Window{Limit: 5, Window: time.Hour}

	for i := 0; i < 5; i++ {
		allowed, err := limiter.Allow(ctx, "register:1.2.3.4", window)
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should be allowed", i+1)
	}

	allowed, err := limiter.Allow(ctx, "register:1.2.3.4", window)
	require.NoError(t, err)
	assert.False(t, allowed, "6th request should be denied")

	allowed, err = limiter.Allow(ctx, "register:5.6.7.8", window)
	require.NoError(t, err)
	assert.True(t, allowed, "other keys have their own budget")
}

func TestRedisRateLimiter_NewWindow(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client)
	ctx := context.Background()
	window := Window{Limit: 1, Window: time.Minute}

	base := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return base }

	allowed, err := limiter.Allow(ctx, "k", window)
	require.NoError(t, err)
	assert.True(t, allowed)
	allowed, err = limiter.Allow(ctx, "k", window)
	require.NoError(t, err)
	assert.False(t, allowed)

	limiter.now = func() time.Time { return base.Add(time.Minute) }
	allowed, err = limiter.Allow(ctx, "k", window)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRedisRateLimiter_Reset(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client)
	ctx := context.Background()
	window := Window{Limit: 1, Window: time.Hour}

	_, err := limiter.Allow(ctx, "reset-key", window)
	require.NoError(t, err)
	require.NoError(t, limiter.Reset(ctx, "reset-key"))

	allowed, err := limiter.Allow(ctx, "reset-key", window)
	require.NoError(t, err)
	assert.True(t, allowed)
}
