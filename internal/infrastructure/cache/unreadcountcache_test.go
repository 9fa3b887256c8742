package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"issueflow/internal/shared/logger"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})

	return client, mr
}

func TestRedisUnreadCountCache(t *testing.T) {
	ctx := context.Background()
	client, mr := setupTestRedis(t)
	c := NewRedisUnreadCountCache(client, logger.Discard())

	_, ok, err := c.Get(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "u1", 7))
	count, ok, err := c.Get(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(7), count)

	require.NoError(t, c.Invalidate(ctx, "u1"))
	_, ok, err = c.Get(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "u2", 1))
	mr.FastForward(unreadTTL + time.Second)
	_, ok, err = c.Get(ctx, "u2")
	require.NoError(t, err)
	assert.False(t, ok, "entries expire")
}

func TestRedisUnreadCountCache_CorruptValue(t *testing.T) {
	ctx := context.Background()
	client, mr := setupTestRedis(t)
	c := NewRedisUnreadCountCache(client, logger.Discard())

	require.NoError(t, mr.Set(unreadKeyPrefix+"u1", "not-a-number"))
	_, ok, err := c.Get(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, ok)
}
