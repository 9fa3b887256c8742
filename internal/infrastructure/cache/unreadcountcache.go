package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"issueflow/internal/shared/logger"
)

const (
	unreadKeyPrefix = "notifications:unread:"
	unreadTTL       = 30 * time.Second
)

// RedisUnreadCountCache keeps each user's unread notification count for a
// short time. Writers invalidate on insert and on mark-read.
type RedisUnreadCountCache struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Interface
}

func NewRedisUnreadCountCache(client *redis.Client, logger logger.Interface) *RedisUnreadCountCache {
	return &RedisUnreadCountCache{
		client: client,
		ttl:    unreadTTL,
		logger: logger,
	}
}

func (c *RedisUnreadCountCache) key(userID string) string {
	return unreadKeyPrefix + userID
}

// Get returns the cached count and whether it was present.
func (c *RedisUnreadCountCache) Get(ctx context.Context, userID string) (int64, bool, error) {
	val, err := c.client.Get(ctx, c.key(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get unread count from cache: %w", err)
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		// Corrupt entry: treat as a miss so the caller recomputes.
		c.logger.Warnw("invalid cached unread count", "user_id", userID, "value", val)
		return 0, false, nil
	}
	return count, true, nil
}

func (c *RedisUnreadCountCache) Set(ctx context.Context, userID string, count int64) error {
	if err := c.client.Set(ctx, c.key(userID), count, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set unread count in cache: %w", err)
	}
	return nil
}

func (c *RedisUnreadCountCache) Invalidate(ctx context.Context, userID string) error {
	if err := c.client.Del(ctx, c.key(userID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate unread count cache: %w", err)
	}
	c.logger.Debugw("unread count cache invalidated", "user_id", userID)
	return nil
}
