package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"portal-service/pkg/config"
)

// UnreadCounts caches per-user unread notification counts. The cache is
// best-effort: a nil receiver or a redis failure falls through to the store,
// and every ledger write invalidates the user's entry.
type UnreadCounts struct {
	client *redis.Client
	ttl    time.Duration
}

// Connect creates the unread-count cache. Returns nil when no address is
// configured; a nil cache is safe to use and always misses.
func Connect(ctx context.Context, cfg *config.RedisConfig) (*UnreadCounts, error) {
	if cfg.Addr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &UnreadCounts{client: client, ttl: 30 * time.Second}, nil
}

func key(userID uint) string {
	return fmt.Sprintf("helpdesk:unread:%d", userID)
}

// Get returns the cached count and whether it was present
func (c *UnreadCounts) Get(ctx context.Context, userID uint) (int64, bool) {
	if c == nil || c.client == nil {
		return 0, false
	}
	count, err := c.client.Get(ctx, key(userID)).Int64()
	if err != nil {
		return 0, false
	}
	return count, true
}

// Set stores the count with a short TTL
func (c *UnreadCounts) Set(ctx context.Context, userID uint, count int64) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Set(ctx, key(userID), count, c.ttl)
}

// Invalidate drops the user's entry. Called on every ledger write.
func (c *UnreadCounts) Invalidate(ctx context.Context, userID uint) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(ctx, key(userID))
}

// Close releases the redis connection
func (c *UnreadCounts) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
