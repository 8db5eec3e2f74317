// Package cache keeps high-churn counters out of Postgres. View counts
// are incremented on every read, so they live in Redis and are merged
// into responses on the way out.
package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// ViewCounter tracks per-post view counts in Redis
type ViewCounter struct {
	client *redis.Client
}

// NewViewCounter connects to Redis and verifies the connection
func NewViewCounter(addr, password string, db int) (*ViewCounter, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &ViewCounter{client: client}, nil
}

// NewViewCounterWithClient wraps an existing client, used by tests
func NewViewCounterWithClient(client *redis.Client) *ViewCounter {
	return &ViewCounter{client: client}
}

// Close releases the Redis connection
func (c *ViewCounter) Close() error {
	return c.client.Close()
}

func viewKey(postID string) string {
	return "post:views:" + postID
}

// Hit records one view and returns the new total
func (c *ViewCounter) Hit(ctx context.Context, postID string) (int64, error) {
	count, err := c.client.Incr(ctx, viewKey(postID)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment view count: %w", err)
	}
	return count, nil
}

// Get returns the current view count without recording a view
func (c *ViewCounter) Get(ctx context.Context, postID string) (int64, error) {
	count, err := c.client.Get(ctx, viewKey(postID)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read view count: %w", err)
	}
	return count, nil
}

// GetMany returns view counts for a batch of posts in one round trip.
// Posts never viewed report zero.
func (c *ViewCounter) GetMany(ctx context.Context, postIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}

	keys := make([]string, len(postIDs))
	for i, id := range postIDs {
		keys[i] = viewKey(id)
	}

	values, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read view counts: %w", err)
	}

	for i, v := range values {
		if v == nil {
			counts[postIDs[i]] = 0
			continue
		}
		s, ok := v.(string)
		if !ok {
			continue
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			continue
		}
		counts[postIDs[i]] = n
	}
	return counts, nil
}

// Forget drops the counter for a deleted post
func (c *ViewCounter) Forget(ctx context.Context, postID string) error {
	if err := c.client.Del(ctx, viewKey(postID)).Err(); err != nil {
		return fmt.Errorf("failed to drop view count: %w", err)
	}
	return nil
}
