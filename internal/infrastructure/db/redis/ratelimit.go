package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// FixedWindowLimiter counts requests per key in fixed windows backed by Redis.
// The counter is created with the window TTL on its first increment, so the
// window starts at the first request and resets when the key expires.
// Key format: ratelimit:<key>
type FixedWindowLimiter struct {
	client *redis.Client
	max    int64
	window time.Duration
}

// NewFixedWindowLimiter creates a limiter allowing max requests per window.
func NewFixedWindowLimiter(client *redis.Client, max int64, window time.Duration) *FixedWindowLimiter {
	return &FixedWindowLimiter{client: client, max: max, window: window}
}

// Allow increments the counter for key and reports whether the request fits
// in the current window. INCR is atomic, so concurrent requests cannot
// under-count.
func (l *FixedWindowLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := l.key(key)

	n, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit incr: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, k, l.window).Err(); err != nil {
			return false, fmt.Errorf("rate limit expire: %w", err)
		}
	}

	return n <= l.max, nil
}

func (l *FixedWindowLimiter) key(key string) string {
	return "ratelimit:" + key
}
