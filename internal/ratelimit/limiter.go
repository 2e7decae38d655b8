package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type counter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// Limiter is a fixed-window counter kept in Redis. A nil Limiter allows
// everything, which is how throttling is disabled when Redis is not configured.
type Limiter struct {
	client counter
	prefix string
	limit  int64
	window time.Duration
}

func New(client counter, prefix string, limit int64, window time.Duration) *Limiter {
	return &Limiter{client: client, prefix: prefix, limit: limit, window: window}
}

// Allow reports whether key is still under the limit. It does not count
// anything itself; callers record failures with Fail.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	if l == nil {
		return true, nil
	}

	count, err := l.client.Get(ctx, l.prefix+key).Int64()
	if errors.Is(err, redis.Nil) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("rate limit %s: %w", key, err)
	}
	return count < l.limit, nil
}

// Fail counts one failed attempt for key within the current window.
func (l *Limiter) Fail(ctx context.Context, key string) error {
	if l == nil {
		return nil
	}

	if _, err := incrWithTTL(ctx, l.client, l.prefix+key, l.window); err != nil {
		return fmt.Errorf("rate limit %s: %w", key, err)
	}
	return nil
}

func incrWithTTL(ctx context.Context, client counter, key string, ttl time.Duration) (int64, error) {
	count, err := client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		_ = client.Expire(ctx, key, ttl).Err()
	}
	return count, nil
}

// Connect opens a Redis client and verifies it with a ping.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}
