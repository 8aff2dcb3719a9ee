package redis_limiter

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// fixedWindowScript increments the counter for the current window and sets
// its expiry on first hit. Returns the new count.
var fixedWindowScript = redis.NewScript(
	`local current = redis.call('INCR', KEYS[1])
	if current == 1 then
		redis.call('EXPIRE', KEYS[1], tonumber(ARGV[1]))
	end
	return current`,
)

// RedisLimiter fixed-window attempt limiter backed by Redis
type RedisLimiter struct {
	client      *redis.Client
	maxAttempts int
	keyPrefix   string
	window      time.Duration
}

// NewRedisLimiter creates a limiter allowing maxAttempts per window for each key
func NewRedisLimiter(client *redis.Client, maxAttempts int, keyPrefix string, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client:      client,
		maxAttempts: maxAttempts,
		keyPrefix:   keyPrefix,
		window:      window,
	}
}

// Allow records an attempt for key and reports whether it is within the limit
func (rl *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	result, err := fixedWindowScript.Run(ctx, rl.client, []string{rl.keyPrefix + key}, int(rl.window.Seconds())).Int()
	if err != nil {
		return false, fmt.Errorf("run limiter script: %w", err)
	}
	return result <= rl.maxAttempts, nil
}

// Reset clears the attempts for key
func (rl *RedisLimiter) Reset(ctx context.Context, key string) error {
	return rl.client.Del(ctx, rl.keyPrefix+key).Err()
}
