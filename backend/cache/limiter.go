package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// countAttempt increments KEYS[1] and starts its window on the first hit.
var countAttempt = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if n == 1 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return n
`)

// LoginLimiter counts login attempts per key in a fixed window.
type LoginLimiter struct {
	cache       *Cache
	maxAttempts int64
	window      time.Duration
	prefix      string
}

func NewLoginLimiter(c *Cache, maxAttempts int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{
		cache:       c,
		maxAttempts: int64(maxAttempts),
		window:      window,
		prefix:      "login_attempts:",
	}
}

// Allow records one attempt for key and reports whether it is within the limit.
// The window starts with the first attempt.
func (l *LoginLimiter) Allow(ctx context.Context, key string) (bool, error) {
	n, err := countAttempt.Run(ctx, l.cache.Client, []string{l.prefix + key}, l.window.Milliseconds()).Int64()
	if err != nil {
		return false, fmt.Errorf("counting login attempt: %w", err)
	}

	return n <= l.maxAttempts, nil
}

// Reset clears the counter after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, key string) error {
	if err := l.cache.Client.Del(ctx, l.prefix+key).Err(); err != nil {
		return fmt.Errorf("resetting login attempts: %w", err)
	}
	return nil
}

// HealthCheck reports whether the Redis behind the limiter is reachable.
func (l *LoginLimiter) HealthCheck(ctx context.Context) error {
	return l.cache.HealthCheck(ctx)
}
