//go:build integration

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func newTestCache(t *testing.T, image string) *Cache {
	t.Helper()
	ctx := context.Background()

	ctr, err := tcredis.Run(ctx, image)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	url, err := ctr.ConnectionString(ctx)
	require.NoError(t, err)

	c, err := New(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	require.NoError(t, c.HealthCheck(ctx))
	return c
}

func TestLoginLimiterRedis(t *testing.T) {
	// 6.2 lacks EXPIRE NX, so this also pins the limiter to older servers.
	for _, image := range []string{"redis:6.2-alpine", "redis:7-alpine"} {
		t.Run(image, func(t *testing.T) {
			ctx := context.Background()
			limiter := NewLoginLimiter(newTestCache(t, image), 2, time.Second)

			for i := 0; i < 2; i++ {
				allowed, err := limiter.Allow(ctx, "10.0.0.1")
				require.NoError(t, err)
				assert.True(t, allowed, "attempt %d", i+1)
			}
			allowed, err := limiter.Allow(ctx, "10.0.0.1")
			require.NoError(t, err)
			assert.False(t, allowed)

			allowed, err = limiter.Allow(ctx, "10.0.0.2")
			require.NoError(t, err)
			assert.True(t, allowed)

			require.NoError(t, limiter.Reset(ctx, "10.0.0.1"))
			allowed, err = limiter.Allow(ctx, "10.0.0.1")
			require.NoError(t, err)
			assert.True(t, allowed)

			allowed, err = limiter.Allow(ctx, "10.0.0.2")
			require.NoError(t, err)
			assert.True(t, allowed)
			allowed, err = limiter.Allow(ctx, "10.0.0.2")
			require.NoError(t, err)
			assert.False(t, allowed)

			time.Sleep(1500 * time.Millisecond)
			allowed, err = limiter.Allow(ctx, "10.0.0.2")
			require.NoError(t, err)
			assert.True(t, allowed)
		})
	}
}
