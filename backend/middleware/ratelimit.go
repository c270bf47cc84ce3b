package middleware

import (
	"context"
	"log"

	"examportal/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// AttemptLimiter is satisfied by cache.LoginLimiter.
type AttemptLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Reset(ctx context.Context, key string) error
}

// LoginRateLimit throttles login attempts per client IP.
// A nil limiter disables throttling; limiter errors let the request through.
func LoginRateLimit(limiter AttemptLimiter, logger *log.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if limiter == nil {
			return c.Next()
		}

		key := c.IP()

		ctx := c.UserContext()
		allowed, err := limiter.Allow(ctx, key)
		if err != nil {
			logger.Printf("login limiter unavailable: %v", err)
			return c.Next()
		}
		if !allowed {
			return utils.TooManyRequests(c, "Too many login attempts, please try again later")
		}

		if err := c.Next(); err != nil {
			return err
		}

		if c.Response().StatusCode() == fiber.StatusOK {
			if err := limiter.Reset(ctx, key); err != nil {
				logger.Printf("login limiter reset failed: %v", err)
			}
		}
		return nil
	}
}
