package middleware

import (
	"examportal/backend/config"
	"examportal/backend/models"
	"examportal/backend/utils"

	"github.com/gofiber/fiber/v2"
)

const claimsKey = "claims"

// AuthMiddleware verifies the bearer token and stores its claims on the request.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := utils.ExtractClaimsFromToken(c, cfg)
		if err != nil {
			return utils.Unauthorized(c, "Unauthorized")
		}
		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

// RequireRole lets the request through only for the given roles.
// It must run after AuthMiddleware.
func RequireRole(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := CurrentClaims(c)
		if claims == nil {
			return utils.Unauthorized(c, "Unauthorized")
		}
		for _, role := range roles {
			if claims.Role == role {
				return c.Next()
			}
		}
		return utils.Forbidden(c, "Access denied")
	}
}

// CurrentClaims returns the claims AuthMiddleware stored, or nil.
func CurrentClaims(c *fiber.Ctx) *utils.Claims {
	claims, _ := c.Locals(claimsKey).(*utils.Claims)
	return claims
}
