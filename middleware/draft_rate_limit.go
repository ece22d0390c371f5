package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"leadforge/config"
	"leadforge/utils"
)

// DraftRateLimiter bounds how often a session can invoke AI draft
// generation. Storage is in-memory, consistent with the no-persistence
// model.
func DraftRateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        config.AppConfig.RateLimitDrafts,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			email, _ := c.Locals("email").(string)
			return email + ":" + c.Path()
		},
		LimitReached: func(c *fiber.Ctx) error {
			utils.LogEvent("rate_limit_hit", map[string]interface{}{
				"endpoint": c.Path(),
				"ip":       c.IP(),
			})
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":       "Too many generation requests. Please wait before trying again.",
				"retry_after": "1 minute",
			})
		},
	})
}
