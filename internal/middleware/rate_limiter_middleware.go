package middleware

import (
	"slices"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// RateLimiter limits requests per client IP over a sliding window. Requests to
// any of skipPaths are never counted or rejected.
func RateLimiter(max int, expiration time.Duration, skipPaths ...string) fiber.Handler {
	if max <= 0 {
		max = 50
	}
	if expiration == 0 {
		expiration = 1 * time.Minute
	}
	return limiter.New(limiter.Config{
		Next: func(c *fiber.Ctx) bool {
			return slices.Contains(skipPaths, c.Path())
		},
		Max:        max,
		Expiration: expiration,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"code":       fiber.StatusTooManyRequests,
				"message":    "Too many requests, slow down before tailoring another resume",
				"request_id": c.Locals("requestid"),
			})
		},
		LimiterMiddleware: limiter.SlidingWindow{},
	})
}
