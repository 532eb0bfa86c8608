package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/spot-discovery/internal/pkg/errors"
	"github.com/spot-discovery/internal/pkg/utils"
)

var errRateLimited = errors.New("RATE_LIMITED", "Too many requests", fiber.StatusTooManyRequests)

// RateLimit - ограничение частоты запросов по пользователю, для анонимных по IP.
// Должен стоять после UserContext.
func RateLimit(limit int, window time.Duration) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        limit,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			if id := UserID(c); id != nil {
				return "user:" + id.String()
			}
			return "ip:" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return utils.SendError(c, errRateLimited)
		},
	})
}
