package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/roleforge-api/internal/config"
	"github.com/spec-kit/roleforge-api/internal/persistence"
	apperrors "github.com/spec-kit/roleforge-api/pkg/util"
)

// RateLimitMiddleware enforces a fixed-window request budget per client IP
// and route, counted in Redis. When Redis is unreachable requests pass
// through rather than failing closed.
func RateLimitMiddleware(cfg config.RateLimitConfig, redis *persistence.Redis, logger *zap.Logger) fiber.Handler {
	if !cfg.Enabled || redis == nil || redis.Client == nil {
		return func(c *fiber.Ctx) error { return c.Next() }
	}

	window := cfg.Window()
	return func(c *fiber.Ctx) error {
		key := fmt.Sprintf("rl:%s:%s", c.IP(), c.Path())
		ctx := c.UserContext()

		count, err := redis.Client.Incr(ctx, key).Result()
		if err != nil {
			logger.Warn("rate limit counter unavailable", zap.Error(err))
			return c.Next()
		}
		if count == 1 {
			redis.Client.Expire(ctx, key, window)
		}
		if count > int64(cfg.Requests) {
			return apperrors.NewRateLimited("rate limit exceeded")
		}
		return c.Next()
	}
}
