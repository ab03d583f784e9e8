package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/afristar/helpdesk/internal/config"
	apperrors "github.com/afristar/helpdesk/pkg/util"
)

// RateLimit enforces a fixed-window request budget per client IP, backed by
// a redis counter so the limit holds across replicas. Redis outages fail
// open.
func RateLimit(client *redis.Client, cfg config.RateLimitConfig, logger *zap.Logger) fiber.Handler {
	window := cfg.Window()
	return func(c *fiber.Ctx) error {
		key := "ratelimit:" + c.IP()
		ctx := c.Context()

		count, err := client.Incr(ctx, key).Result()
		if err != nil {
			logger.Warn("rate limiter unavailable", zap.Error(err))
			return c.Next()
		}
		if count == 1 {
			if err := client.Expire(ctx, key, window).Err(); err != nil {
				logger.Warn("rate limiter expire failed", zap.Error(err))
			}
		}
		if count > int64(cfg.Max) {
			return apperrors.NewTooManyRequests("too many requests, please try again later")
		}
		return c.Next()
	}
}
