package middleware

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	apierrors "github.com/yukikurage/activity-tracker-api/internal/errors"
)

// RateLimit applies a fixed window limit per client IP, counted in Redis.
// With a nil client, or when Redis fails, requests are let through.
func RateLimit(client *redis.Client, logger *slog.Logger, name string, requests int, window time.Duration) gin.HandlerFunc {
	if requests <= 0 {
		requests = 10
	}
	if window <= 0 {
		window = time.Minute
	}

	return func(c *gin.Context) {
		if client == nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := "ratelimit:" + name + ":" + c.ClientIP()

		count, err := client.Incr(ctx, key).Result()
		if err != nil {
			logger.Warn("rate limiter unavailable", "error", err)
			c.Next()
			return
		}
		if count == 1 {
			if err := client.Expire(ctx, key, window).Err(); err != nil {
				logger.Warn("failed to set rate limit window", "error", err)
			}
		}

		remaining := int64(requests) - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(requests))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > int64(requests) {
			ttl, err := client.TTL(ctx, key).Result()
			if err != nil || ttl < 0 {
				ttl = window
			}
			c.Header("Retry-After", strconv.FormatInt(int64(ttl.Seconds())+1, 10))
			apierrors.TooManyRequests(c, "Rate limit exceeded")
			c.Abort()
			return
		}

		c.Next()
	}
}
