// README: Fixed-window rate limiter keyed by caller uid (or client IP), stored in Redis.
// The window opens on the caller's first request and closes when the key expires.
package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"wayfarer/internal/metrics"
)

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
	Prefix   string
}

// RateLimit allows cfg.Requests per cfg.Window per caller. Redis errors fail
// open so a cache outage does not take planning down with it.
func RateLimit(rdb *redis.Client, cfg RateLimitConfig, logger *zap.Logger) gin.HandlerFunc {
	if cfg.Prefix == "" {
		cfg.Prefix = "ratelimit"
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	return func(c *gin.Context) {
		if cfg.Requests <= 0 {
			c.Next()
			return
		}
		caller := CallerUID(c)
		if caller == "" {
			caller = "ip:" + c.ClientIP()
		}
		key := fmt.Sprintf("%s:%s", cfg.Prefix, caller)

		ctx := c.Request.Context()
		n, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			logger.Warn("rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}
		if n == 1 {
			if err := rdb.Expire(ctx, key, cfg.Window).Err(); err != nil {
				logger.Warn("rate limiter expire", zap.String("key", key), zap.Error(err))
			}
		}

		remaining := int64(cfg.Requests) - n
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.Requests))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		if n > int64(cfg.Requests) {
			metrics.RateLimited.Inc()
			ttl, _ := rdb.TTL(ctx, key).Result()
			if ttl > 0 {
				c.Header("Retry-After", strconv.Itoa(int(ttl.Seconds())+1))
			}
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
