package middlewares

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ComplaintRateLimiter caps complaint submissions per client IP per day.
// A nil client disables the limiter. Redis errors let the request through.
func ComplaintRateLimiter(client *redis.Client, queuePrefix string, limit int, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil || limit <= 0 {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := queuePrefix + ":" + c.ClientIP()

		count, err := client.Incr(ctx, key).Result()
		if err != nil {
			logger.Warn("Rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}

		// Set TTL only for the first increment
		if count == 1 {
			if err := client.Expire(ctx, key, 24*time.Hour).Err(); err != nil {
				logger.Warn("Rate limiter TTL not set", zap.String("key", key), zap.Error(err))
			}
		}

		if count > int64(limit) {
			retryAfter, _ := client.TTL(ctx, key).Result()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded",
				"retry_after": retryAfter.Seconds(),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
