package middleware

import (
	"context"

	"task-api/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Limiter counts attempts per key
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Reset(ctx context.Context, key string) error
}

func limitKey(c *gin.Context, scope string) string {
	return scope + ":" + c.ClientIP()
}

// RateLimit rejects clients exceeding the limiter's budget with 429.
// Limiter failures let the request through.
func RateLimit(limiter Limiter, scope string, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := limitKey(c, scope)

		allowed, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			logger.WithError(err).WithField("key", key).Warn("rate limiter unavailable")
			c.Next()
			return
		}
		if !allowed {
			utils.TooManyRequests(c, "Too many attempts. Please try again later.")
			c.Abort()
			return
		}

		c.Next()
	}
}

// ResetLimitOnSuccess clears the client's attempts in scope once the handler
// responds with a 2xx status
func ResetLimitOnSuccess(limiter Limiter, scope string, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if status := c.Writer.Status(); status < 200 || status >= 300 {
			return
		}
		key := limitKey(c, scope)
		if err := limiter.Reset(c.Request.Context(), key); err != nil {
			logger.WithError(err).WithField("key", key).Warn("failed to reset rate limit")
		}
	}
}
