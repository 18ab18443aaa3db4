package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"health_backend/internal/platform/apperror"
)

// RateLimitMessage is the details text of a 429 response.
const RateLimitMessage = "Too many requests, please try again later."

// Store counts hits per key in fixed windows.
type Store interface {
	// Incr adds a hit to key and returns the count in the current window and
	// the time left until the window resets.
	Incr(ctx context.Context, key string, window time.Duration) (count int, ttl time.Duration, err error)
}

// KeyFunc builds a rate-limit key from the request.
type KeyFunc func(c *gin.Context) string

// KeyByIP limits by client IP.
func KeyByIP() KeyFunc {
	return func(c *gin.Context) string {
		ip := c.ClientIP()
		if ip == "" {
			ip = "unknown"
		}
		return "rl:ip:" + ip
	}
}

// RateLimit allows max requests per key per window and sets the
// X-RateLimit headers. Store errors let the request through.
func RateLimit(store Store, max int, window time.Duration, keyFn KeyFunc, log logrus.FieldLogger) gin.HandlerFunc {
	if store == nil || max <= 0 || window <= 0 || keyFn == nil {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		key := keyFn(c)
		count, ttl, err := store.Incr(c.Request.Context(), key, window)
		if err != nil {
			log.WithError(err).WithField("key", key).Warn("rate limit store unavailable")
			c.Next()
			return
		}

		remaining := max - count
		if remaining < 0 {
			remaining = 0
		}
		resetSec := int((ttl + time.Second - 1) / time.Second)
		if resetSec < 0 {
			resetSec = 0
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(max))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.Itoa(resetSec))

		if count > max {
			if resetSec > 0 {
				c.Header("Retry-After", strconv.Itoa(resetSec))
			}
			_ = c.Error(apperror.TooManyRequests(RateLimitMessage))
			c.Abort()
			return
		}
		c.Next()
	}
}
