// Package di provides factories that assemble application components.
package di

import (
	goredis "github.com/redis/go-redis/v9"

	"health_backend/internal/platform/http/middleware"
	"health_backend/internal/platform/redis"
	"health_backend/internal/shared/ratelimiter"
)

var (
	_ middleware.Store = (*redis.RateStore)(nil)
	_ middleware.Store = (*ratelimiter.RateLimiter)(nil)
)

// NewRateLimitStore returns a Redis-backed counter when Redis is available,
// otherwise an in-process one.
func NewRateLimitStore(rdb *goredis.Client) middleware.Store {
	if rdb != nil {
		return redis.NewRateStore(rdb, "health")
	}
	return ratelimiter.NewRateLimiter()
}
