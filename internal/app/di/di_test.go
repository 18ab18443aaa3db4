package di

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"health_backend/internal/platform/redis"
	"health_backend/internal/shared/ratelimiter"
)

// TestNewRateLimitStore picks Redis when a client is given and memory otherwise.
func TestNewRateLimitStore(t *testing.T) {
	t.Run("redis when available", func(t *testing.T) {
		mr := miniredis.RunT(t)
		rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = rdb.Close() })

		assert.IsType(t, &redis.RateStore{}, NewRateLimitStore(rdb))
	})

	t.Run("memory otherwise", func(t *testing.T) {
		assert.IsType(t, &ratelimiter.RateLimiter{}, NewRateLimitStore(nil))
	})
}

func TestNewUserHandler(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	assert.NotNil(t, NewUserHandler(db))
}
