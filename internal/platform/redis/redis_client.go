// Package redis builds the Redis client and the Redis-backed rate-limit counter.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Config holds the connection settings.
type Config struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisClient connects and pings. Callers treat an error as "run without Redis".
func NewRedisClient(ctx context.Context, cfg Config, log logrus.FieldLogger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		log.WithError(err).WithField("address", cfg.Addr).Error("redis connection failed")
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}

	log.WithField("address", cfg.Addr).Info("redis connection successful")
	return rdb, nil
}
