package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"

	"health_backend/internal/app/di"
	"health_backend/internal/app/router"
	"health_backend/internal/config"
	"health_backend/internal/feature/user/adapters"
	"health_backend/internal/platform/db"
	"health_backend/internal/platform/docs"
	"health_backend/internal/platform/logger"
	"health_backend/internal/platform/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	config.LoadEnvFiles("")
	cfg := config.Load()
	log := logger.New(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// db
	gdb, err := db.Open(cfg.Database(), cfg.Retry(), log, cfg.IsDevelopment())
	if err != nil {
		log.WithError(err).Fatal("database unavailable")
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		log.WithError(err).Fatal("failed to get sql.DB")
	}
	defer func() { _ = sqlDB.Close() }()

	if cfg.DBAutoMigrate {
		if err := adapters.AutoMigrate(gdb); err != nil {
			log.WithError(err).Fatal("failed to migrate")
		}
	}

	// Redis is optional; the limiter falls back to process memory
	var rdb *goredis.Client
	if cfg.RedisAddr != "" {
		if c, err := redis.NewRedisClient(ctx, cfg.Redis(), log); err != nil {
			log.Warn("redis unavailable, using in-memory rate limiter")
		} else {
			rdb = c
			defer func() {
				if err := rdb.Close(); err != nil {
					log.WithError(err).Error("failed to close redis client")
				}
			}()
		}
	}

	doc, err := docs.Load(ctx, cfg.BaseURL())
	if err != nil {
		log.WithError(err).Fatal("invalid API document")
	}

	engine := router.NewRouter(router.Deps{
		Config:    cfg,
		Log:       log,
		Users:     di.NewUserHandler(gdb),
		DB:        sqlDB,
		RateStore: di.NewRateLimitStore(rdb),
		Docs:      doc,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("url", cfg.BaseURL()).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}
