// Package db opens the GORM connection used by the repositories.
package db

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Supported drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds the connection parameters.
type Config struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	Name     string // database name, or file path for sqlite
	TimeZone string
	SSLMode  string
}

// RetryPolicy controls the startup connection loop: fixed delay, no backoff.
type RetryPolicy struct {
	Attempts int
	Delay    time.Duration
}

// Opener opens a connection for a DSN.
type Opener func(dsn string) (*gorm.DB, error)

// BuildDSN renders the driver-specific DSN.
func BuildDSN(cfg Config) string {
	if cfg.Driver == DriverSQLite {
		return cfg.Name
	}

	parts := []string{
		"host=" + cfg.Host,
		"port=" + cfg.Port,
		"user=" + cfg.User,
		"password=" + cfg.Password,
		"dbname=" + cfg.Name,
	}
	if cfg.SSLMode != "" {
		parts = append(parts, "sslmode="+cfg.SSLMode)
	}
	if cfg.TimeZone != "" {
		parts = append(parts, "TimeZone="+cfg.TimeZone)
	}
	return strings.Join(parts, " ")
}

// ConnectWithRetry calls open up to attempts times, sleeping delay between
// failures. The last error is returned when every attempt fails.
func ConnectWithRetry(dsn string, policy RetryPolicy, open Opener, log logrus.FieldLogger) (*gorm.DB, error) {
	attempts := policy.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for i := 1; i <= attempts; i++ {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		lastErr = err
		log.WithError(err).WithFields(logrus.Fields{
			"attempt":  i,
			"attempts": attempts,
		}).Warn("database connection failed")

		if i < attempts {
			time.Sleep(policy.Delay)
		}
	}
	return nil, fmt.Errorf("database connection failed after %d attempts: %w", attempts, lastErr)
}

// NewOpener returns the Opener for cfg.Driver.
func NewOpener(cfg Config, gcfg *gorm.Config) (Opener, error) {
	switch cfg.Driver {
	case DriverPostgres, "":
		return func(dsn string) (*gorm.DB, error) {
			return gorm.Open(postgres.Open(dsn), gcfg)
		}, nil
	case DriverSQLite:
		return func(dsn string) (*gorm.DB, error) {
			return gorm.Open(sqlite.Open(dsn), gcfg)
		}, nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}
}

// GormConfig builds the GORM settings. SQL is logged through log in
// development only.
func GormConfig(log logrus.FieldLogger, development bool) *gorm.Config {
	gl := logger.Discard
	if development {
		gl = logger.New(log, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Info,
			IgnoreRecordNotFoundError: true,
		})
	}
	return &gorm.Config{
		Logger:         gl,
		TranslateError: true,
	}
}

// Open connects with the retry policy.
func Open(cfg Config, policy RetryPolicy, log logrus.FieldLogger, development bool) (*gorm.DB, error) {
	open, err := NewOpener(cfg, GormConfig(log, development))
	if err != nil {
		return nil, err
	}

	db, err := ConnectWithRetry(BuildDSN(cfg), policy, open, log)
	if err != nil {
		return nil, err
	}

	if cfg.Driver == DriverSQLite {
		// sqlite allows a single writer
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.SetMaxOpenConns(1)
		}
	}

	log.WithFields(logrus.Fields{"driver": cfg.Driver, "database": cfg.Name}).Info("database connection established")
	return db, nil
}
