// Package config loads application settings from the environment.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"health_backend/internal/platform/db"
	"health_backend/internal/platform/redis"
)

// Config holds application configuration loaded from environment variables.
// Defaults suit local development.
type Config struct {
	AppName    string
	Env        string // development, test, production
	HostURL    string
	HostPort   string
	VersionApp string
	GinMode    string

	// Database
	DBDriver          string
	DBHost            string
	DBPort            string
	DBUsername        string
	DBPassword        string
	DBDatabase        string
	DBTimezone        string
	DBSSLMode         string
	DBConnectAttempts int
	DBConnectDelay    time.Duration
	DBAutoMigrate     bool

	// Redis; an empty address selects the in-memory rate limiter
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	CORSAdmitURLs []string

	RateLimitMax    int
	RateLimitWindow time.Duration

	SeedFile string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getbool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{"key": key, "default": def}).Warn("invalid boolean, using default")
			return def
		}
		return b
	}
	return def
}

func getint(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{"key": key, "default": def}).Warn("invalid int, using default")
			return def
		}
		return i
	}
	return def
}

func getdur(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{"key": key, "default": def}).Warn("invalid duration, using default")
			return def
		}
		return d
	}
	return def
}

// getlist reads a JSON array of strings, falling back to a comma-separated list.
func getlist(key string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	if strings.HasPrefix(v, "[") {
		var out []string
		if err := json.Unmarshal([]byte(v), &out); err != nil {
			logrus.WithError(err).WithField("key", key).Warn("invalid JSON list, ignoring")
			return nil
		}
		return out
	}
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Env returns the current environment name.
func Env() string {
	if v := os.Getenv("APP_ENV"); v != "" {
		return v
	}
	return getenv("NODE_ENV", "development")
}

// LoadEnvFiles loads .env.<env> and then .env. Existing variables win and
// missing files are ignored.
func LoadEnvFiles(dir string) {
	env := Env()
	for _, name := range []string{".env." + env, ".env"} {
		path := name
		if dir != "" {
			path = dir + string(os.PathSeparator) + name
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			logrus.WithError(err).WithField("path", path).Warn("failed to load env file")
		}
	}
}

// Load loads configuration from environment variables.
func Load() *Config {
	env := Env()
	production := env == "production"

	ginMode := "release"
	if env == "development" {
		ginMode = "debug"
	}
	sslMode := "disable"
	if production {
		sslMode = "require"
	}

	return &Config{
		AppName:    getenv("APP_NAME", "health-backend"),
		Env:        env,
		HostURL:    strings.TrimRight(getenv("HOST_URL", "http://localhost"), "/"),
		HostPort:   getenv("HOST_PORT", "5000"),
		VersionApp: getenv("VERSION_APP", "1"),
		GinMode:    getenv("GIN_MODE", ginMode),

		DBDriver:          getenv("DB_DRIVER", db.DriverPostgres),
		DBHost:            getenv("DB_HOST", "localhost"),
		DBPort:            getenv("DB_PORT", "5432"),
		DBUsername:        getenv("DB_USERNAME", "postgres"),
		DBPassword:        getenv("DB_PASSWORD", "postgres"),
		DBDatabase:        getenv("DB_DATABASE", "health"),
		DBTimezone:        getenv("DB_TIMEZONE", "UTC"),
		DBSSLMode:         getenv("DB_SSLMODE", sslMode),
		DBConnectAttempts: getint("DB_CONNECT_ATTEMPTS", 10),
		DBConnectDelay:    getdur("DB_CONNECT_DELAY", 5*time.Second),
		DBAutoMigrate:     getbool("DB_AUTO_MIGRATE", true),

		RedisAddr:     getenv("REDIS_ADDR", ""),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		RedisDB:       getint("REDIS_DB", 0),

		CORSAdmitURLs: getlist("CORS_ADMIT_URL"),

		RateLimitMax:    getint("RATE_LIMIT_MAX", 100),
		RateLimitWindow: getdur("RATE_LIMIT_WINDOW", 10*time.Minute),

		SeedFile: getenv("SEED_FILE", ""),
	}
}

// IsDevelopment reports whether verbose logging is on.
func (c *Config) IsDevelopment() bool { return c.Env == "development" }

// IsProduction reports whether the app runs in production.
func (c *Config) IsProduction() bool { return c.Env == "production" }

// BasePath is the versioned route prefix, e.g. /api/v1.
func (c *Config) BasePath() string {
	return "/api/v" + strings.TrimPrefix(c.VersionApp, "v")
}

// BaseURL is the public API root used in logs and the API document.
func (c *Config) BaseURL() string {
	return fmt.Sprintf("%s:%s%s", c.HostURL, c.HostPort, c.BasePath())
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return ":" + c.HostPort
}

// Database returns the connection parameters.
func (c *Config) Database() db.Config {
	return db.Config{
		Driver:   c.DBDriver,
		Host:     c.DBHost,
		Port:     c.DBPort,
		User:     c.DBUsername,
		Password: c.DBPassword,
		Name:     c.DBDatabase,
		TimeZone: c.DBTimezone,
		SSLMode:  c.DBSSLMode,
	}
}

// Retry returns the startup connection policy.
func (c *Config) Retry() db.RetryPolicy {
	return db.RetryPolicy{Attempts: c.DBConnectAttempts, Delay: c.DBConnectDelay}
}

// Redis returns the Redis connection settings.
func (c *Config) Redis() redis.Config {
	return redis.Config{Addr: c.RedisAddr, Password: c.RedisPassword, DB: c.RedisDB}
}
