// Package config loads process configuration from the environment (and an optional .env file).
// The resulting Config is built once at startup and never mutated afterwards.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"jobtracker_backend/internal/shared/apperr"
)

// Supported DB_DRIVER values.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// MinSecretBytes is the minimum HMAC signing secret size (128 bits).
const MinSecretBytes = 16

const (
	defaultHTTPAddr      = ":8080"
	defaultIssuer        = "JobTrackerAPI"
	defaultAudience      = "JobTrackerUsers"
	defaultExpireMinutes = 60
)

// Config holds runtime settings for the API server.
type Config struct {
	HTTPAddr string

	JWTSecret     string
	JWTIssuer     string
	JWTAudience   string
	TokenLifetime time.Duration

	DBDriver      string
	DBURI         string
	DBName        string
	RunMigrations bool

	RedisAddr     string
	RedisPassword string

	CORSAllowedOrigins []string

	LogLevel  string
	LogFormat string
}

// Load reads .env (if present) and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		slog.Info(".env not found; using system environment variables")
	}
	return LoadFromEnv()
}

// LoadFromEnv builds a Config from environment variables, applying defaults.
// It does not validate required values; call Validate for that.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		HTTPAddr:      envOr("HTTP_ADDR", defaultHTTPAddr),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		JWTIssuer:     envOr("JWT_ISSUER", defaultIssuer),
		JWTAudience:   envOr("JWT_AUDIENCE", defaultAudience),
		DBDriver:      strings.ToLower(envOr("DB_DRIVER", DriverMongo)),
		DBURI:         envOr("DB_URI", os.Getenv("MONGO_URI")),
		DBName:        envOr("DB_NAME", os.Getenv("MONGO_DBNAME")),
		RunMigrations: os.Getenv("RUN_MIGRATIONS") == "true",
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		LogLevel:      envOr("LOG_LEVEL", "info"),
		LogFormat:     envOr("LOG_FORMAT", "json"),
	}

	minutes := defaultExpireMinutes
	if raw := os.Getenv("JWT_EXPIRE_MINUTES"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%w: JWT_EXPIRE_MINUTES must be a positive integer, got %q", apperr.ErrConfiguration, raw)
		}
		minutes = n
	}
	cfg.TokenLifetime = time.Duration(minutes) * time.Minute

	if raw := os.Getenv("CORS_ALLOWED_ORIGINS"); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
			}
		}
	}

	return cfg, nil
}

// Validate reports missing or weak required settings. Any error wraps apperr.ErrConfiguration.
func (c *Config) Validate() error {
	if len([]byte(c.JWTSecret)) < MinSecretBytes {
		return fmt.Errorf("%w: JWT_SECRET must be set and at least %d bytes long", apperr.ErrConfiguration, MinSecretBytes)
	}
	if c.JWTIssuer == "" || c.JWTAudience == "" {
		return fmt.Errorf("%w: JWT_ISSUER and JWT_AUDIENCE must not be empty", apperr.ErrConfiguration)
	}
	switch c.DBDriver {
	case DriverMongo:
		if c.DBURI == "" || c.DBName == "" {
			return fmt.Errorf("%w: DB_URI and DB_NAME are required for the mongo driver", apperr.ErrConfiguration)
		}
	case DriverPostgres, DriverSQLite:
		if c.DBURI == "" {
			return fmt.Errorf("%w: DB_URI is required for the %s driver", apperr.ErrConfiguration, c.DBDriver)
		}
	default:
		return fmt.Errorf("%w: unsupported DB_DRIVER %q", apperr.ErrConfiguration, c.DBDriver)
	}
	return nil
}

// SlogLevel converts LogLevel into a slog.Level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
