package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobtracker_backend/internal/shared/apperr"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"HTTP_ADDR", "JWT_SECRET", "JWT_ISSUER", "JWT_AUDIENCE", "JWT_EXPIRE_MINUTES",
		"DB_DRIVER", "DB_URI", "DB_NAME", "MONGO_URI", "MONGO_DBNAME", "RUN_MIGRATIONS",
		"REDIS_ADDR", "REDIS_PASSWORD", "CORS_ALLOWED_ORIGINS", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "JobTrackerAPI", cfg.JWTIssuer)
	assert.Equal(t, "JobTrackerUsers", cfg.JWTAudience)
	assert.Equal(t, 60*time.Minute, cfg.TokenLifetime)
	assert.Equal(t, DriverMongo, cfg.DBDriver)
	assert.False(t, cfg.RunMigrations)
	assert.Empty(t, cfg.CORSAllowedOrigins)
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "0123456789abcdef")
	t.Setenv("JWT_EXPIRE_MINUTES", "15")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("DB_URI", "postgres://u:p@localhost:5432/jobs")
	t.Setenv("RUN_MIGRATIONS", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, ,http://b.test")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, 15*time.Minute, cfg.TokenLifetime)
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.True(t, cfg.RunMigrations)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnv_MongoFallbackVariables(t *testing.T) {
	clearEnv(t)
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("MONGO_DBNAME", "jobtracker")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "mongodb://localhost:27017", cfg.DBURI)
	assert.Equal(t, "jobtracker", cfg.DBName)
}

func TestLoadFromEnv_InvalidExpiry(t *testing.T) {
	clearEnv(t)

	for _, raw := range []string{"abc", "0", "-5"} {
		t.Setenv("JWT_EXPIRE_MINUTES", raw)
		_, err := LoadFromEnv()
		assert.ErrorIs(t, err, apperr.ErrConfiguration, raw)
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	valid := func() Config {
		return Config{
			JWTSecret:   "0123456789abcdef",
			JWTIssuer:   "iss",
			JWTAudience: "aud",
			DBDriver:    DriverMongo,
			DBURI:       "mongodb://localhost",
			DBName:      "jobs",
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid mongo", mutate: func(c *Config) {}},
		{name: "missing secret", mutate: func(c *Config) { c.JWTSecret = "" }, wantErr: true},
		{name: "secret shorter than 128 bits", mutate: func(c *Config) { c.JWTSecret = "short-secret" }, wantErr: true},
		{name: "missing issuer", mutate: func(c *Config) { c.JWTIssuer = "" }, wantErr: true},
		{name: "mongo without db name", mutate: func(c *Config) { c.DBName = "" }, wantErr: true},
		{name: "sqlite without name is fine", mutate: func(c *Config) { c.DBDriver = DriverSQLite; c.DBURI = "file.db"; c.DBName = "" }},
		{name: "postgres without uri", mutate: func(c *Config) { c.DBDriver = DriverPostgres; c.DBURI = "" }, wantErr: true},
		{name: "unknown driver", mutate: func(c *Config) { c.DBDriver = "mysql" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, apperr.ErrConfiguration)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_SlogLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.LevelDebug, (&Config{LogLevel: "DEBUG"}).SlogLevel())
	assert.Equal(t, slog.LevelWarn, (&Config{LogLevel: "warn"}).SlogLevel())
	assert.Equal(t, slog.LevelError, (&Config{LogLevel: "error"}).SlogLevel())
	assert.Equal(t, slog.LevelInfo, (&Config{LogLevel: "verbose"}).SlogLevel())
}
