// Package db opens the relational store behind the gorm adapters.
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	// connectTimeout bounds how long Open keeps retrying a postgres connection.
	connectTimeout = 60 * time.Second
	retryInterval  = 3 * time.Second

	// pgUniqueViolation is the SQLSTATE for unique_violation.
	pgUniqueViolation = "23505"
)

// Opener opens a gorm connection for a DSN.
type Opener func(dsn string) (*gorm.DB, error)

// gormConfig enables gorm's dialect error translation so unique violations surface as gorm.ErrDuplicatedKey.
func gormConfig() *gorm.Config {
	return &gorm.Config{TranslateError: true}
}

// OpenPostgres opens a postgres connection through the pgx-backed driver.
func OpenPostgres(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), gormConfig())
}

// OpenSQLite opens a sqlite database. Use ":memory:" for an ephemeral store.
// An in-memory database lives in a single connection, so the pool is capped at one.
func OpenSQLite(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), gormConfig())
	if err != nil {
		return nil, err
	}
	if strings.Contains(dsn, ":memory:") {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

// Open connects to the store selected by driver ("postgres" or "sqlite").
func Open(driver, dsn string) (*gorm.DB, error) {
	switch driver {
	case "postgres":
		return ConnectWithRetry(dsn, connectTimeout, OpenPostgres)
	case "sqlite":
		return OpenSQLite(dsn)
	default:
		return nil, fmt.Errorf("unsupported relational driver %q", driver)
	}
}

// ConnectWithRetry calls opener until it succeeds or timeout elapses.
func ConnectWithRetry(dsn string, timeout time.Duration, opener Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		slog.Warn("db connect failed, retrying", "error", err)
		time.Sleep(retryInterval)
	}
}

// AutoMigrate creates or updates the tables for models.
func AutoMigrate(db *gorm.DB, models ...any) error {
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

// IsDuplicateKey reports whether err is a unique constraint violation.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// Pinger checks that the underlying sql.DB answers.
type Pinger struct {
	DB *gorm.DB
}

// Ping implements the health check contract.
func (p Pinger) Ping(ctx context.Context) error {
	sqlDB, err := p.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
