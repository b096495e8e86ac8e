// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	authadapters "jobtracker_backend/internal/feature/auth/adapters"
	authentity "jobtracker_backend/internal/feature/auth/domain/entity"
	authusecase "jobtracker_backend/internal/feature/auth/usecase"
	jobadapters "jobtracker_backend/internal/feature/job/adapters"
	jobusecase "jobtracker_backend/internal/feature/job/usecase"
	pipelineadapters "jobtracker_backend/internal/feature/pipeline/adapters"
	pipelineusecase "jobtracker_backend/internal/feature/pipeline/usecase"
	"jobtracker_backend/internal/platform/config"
	"jobtracker_backend/internal/platform/db"
	"jobtracker_backend/internal/platform/http/handler"
	"jobtracker_backend/internal/platform/mongodb"
)

// Stores holds the repositories of one backing store.
type Stores struct {
	Users     authusecase.UserRepository
	Pipelines pipelineusecase.PipelineRepository
	Jobs      jobusecase.JobRepository
	Health    handler.Pinger
	Close     func(ctx context.Context) error
}

// NewStores opens the store selected by cfg.DBDriver and builds its repositories.
func NewStores(ctx context.Context, cfg *config.Config) (*Stores, error) {
	switch cfg.DBDriver {
	case config.DriverMongo:
		return newMongoStores(ctx, cfg)
	case config.DriverPostgres, config.DriverSQLite:
		return newGormStores(cfg)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

func newMongoStores(ctx context.Context, cfg *config.Config) (*Stores, error) {
	client, err := mongodb.Connect(ctx, cfg.DBURI)
	if err != nil {
		return nil, err
	}
	database := client.Database(cfg.DBName)
	if err := mongodb.EnsureIndexes(ctx, database); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return &Stores{
		Users:     authadapters.NewUserMongo(database),
		Pipelines: pipelineadapters.NewPipelineMongo(database),
		Jobs:      jobadapters.NewJobMongo(database),
		Health:    mongodb.Pinger{Client: client},
		Close:     client.Disconnect,
	}, nil
}

func newGormStores(cfg *config.Config) (*Stores, error) {
	gdb, err := db.Open(cfg.DBDriver, cfg.DBURI)
	if err != nil {
		return nil, err
	}
	// sqlite is a local store, so its schema is always brought up to date.
	if cfg.RunMigrations || cfg.DBDriver == config.DriverSQLite {
		if err := db.AutoMigrate(gdb, Models()...); err != nil {
			return nil, err
		}
		slog.Info("migrations applied", "driver", cfg.DBDriver)
	}
	return &Stores{
		Users:     authadapters.NewUserGorm(gdb),
		Pipelines: pipelineadapters.NewPipelineGorm(gdb),
		Jobs:      jobadapters.NewJobGorm(gdb),
		Health:    db.Pinger{DB: gdb},
		Close:     closeGorm(gdb),
	}, nil
}

// Models lists the gorm models migrated for the relational drivers.
func Models() []any {
	return []any{&authentity.User{}, &pipelineadapters.PipelineModel{}, &jobadapters.JobModel{}}
}

func closeGorm(gdb *gorm.DB) func(context.Context) error {
	return func(context.Context) error {
		sqlDB, err := gdb.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
}
