package di

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"jobtracker_backend/internal/app/router"
	authhandler "jobtracker_backend/internal/feature/auth/transport/handler"
	authusecase "jobtracker_backend/internal/feature/auth/usecase"
	jobhandler "jobtracker_backend/internal/feature/job/transport/handler"
	jobusecase "jobtracker_backend/internal/feature/job/usecase"
	pipelineentity "jobtracker_backend/internal/feature/pipeline/domain/entity"
	pipelinehandler "jobtracker_backend/internal/feature/pipeline/transport/handler"
	pipelineusecase "jobtracker_backend/internal/feature/pipeline/usecase"
	"jobtracker_backend/internal/platform/config"
	jwtmw "jobtracker_backend/internal/platform/jwt"
	infraredis "jobtracker_backend/internal/platform/redis"
)

// App is the wired HTTP server and the resources it owns.
type App struct {
	Router *gin.Engine
	stores *Stores
	rdb    *redis.Client
}

// NewApp builds every component from cfg. cfg must already be validated.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	issuer, err := jwtmw.NewIssuer(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, cfg.TokenLifetime)
	if err != nil {
		return nil, err
	}
	verifier, err := jwtmw.NewVerifier(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience)
	if err != nil {
		return nil, err
	}

	stores, err := NewStores(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		if rdb, err = infraredis.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword); err != nil {
			slog.Warn("Redis unavailable. Running without cache.", "error", err)
			rdb = nil
		}
	}

	uc := NewUsecases(stores, rdb, issuer)

	// Handler
	handlers := router.Handlers{
		Auth:     authhandler.NewAuthHandler(uc.Auth),
		Jobs:     jobhandler.NewJobHandler(uc.Jobs),
		Pipeline: pipelinehandler.NewPipelineHandler(uc.Pipelines),
	}

	r := router.NewRouter(handlers, router.Options{
		Verifier:    verifier,
		Store:       stores.Health,
		CORSOrigins: cfg.CORSAllowedOrigins,
	})

	return &App{Router: r, stores: stores, rdb: rdb}, nil
}

// Usecases groups the use cases served over HTTP.
type Usecases struct {
	Auth      authhandler.AuthUsecase
	Pipelines pipelinehandler.PipelineUsecase
	Jobs      jobhandler.JobUsecase
}

// NewUsecases builds the use cases over stores. Only pipeline reads served to clients go
// through the Redis cache; the job engine resolves pipelines from the store so stage and
// name checks never see a stale entry.
func NewUsecases(stores *Stores, rdb *redis.Client, tokens authusecase.TokenIssuer) Usecases {
	defaultPipeline := pipelineentity.NewDefaultPipeline()
	return Usecases{
		Auth:      authusecase.NewAuthUsecase(stores.Users, tokens),
		Pipelines: pipelineusecase.NewPipelineUsecase(NewPipelineRepository(rdb, stores.Pipelines), defaultPipeline),
		Jobs:      jobusecase.NewJobUsecase(stores.Jobs, stores.Pipelines, defaultPipeline),
	}
}

// Close releases the store and cache connections.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.rdb != nil {
		errs = append(errs, a.rdb.Close())
	}
	if a.stores.Close != nil {
		errs = append(errs, a.stores.Close(ctx))
	}
	return errors.Join(errs...)
}
