package di

import (
	"time"

	"github.com/redis/go-redis/v9"

	pipelineusecase "jobtracker_backend/internal/feature/pipeline/usecase"
	"jobtracker_backend/internal/platform/cache"
)

const pipelineCacheTTL = 5 * time.Minute

// NewPipelineRepository wraps inner with the Redis cache when a client is available.
// Otherwise the store is used directly.
func NewPipelineRepository(rdb *redis.Client, inner pipelineusecase.PipelineRepository) pipelineusecase.PipelineRepository {
	if rdb != nil {
		return cache.NewCachingPipelineRepository(rdb, pipelineCacheTTL, inner, "pipelines")
	}
	return inner
}
