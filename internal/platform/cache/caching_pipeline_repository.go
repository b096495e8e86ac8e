// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"jobtracker_backend/internal/feature/pipeline/domain/entity"
	"jobtracker_backend/internal/feature/pipeline/usecase"
)

// CachingPipelineRepository decorates a PipelineRepository with Redis caching of reads.
// Keys are partitioned per owner; any write by an owner drops all of that owner's keys.
type CachingPipelineRepository struct {
	inner     usecase.PipelineRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.PipelineRepository = (*CachingPipelineRepository)(nil)

// NewCachingPipelineRepository decorates a PipelineRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "pipelines".
func NewCachingPipelineRepository(rdb *redis.Client, ttl time.Duration, inner usecase.PipelineRepository, namespace string) *CachingPipelineRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "pipelines"
	}
	return &CachingPipelineRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Find returns the owner's pipelines, checking the cache first.
func (c *CachingPipelineRepository) Find(ctx context.Context, userID string) ([]entity.Pipeline, error) {
	if c.rdb == nil {
		return c.inner.Find(ctx, userID)
	}

	key := c.listKey(userID)
	var cached []entity.Pipeline
	if c.load(ctx, key, &cached) {
		return cached, nil
	}

	out, err := c.inner.Find(ctx, userID)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, out)
	return out, nil
}

// FindOne returns a single owned pipeline, checking the cache first.
// Misses are not cached so a newly created pipeline is visible immediately.
func (c *CachingPipelineRepository) FindOne(ctx context.Context, id, userID string) (*entity.Pipeline, error) {
	if c.rdb == nil {
		return c.inner.FindOne(ctx, id, userID)
	}

	key := c.itemKey(userID, id)
	var cached entity.Pipeline
	if c.load(ctx, key, &cached) {
		return &cached, nil
	}

	p, err := c.inner.FindOne(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, p)
	return p, nil
}

// Insert writes through and invalidates the owner's cached entries.
func (c *CachingPipelineRepository) Insert(ctx context.Context, p *entity.Pipeline) error {
	if err := c.inner.Insert(ctx, p); err != nil {
		return err
	}
	c.invalidate(ctx, p.UserID)
	return nil
}

// Replace writes through and invalidates the owner's cached entries.
func (c *CachingPipelineRepository) Replace(ctx context.Context, p *entity.Pipeline) (bool, error) {
	matched, err := c.inner.Replace(ctx, p)
	if err != nil {
		return false, err
	}
	c.invalidate(ctx, p.UserID)
	return matched, nil
}

// Delete writes through and invalidates the owner's cached entries.
func (c *CachingPipelineRepository) Delete(ctx context.Context, id, userID string) (bool, error) {
	deleted, err := c.inner.Delete(ctx, id, userID)
	if err != nil {
		return false, err
	}
	c.invalidate(ctx, userID)
	return deleted, nil
}

// load decodes key into dst. Corrupted entries are deleted and reported as a miss.
func (c *CachingPipelineRepository) load(ctx context.Context, key string, dst any) bool {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil || len(b) == 0 {
		return false
	}
	if err := json.Unmarshal(b, dst); err != nil {
		_ = c.rdb.Del(ctx, key).Err()
		return false
	}
	return true
}

// store caches v under key (best effort).
func (c *CachingPipelineRepository) store(ctx context.Context, key string, v any) {
	if b, err := json.Marshal(v); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
}

// invalidate drops every cached entry of userID. A failure only shortens freshness to the TTL.
func (c *CachingPipelineRepository) invalidate(ctx context.Context, userID string) {
	if c.rdb == nil {
		return
	}
	if err := c.deleteByPattern(ctx, c.ownerPrefix(userID)+"*"); err != nil {
		slog.Warn("pipeline cache invalidation failed", "user_id", userID, "error", err)
	}
}

func (c *CachingPipelineRepository) ownerPrefix(userID string) string {
	return fmt.Sprintf("%s:%s:", c.namespace, safe(userID))
}

func (c *CachingPipelineRepository) listKey(userID string) string {
	return c.ownerPrefix(userID) + "list"
}

func (c *CachingPipelineRepository) itemKey(userID, id string) string {
	return c.ownerPrefix(userID) + "id:" + safe(id)
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingPipelineRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// safe escapes characters that are problematic for Redis keys and SCAN patterns.
func safe(s string) string {
	return strings.NewReplacer(" ", "_", ":", "_", "*", "_", "?", "_", "[", "_", "]", "_").Replace(s)
}
