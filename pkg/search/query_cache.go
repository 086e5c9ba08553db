package search

import (
	"context"

	"quiltdex-be/internal/entity"
	"quiltdex-be/internal/pkg/logger"
	"quiltdex-be/internal/repository/contract"
)

const DefaultCacheMaxAgeDays = 30

// QueryEmbeddingCache fronts the persisted embedding cache. It is a latency
// optimization, not a correctness dependency: every failure is logged and
// reported as a miss, never raised.
type QueryEmbeddingCache struct {
	repo   contract.QueryCacheRepository
	logger logger.ILogger
}

func NewQueryEmbeddingCache(repo contract.QueryCacheRepository, log logger.ILogger) *QueryEmbeddingCache {
	return &QueryEmbeddingCache{
		repo:   repo,
		logger: log,
	}
}

// GetCachedEmbedding returns the cached vector for the query, or nil on an
// empty query, a miss, or any cache failure.
func (c *QueryEmbeddingCache) GetCachedEmbedding(ctx context.Context, query string) []float32 {
	key := Normalize(query)
	if key == "" {
		return nil
	}

	vec, err := c.repo.GetEmbedding(ctx, key)
	if err != nil {
		c.logger.Warn("query_cache", "cache read failed", map[string]interface{}{
			"error": err.Error(),
			"query": key,
		})
		return nil
	}
	return vec
}

// CacheEmbedding writes the vector back under the normalized key. No-op for
// empty input; errors are logged and swallowed.
func (c *QueryEmbeddingCache) CacheEmbedding(ctx context.Context, query string, embedding []float32) {
	key := Normalize(query)
	if key == "" || len(embedding) == 0 {
		return
	}

	if err := c.repo.PutEmbedding(ctx, key, embedding); err != nil {
		c.logger.Warn("query_cache", "cache write failed", map[string]interface{}{
			"error": err.Error(),
			"query": key,
		})
	}
}

// Stats returns cache statistics for operational visibility, or nil on
// failure.
func (c *QueryEmbeddingCache) Stats(ctx context.Context) *entity.QueryCacheStats {
	stats, err := c.repo.Stats(ctx)
	if err != nil {
		c.logger.Warn("query_cache", "stats query failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}
	return stats
}

// Cleanup removes entries older than maxAgeDays (default 30) and returns the
// number of rows deleted, or 0 on failure.
func (c *QueryEmbeddingCache) Cleanup(ctx context.Context, maxAgeDays int) int64 {
	if maxAgeDays <= 0 {
		maxAgeDays = DefaultCacheMaxAgeDays
	}
	deleted, err := c.repo.Cleanup(ctx, maxAgeDays)
	if err != nil {
		c.logger.Warn("query_cache", "cleanup failed", map[string]interface{}{
			"error": err.Error(),
			"days":  maxAgeDays,
		})
		return 0
	}
	return deleted
}
