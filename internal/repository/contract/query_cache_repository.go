package contract

import (
	"context"

	"quiltdex-be/internal/entity"
)

// QueryCacheRepository is the RPC surface of the persisted query-embedding
// cache. The cache itself lives in the database; this layer never holds an
// entry beyond a single call.
type QueryCacheRepository interface {
	// GetEmbedding returns the cached vector for the (already normalized)
	// query text, or nil on a miss.
	GetEmbedding(ctx context.Context, queryText string) ([]float32, error)

	// PutEmbedding upserts the vector for the query text. Hit accounting is
	// handled inside the procedure.
	PutEmbedding(ctx context.Context, queryText string, embedding []float32) error

	Stats(ctx context.Context) (*entity.QueryCacheStats, error)

	// Cleanup deletes entries older than daysOld and reports rows removed.
	Cleanup(ctx context.Context, daysOld int) (int64, error)
}
