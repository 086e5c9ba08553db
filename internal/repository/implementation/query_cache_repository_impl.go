package implementation

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"quiltdex-be/internal/entity"
	"quiltdex-be/internal/repository/contract"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type QueryCacheRepositoryImpl struct {
	db *gorm.DB
}

func NewQueryCacheRepository(db *gorm.DB) contract.QueryCacheRepository {
	return &QueryCacheRepositoryImpl{db: db}
}

func (r *QueryCacheRepositoryImpl) GetEmbedding(ctx context.Context, queryText string) ([]float32, error) {
	var raw sql.NullString
	row := r.db.WithContext(ctx).
		Raw("SELECT get_cached_query_embedding(?)", queryText).
		Row()
	if err := row.Scan(&raw); err != nil {
		return nil, err
	}
	if !raw.Valid {
		return nil, nil // miss
	}

	var vec pgvector.Vector
	if err := vec.Scan(raw.String); err != nil {
		return nil, fmt.Errorf("failed to decode cached embedding: %w", err)
	}
	return vec.Slice(), nil
}

func (r *QueryCacheRepositoryImpl) PutEmbedding(ctx context.Context, queryText string, embedding []float32) error {
	return r.db.WithContext(ctx).
		Exec("SELECT cache_query_embedding(?, ?)", queryText, pgvector.NewVector(embedding)).
		Error
}

func (r *QueryCacheRepositoryImpl) Stats(ctx context.Context) (*entity.QueryCacheStats, error) {
	type statsRow struct {
		TotalEntries    int64
		TotalHits       int64
		OldestEntry     *time.Time
		NewestEntry     *time.Time
		AvgHitsPerQuery float64
	}
	var row statsRow
	err := r.db.WithContext(ctx).
		Raw("SELECT * FROM get_query_cache_stats()").
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &entity.QueryCacheStats{
		TotalEntries:    row.TotalEntries,
		TotalHits:       row.TotalHits,
		OldestEntry:     row.OldestEntry,
		NewestEntry:     row.NewestEntry,
		AvgHitsPerQuery: row.AvgHitsPerQuery,
	}, nil
}

func (r *QueryCacheRepositoryImpl) Cleanup(ctx context.Context, daysOld int) (int64, error) {
	var deleted int64
	row := r.db.WithContext(ctx).
		Raw("SELECT cleanup_query_embedding_cache(?)", daysOld).
		Row()
	if err := row.Scan(&deleted); err != nil {
		return 0, err
	}
	return deleted, nil
}
