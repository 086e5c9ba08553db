package entity

import (
	"time"

	"github.com/google/uuid"
)

type SearchLog struct {
	Id           uuid.UUID
	UserId       uuid.UUID
	Query        string
	Method       string // "semantic" or "text"
	ResultCount  int
	FallbackUsed bool
	CacheHit     bool
	CreatedAt    time.Time
}

// QueryCacheStats mirrors the row returned by get_query_cache_stats().
type QueryCacheStats struct {
	TotalEntries    int64
	TotalHits       int64
	OldestEntry     *time.Time
	NewestEntry     *time.Time
	AvgHitsPerQuery float64
}
