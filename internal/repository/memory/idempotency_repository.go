package memory

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// IdempotencyRepository remembers feedback submissions for a short window so a
// browser retry does not insert the same row twice. Process-local: a lost
// entry only means one extra insert, never a lost one.
type IdempotencyRepository struct {
	cache *cache.Cache
}

func NewIdempotencyRepository() *IdempotencyRepository {
	// Entries expire after 10 minutes; expired items are purged every 5.
	c := cache.New(10*time.Minute, 5*time.Minute)
	return &IdempotencyRepository{
		cache: c,
	}
}

func (r *IdempotencyRepository) Remember(key string, feedbackId uuid.UUID) {
	r.cache.Set(key, feedbackId, cache.DefaultExpiration)
}

func (r *IdempotencyRepository) Get(key string) (uuid.UUID, bool) {
	if x, found := r.cache.Get(key); found {
		return x.(uuid.UUID), true
	}
	return uuid.Nil, false
}
