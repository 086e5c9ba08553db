// FILE: internal/service/activity_service.go
// Background recording of search activity and embedding cache write-backs.
// Both are fire-and-forget: the response path publishes and moves on, the
// consumer writes and swallows failures.
package service

import (
	"context"
	"encoding/json"
	"time"

	"quiltdex-be/internal/entity"
	"quiltdex-be/internal/pkg/logger"
	"quiltdex-be/internal/repository/contract"
	"quiltdex-be/pkg/search"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

const (
	TopicSearchLogged   = "SEARCH_LOGGED"
	TopicCacheEmbedding = "CACHE_QUERY_EMBEDDING"
)

type searchLoggedMessage struct {
	UserId       uuid.UUID `json:"user_id"`
	Query        string    `json:"query"`
	Method       string    `json:"method"`
	ResultCount  int       `json:"result_count"`
	FallbackUsed bool      `json:"fallback_used"`
	CacheHit     bool      `json:"cache_hit"`
	OccurredAt   time.Time `json:"occurred_at"`
}

type cacheEmbeddingMessage struct {
	Query     string    `json:"query"`
	Embedding []float32 `json:"embedding"`
}

type IActivityPublisher interface {
	search.CacheWriter

	// RecordSearch publishes a search-log entry without blocking the
	// response path. Failures are logged, never returned.
	RecordSearch(userId uuid.UUID, query, method string, resultCount int, fallbackUsed, cacheHit bool)
}

type activityPublisher struct {
	pubSub *gochannel.GoChannel
	logger logger.ILogger
}

func NewActivityPublisher(pubSub *gochannel.GoChannel, log logger.ILogger) IActivityPublisher {
	return &activityPublisher{
		pubSub: pubSub,
		logger: log,
	}
}

func (p *activityPublisher) RecordSearch(userId uuid.UUID, query, method string, resultCount int, fallbackUsed, cacheHit bool) {
	p.publish(TopicSearchLogged, searchLoggedMessage{
		UserId:       userId,
		Query:        query,
		Method:       method,
		ResultCount:  resultCount,
		FallbackUsed: fallbackUsed,
		CacheHit:     cacheHit,
		OccurredAt:   time.Now(),
	})
}

func (p *activityPublisher) CacheEmbedding(query string, embedding []float32) {
	p.publish(TopicCacheEmbedding, cacheEmbeddingMessage{
		Query:     query,
		Embedding: embedding,
	})
}

func (p *activityPublisher) publish(topic string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		p.logger.Error("activity", "failed to marshal message", map[string]interface{}{
			"topic": topic,
			"error": err.Error(),
		})
		return
	}
	msg := message.NewMessage(watermill.NewUUID(), data)
	if err := p.pubSub.Publish(topic, msg); err != nil {
		p.logger.Warn("activity", "failed to publish message", map[string]interface{}{
			"topic": topic,
			"error": err.Error(),
		})
	}
}

type IActivityConsumer interface {
	Consume(ctx context.Context) error
}

type activityConsumer struct {
	pubSub     *gochannel.GoChannel
	searchLogs contract.SearchLogRepository
	cache      *search.QueryEmbeddingCache
	logger     logger.ILogger
}

func NewActivityConsumer(
	pubSub *gochannel.GoChannel,
	searchLogs contract.SearchLogRepository,
	cache *search.QueryEmbeddingCache,
	log logger.ILogger,
) IActivityConsumer {
	return &activityConsumer{
		pubSub:     pubSub,
		searchLogs: searchLogs,
		cache:      cache,
		logger:     log,
	}
}

func (c *activityConsumer) Consume(ctx context.Context) error {
	logMessages, err := c.pubSub.Subscribe(ctx, TopicSearchLogged)
	if err != nil {
		return err
	}
	cacheMessages, err := c.pubSub.Subscribe(ctx, TopicCacheEmbedding)
	if err != nil {
		return err
	}

	go func() {
		for msg := range logMessages {
			c.processSearchLogged(ctx, msg)
		}
	}()
	go func() {
		for msg := range cacheMessages {
			c.processCacheEmbedding(ctx, msg)
		}
	}()

	return nil
}

func (c *activityConsumer) processSearchLogged(ctx context.Context, msg *message.Message) {
	// Best-effort write: always Ack, a lost log entry must never block or
	// retry forever.
	defer msg.Ack()

	var payload searchLoggedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		c.logger.Error("activity", "failed to unmarshal search log message", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	entry := &entity.SearchLog{
		Id:           uuid.New(),
		UserId:       payload.UserId,
		Query:        payload.Query,
		Method:       payload.Method,
		ResultCount:  payload.ResultCount,
		FallbackUsed: payload.FallbackUsed,
		CacheHit:     payload.CacheHit,
		CreatedAt:    payload.OccurredAt,
	}
	if err := c.searchLogs.Create(ctx, entry); err != nil {
		c.logger.Warn("activity", "failed to persist search log", map[string]interface{}{
			"error": err.Error(),
			"query": payload.Query,
		})
	}
}

func (c *activityConsumer) processCacheEmbedding(ctx context.Context, msg *message.Message) {
	defer msg.Ack()

	var payload cacheEmbeddingMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		c.logger.Error("activity", "failed to unmarshal cache message", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	// The cache wrapper swallows its own errors.
	c.cache.CacheEmbedding(ctx, payload.Query, payload.Embedding)
}
