package bootstrap

import (
	"log"
	"time"

	"quiltdex-be/internal/config"
	"quiltdex-be/internal/controller"
	"quiltdex-be/internal/pkg/logger"
	"quiltdex-be/internal/ratelimit"
	"quiltdex-be/internal/repository/implementation"
	"quiltdex-be/internal/repository/memory"
	"quiltdex-be/internal/service"
	"quiltdex-be/pkg/embedding"
	"quiltdex-be/pkg/embedding/voyage"
	pktNats "quiltdex-be/pkg/nats"
	"quiltdex-be/pkg/search"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	SearchController controller.ISearchController
	ShareController  controller.IShareController

	// Background Services (Exposed for main.go to run)
	ActivityConsumer service.IActivityConsumer

	// Shared infrastructure
	Logger logger.ILogger
	Cache  *search.QueryEmbeddingCache
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Repositories
	patternRepo := implementation.NewPatternRepository(db)
	queryCacheRepo := implementation.NewQueryCacheRepository(db)
	searchLogRepo := implementation.NewSearchLogRepository(db)
	shareRepo := implementation.NewShareRepository(db)
	idempotencyRepo := memory.NewIdempotencyRepository()

	// 3. Event Bus (in-process, for fire-and-forget writes)
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 256},
		watermillLogger,
	)

	// 4. Embedding Provider
	// The credential is control flow: without it every search takes the text
	// path and the response says so.
	var embeddingProvider embedding.Provider
	if cfg.Keys.Voyage != "" {
		embeddingProvider = voyage.NewVoyageProvider(
			cfg.Keys.Voyage,
			cfg.Ai.EmbeddingBaseURL,
			cfg.Ai.EmbeddingModel,
		)
		log.Printf("[INFO] Using Embedding Provider: VOYAGE (%s)", cfg.Ai.EmbeddingModel)
	} else {
		log.Printf("[WARN] No embedding credential configured: search runs in text-only mode")
	}

	// 5. Rate Limiter
	window := time.Duration(cfg.Search.RateLimitWindowSec) * time.Second
	var limiter ratelimit.Limiter
	if cfg.Search.RateLimitBackend == "redis" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb := redis.NewClient(opt)
		limiter = ratelimit.NewRedisLimiter(rdb, window, cfg.Search.RateLimitMax)
		log.Printf("[INFO] Using Rate Limiter: REDIS")
	} else {
		limiter = ratelimit.NewMemoryLimiter(window, cfg.Search.RateLimitMax)
		log.Printf("[INFO] Using Rate Limiter: MEMORY (per-instance)")
	}

	// 6. NATS (optional outbound events)
	var natsPub *pktNats.Publisher
	if cfg.App.NatsURL != "" {
		var err error
		natsPub, err = pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		}
	}

	// 7. Services
	queryCache := search.NewQueryEmbeddingCache(queryCacheRepo, sysLogger)
	activityPublisher := service.NewActivityPublisher(pubSub, sysLogger)

	activityLogger := logger.NewIsolatedLogger("logs/activity.log")
	activityConsumer := service.NewActivityConsumer(pubSub, searchLogRepo, queryCache, activityLogger)

	orchestrator := search.NewOrchestrator(
		queryCache,
		embeddingProvider,
		patternRepo,
		activityPublisher,
		sysLogger,
		search.DefaultConfig(),
	)

	searchService := service.NewSearchService(orchestrator, activityPublisher, search.DefaultConfig(), sysLogger)
	shareService := service.NewShareService(
		patternRepo,
		shareRepo,
		idempotencyRepo,
		natsPub,
		cfg.App.ClientURL,
		sysLogger,
	)

	// 8. Controllers
	return &Container{
		SearchController: controller.NewSearchController(searchService, limiter, sysLogger),
		ShareController:  controller.NewShareController(shareService),

		ActivityConsumer: activityConsumer,
		Logger:           sysLogger,
		Cache:            queryCache,
	}
}
