package search

import (
	"context"
	"errors"

	"quiltdex-be/internal/entity"
	"quiltdex-be/internal/pkg/logger"
	"quiltdex-be/internal/repository/contract"
	"quiltdex-be/pkg/embedding"
)

const (
	MethodSemantic = "semantic"
	MethodText     = "text"
)

var errNoProvider = errors.New("no embedding provider configured")

// Config encapsulates search parameters
type Config struct {
	SimilarityThreshold float64
	DefaultLimit        int
	MaxLimit            int
}

// DefaultConfig returns default search configuration
func DefaultConfig() Config {
	return Config{
		SimilarityThreshold: 0.2,
		DefaultLimit:        50,
		MaxLimit:            100,
	}
}

// ClampLimit resolves the requested limit: nil defaults, otherwise clamped to
// [1, MaxLimit].
func (c Config) ClampLimit(limit *int) int {
	if limit == nil {
		return c.DefaultLimit
	}
	l := *limit
	if l < 1 {
		return 1
	}
	if l > c.MaxLimit {
		return c.MaxLimit
	}
	return l
}

// Match is one result row; Similarity is set on semantic results only.
type Match struct {
	Pattern    *entity.Pattern
	Similarity *float64
}

// Outcome is the result of one search, tagged with the path that produced it.
type Outcome struct {
	Patterns     []Match
	Method       string
	FallbackUsed bool
	CacheHit     bool
}

// CacheWriter receives fire-and-forget write-backs after a provider call.
// Implementations must not block and must never propagate failures.
type CacheWriter interface {
	CacheEmbedding(query string, embedding []float32)
}

// Orchestrator runs the degradation chain: cached embedding, else one provider
// call, then vector search; any failure falls through to literal text
// matching. The endpoint never hard-fails just because the provider or the
// vector index is down.
type Orchestrator struct {
	cache     *QueryEmbeddingCache
	provider  embedding.Provider // nil when no credential is configured
	patterns  contract.PatternRepository
	writeBack CacheWriter // optional
	logger    logger.ILogger
	config    Config
}

func NewOrchestrator(
	cache *QueryEmbeddingCache,
	provider embedding.Provider,
	patterns contract.PatternRepository,
	writeBack CacheWriter,
	log logger.ILogger,
	config Config,
) *Orchestrator {
	return &Orchestrator{
		cache:     cache,
		provider:  provider,
		patterns:  patterns,
		writeBack: writeBack,
		logger:    log,
		config:    config,
	}
}

type stage struct {
	name string
	run  func(ctx context.Context, query string, limit int) (*Outcome, error)
}

// Search executes the stages in order. A failing stage is recovered locally
// and the next one runs; only the final backstop's error surfaces.
func (o *Orchestrator) Search(ctx context.Context, query string, limit int) (*Outcome, error) {
	stages := []stage{
		{name: MethodSemantic, run: o.semanticStage},
		{name: MethodText, run: o.textStage},
	}

	for i, st := range stages {
		outcome, err := st.run(ctx, query, limit)
		if err == nil {
			return outcome, nil
		}
		if i == len(stages)-1 {
			return nil, err
		}
		if errors.Is(err, errNoProvider) {
			o.logger.Debug("search", "no embedding credential, using text search", nil)
		} else {
			o.logger.Warn("search", "stage failed, falling back", map[string]interface{}{
				"stage": st.name,
				"error": err.Error(),
			})
		}
	}
	return nil, errors.New("search: no stage produced an outcome")
}

func (o *Orchestrator) semanticStage(ctx context.Context, query string, limit int) (*Outcome, error) {
	if o.provider == nil {
		return nil, errNoProvider
	}

	vec := o.cache.GetCachedEmbedding(ctx, query)
	cacheHit := vec != nil

	if !cacheHit {
		// One provider call, no retry at this layer: a failure here means
		// text fallback, not another round-trip.
		generated, err := o.provider.Generate(ctx, query)
		if err != nil {
			return nil, err
		}
		vec = generated
		if o.writeBack != nil {
			o.writeBack.CacheEmbedding(query, vec)
		}
	}

	scored, err := o.patterns.SearchSemantic(ctx, vec, o.config.SimilarityThreshold, limit)
	if err != nil {
		return nil, err
	}

	matches := make([]Match, len(scored))
	for i, s := range scored {
		sim := s.Similarity
		matches[i] = Match{Pattern: s.Pattern, Similarity: &sim}
	}
	return &Outcome{
		Patterns: matches,
		Method:   MethodSemantic,
		CacheHit: cacheHit,
	}, nil
}

func (o *Orchestrator) textStage(ctx context.Context, query string, limit int) (*Outcome, error) {
	terms := SplitTerms(query)
	if len(terms) == 0 {
		// All terms too short. An empty result, not an error.
		return &Outcome{
			Patterns:     []Match{},
			Method:       MethodText,
			FallbackUsed: true,
		}, nil
	}

	patterns, err := o.patterns.TextSearch(ctx, terms, limit)
	if err != nil {
		return nil, err
	}

	matches := make([]Match, len(patterns))
	for i, p := range patterns {
		matches[i] = Match{Pattern: p}
	}
	return &Outcome{
		Patterns:     matches,
		Method:       MethodText,
		FallbackUsed: true,
	}, nil
}
