// FILE: internal/service/search_service.go
package service

import (
	"context"

	"quiltdex-be/internal/dto"
	"quiltdex-be/internal/pkg/logger"
	"quiltdex-be/pkg/search"

	"github.com/google/uuid"
)

type ISearchService interface {
	Search(ctx context.Context, userId uuid.UUID, req *dto.SearchRequest) (*dto.SearchResponse, error)
}

type searchService struct {
	orchestrator *search.Orchestrator
	activity     IActivityPublisher
	config       search.Config
	logger       logger.ILogger
}

func NewSearchService(
	orchestrator *search.Orchestrator,
	activity IActivityPublisher,
	config search.Config,
	log logger.ILogger,
) ISearchService {
	return &searchService{
		orchestrator: orchestrator,
		activity:     activity,
		config:       config,
		logger:       log,
	}
}

func (s *searchService) Search(ctx context.Context, userId uuid.UUID, req *dto.SearchRequest) (*dto.SearchResponse, error) {
	limit := s.config.ClampLimit(req.Limit)

	outcome, err := s.orchestrator.Search(ctx, req.Query, limit)
	if err != nil {
		// Only the text backstop can end up here; there is nothing further
		// to degrade to.
		s.logger.Error("search", "search failed", map[string]interface{}{
			"error":   err.Error(),
			"user_id": userId.String(),
			"query":   req.Query,
		})
		return nil, err
	}

	// Recorded in the background; the response does not wait for it.
	s.activity.RecordSearch(userId, req.Query, outcome.Method, len(outcome.Patterns), outcome.FallbackUsed, outcome.CacheHit)

	return s.toResponse(req.Query, outcome), nil
}

func (s *searchService) toResponse(query string, outcome *search.Outcome) *dto.SearchResponse {
	patterns := make([]dto.PatternResult, len(outcome.Patterns))
	for i, m := range outcome.Patterns {
		patterns[i] = dto.PatternResult{
			Id:            m.Pattern.Id,
			FileName:      m.Pattern.FileName,
			FileExtension: m.Pattern.FileExtension,
			Author:        m.Pattern.Author,
			ThumbnailURL:  m.Pattern.ThumbnailURL,
			Similarity:    m.Similarity,
		}
	}

	res := &dto.SearchResponse{
		Patterns:     patterns,
		Query:        query,
		Count:        len(patterns),
		SearchMethod: outcome.Method,
		FallbackUsed: outcome.FallbackUsed,
	}
	if outcome.Method == search.MethodSemantic {
		hit := outcome.CacheHit
		res.CacheHit = &hit
	}
	return res
}
