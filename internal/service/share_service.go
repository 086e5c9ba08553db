// FILE: internal/service/share_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"quiltdex-be/internal/dto"
	"quiltdex-be/internal/entity"
	"quiltdex-be/internal/pkg/logger"
	"quiltdex-be/internal/pkg/serverutils"
	"quiltdex-be/internal/repository/contract"
	"quiltdex-be/internal/repository/memory"
	"quiltdex-be/internal/repository/specification"
	"quiltdex-be/pkg/events"
	pktNats "quiltdex-be/pkg/nats"

	"github.com/google/uuid"
)

type IShareService interface {
	CreateShare(ctx context.Context, userId uuid.UUID, req *dto.CreateShareRequest) (*dto.CreateShareResponse, error)
	ResolveShare(ctx context.Context, token string) (*dto.SharedPatternResponse, error)
	SubmitFeedback(ctx context.Context, token string, req *dto.SubmitFeedbackRequest) (*dto.SubmitFeedbackResponse, error)
}

type shareService struct {
	patterns       contract.PatternRepository
	shares         contract.ShareRepository
	idempotency    *memory.IdempotencyRepository
	eventPublisher *pktNats.Publisher // optional, nil when NATS is not configured
	clientURL      string
	logger         logger.ILogger
}

func NewShareService(
	patterns contract.PatternRepository,
	shares contract.ShareRepository,
	idempotency *memory.IdempotencyRepository,
	eventPublisher *pktNats.Publisher,
	clientURL string,
	log logger.ILogger,
) IShareService {
	return &shareService{
		patterns:       patterns,
		shares:         shares,
		idempotency:    idempotency,
		eventPublisher: eventPublisher,
		clientURL:      clientURL,
		logger:         log,
	}
}

func (s *shareService) CreateShare(ctx context.Context, userId uuid.UUID, req *dto.CreateShareRequest) (*dto.CreateShareResponse, error) {
	pattern, err := s.patterns.FindOne(ctx, specification.ByID{ID: req.PatternId})
	if err != nil {
		return nil, err
	}
	if pattern == nil {
		return nil, serverutils.NotFoundError("Pattern not found")
	}

	var expiresAt *time.Time
	if req.ExpiresInDays != nil {
		t := time.Now().AddDate(0, 0, *req.ExpiresInDays)
		expiresAt = &t
	}

	link := entity.ShareLink{
		Id:        uuid.New(),
		PatternId: pattern.Id,
		Token:     uuid.NewString(),
		CreatedBy: userId,
		CreatedAt: time.Now(),
		ExpiresAt: expiresAt,
	}
	if err := s.shares.CreateLink(ctx, &link); err != nil {
		return nil, err
	}

	return &dto.CreateShareResponse{
		Token:     link.Token,
		URL:       fmt.Sprintf("%s/shared/%s", s.clientURL, link.Token),
		ExpiresAt: link.ExpiresAt,
	}, nil
}

func (s *shareService) ResolveShare(ctx context.Context, token string) (*dto.SharedPatternResponse, error) {
	link, err := s.activeLink(ctx, token)
	if err != nil {
		return nil, err
	}

	pattern, err := s.patterns.FindOne(ctx, specification.ByID{ID: link.PatternId})
	if err != nil {
		return nil, err
	}
	if pattern == nil {
		return nil, serverutils.NotFoundError("Pattern not found")
	}

	return &dto.SharedPatternResponse{
		Pattern: dto.PatternResult{
			Id:            pattern.Id,
			FileName:      pattern.FileName,
			FileExtension: pattern.FileExtension,
			Author:        pattern.Author,
			ThumbnailURL:  pattern.ThumbnailURL,
		},
		SharedAt: link.CreatedAt,
	}, nil
}

func (s *shareService) SubmitFeedback(ctx context.Context, token string, req *dto.SubmitFeedbackRequest) (*dto.SubmitFeedbackResponse, error) {
	link, err := s.activeLink(ctx, token)
	if err != nil {
		return nil, err
	}

	// Browser retries with the same client key get the original result back
	// instead of a second row.
	idemKey := ""
	if req.ClientKey != "" {
		idemKey = token + ":" + req.ClientKey
		if priorId, found := s.idempotency.Get(idemKey); found {
			return &dto.SubmitFeedbackResponse{Id: priorId, Duplicate: true}, nil
		}
	}

	feedback := entity.PatternFeedback{
		Id:         uuid.New(),
		PatternId:  link.PatternId,
		ShareToken: token,
		AuthorName: req.AuthorName,
		Comment:    req.Comment,
		Rating:     req.Rating,
		CreatedAt:  time.Now(),
	}
	if err := s.shares.CreateFeedback(ctx, &feedback); err != nil {
		return nil, err
	}
	if idemKey != "" {
		s.idempotency.Remember(idemKey, feedback.Id)
	}

	// Notification is auxiliary: log failures, never fail the request.
	if s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: "FEEDBACK_RECEIVED",
			Data: map[string]interface{}{
				"pattern_id":  feedback.PatternId,
				"feedback_id": feedback.Id,
				"rating":      feedback.Rating,
				"shared_by":   link.CreatedBy,
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("share", "failed to publish FEEDBACK_RECEIVED event", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return &dto.SubmitFeedbackResponse{Id: feedback.Id}, nil
}

func (s *shareService) activeLink(ctx context.Context, token string) (*entity.ShareLink, error) {
	link, err := s.shares.FindLink(ctx, specification.ByToken{Token: token})
	if err != nil {
		return nil, err
	}
	if link == nil || !link.Active(time.Now()) {
		return nil, serverutils.NotFoundError("Share link not found or expired")
	}
	return link, nil
}
