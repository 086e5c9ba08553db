package mapper

import (
	"quiltdex-be/internal/entity"
	"quiltdex-be/internal/model"
)

type ShareMapper struct{}

func NewShareMapper() *ShareMapper {
	return &ShareMapper{}
}

func (m *ShareMapper) ToEntity(s *model.ShareLink) *entity.ShareLink {
	if s == nil {
		return nil
	}
	return &entity.ShareLink{
		Id:        s.Id,
		PatternId: s.PatternId,
		Token:     s.Token,
		CreatedBy: s.CreatedBy,
		CreatedAt: s.CreatedAt,
		ExpiresAt: s.ExpiresAt,
		RevokedAt: s.RevokedAt,
	}
}

func (m *ShareMapper) ToModel(s *entity.ShareLink) *model.ShareLink {
	if s == nil {
		return nil
	}
	return &model.ShareLink{
		Id:        s.Id,
		PatternId: s.PatternId,
		Token:     s.Token,
		CreatedBy: s.CreatedBy,
		CreatedAt: s.CreatedAt,
		ExpiresAt: s.ExpiresAt,
		RevokedAt: s.RevokedAt,
	}
}

func (m *ShareMapper) FeedbackToEntity(f *model.PatternFeedback) *entity.PatternFeedback {
	if f == nil {
		return nil
	}
	return &entity.PatternFeedback{
		Id:         f.Id,
		PatternId:  f.PatternId,
		ShareToken: f.ShareToken,
		AuthorName: f.AuthorName,
		Comment:    f.Comment,
		Rating:     f.Rating,
		CreatedAt:  f.CreatedAt,
	}
}

func (m *ShareMapper) FeedbackToModel(f *entity.PatternFeedback) *model.PatternFeedback {
	if f == nil {
		return nil
	}
	return &model.PatternFeedback{
		Id:         f.Id,
		PatternId:  f.PatternId,
		ShareToken: f.ShareToken,
		AuthorName: f.AuthorName,
		Comment:    f.Comment,
		Rating:     f.Rating,
		CreatedAt:  f.CreatedAt,
	}
}
