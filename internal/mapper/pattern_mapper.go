package mapper

import (
	"time"

	"quiltdex-be/internal/entity"
	"quiltdex-be/internal/model"
)

type PatternMapper struct{}

func NewPatternMapper() *PatternMapper {
	return &PatternMapper{}
}

func (m *PatternMapper) ToEntity(p *model.Pattern) *entity.Pattern {
	if p == nil {
		return nil
	}

	var updatedAt *time.Time
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		updatedAt = &t
	}

	return &entity.Pattern{
		Id:            p.Id,
		FileName:      p.FileName,
		FileExtension: p.FileExtension,
		Author:        p.Author,
		Notes:         p.Notes,
		ThumbnailURL:  p.ThumbnailURL,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     updatedAt,
	}
}

func (m *PatternMapper) ToModel(p *entity.Pattern) *model.Pattern {
	if p == nil {
		return nil
	}

	modelPattern := &model.Pattern{
		Id:            p.Id,
		FileName:      p.FileName,
		FileExtension: p.FileExtension,
		Author:        p.Author,
		Notes:         p.Notes,
		ThumbnailURL:  p.ThumbnailURL,
		CreatedAt:     p.CreatedAt,
	}
	if p.UpdatedAt != nil {
		modelPattern.UpdatedAt = *p.UpdatedAt
	}
	return modelPattern
}
