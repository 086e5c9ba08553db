package implementation

import (
	"context"
	"errors"

	"quiltdex-be/internal/entity"
	"quiltdex-be/internal/mapper"
	"quiltdex-be/internal/model"
	"quiltdex-be/internal/repository/contract"
	"quiltdex-be/internal/repository/specification"

	"gorm.io/gorm"
)

type ShareRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ShareMapper
}

func NewShareRepository(db *gorm.DB) contract.ShareRepository {
	return &ShareRepositoryImpl{
		db:     db,
		mapper: mapper.NewShareMapper(),
	}
}

func (r *ShareRepositoryImpl) CreateLink(ctx context.Context, link *entity.ShareLink) error {
	m := r.mapper.ToModel(link)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*link = *r.mapper.ToEntity(m)
	return nil
}

func (r *ShareRepositoryImpl) FindLink(ctx context.Context, specs ...specification.Specification) (*entity.ShareLink, error) {
	var m model.ShareLink
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ShareRepositoryImpl) CreateFeedback(ctx context.Context, feedback *entity.PatternFeedback) error {
	m := r.mapper.FeedbackToModel(feedback)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*feedback = *r.mapper.FeedbackToEntity(m)
	return nil
}
