package implementation

import (
	"context"

	"quiltdex-be/internal/entity"
	"quiltdex-be/internal/mapper"
	"quiltdex-be/internal/repository/contract"

	"gorm.io/gorm"
)

type SearchLogRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SearchLogMapper
}

func NewSearchLogRepository(db *gorm.DB) contract.SearchLogRepository {
	return &SearchLogRepositoryImpl{
		db:     db,
		mapper: mapper.NewSearchLogMapper(),
	}
}

func (r *SearchLogRepositoryImpl) Create(ctx context.Context, log *entity.SearchLog) error {
	return r.db.WithContext(ctx).Create(r.mapper.ToModel(log)).Error
}
