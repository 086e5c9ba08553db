package contract

import (
	"context"

	"quiltdex-be/internal/entity"
)

type SearchLogRepository interface {
	Create(ctx context.Context, log *entity.SearchLog) error
}
