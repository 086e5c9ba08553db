package contract

import (
	"context"

	"quiltdex-be/internal/entity"
	"quiltdex-be/internal/repository/specification"
)

type ShareRepository interface {
	CreateLink(ctx context.Context, link *entity.ShareLink) error
	FindLink(ctx context.Context, specs ...specification.Specification) (*entity.ShareLink, error)
	CreateFeedback(ctx context.Context, feedback *entity.PatternFeedback) error
}
