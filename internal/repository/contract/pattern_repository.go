package contract

import (
	"context"

	"quiltdex-be/internal/entity"
	"quiltdex-be/internal/repository/specification"
)

type PatternRepository interface {
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Pattern, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Pattern, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// TextSearch performs an OR of case-insensitive substring matches over
	// file_name, author and notes. Zero terms returns an empty slice without
	// touching the database.
	TextSearch(ctx context.Context, terms []string, limit int) ([]*entity.Pattern, error)

	// SearchSemantic calls the search_patterns_semantic stored procedure with
	// the query embedding, similarity threshold and row cap.
	SearchSemantic(ctx context.Context, embedding []float32, threshold float64, limit int) ([]*entity.ScoredPattern, error)
}
