package implementation

import (
	"context"
	"errors"
	"strings"

	"quiltdex-be/internal/entity"
	"quiltdex-be/internal/mapper"
	"quiltdex-be/internal/model"
	"quiltdex-be/internal/repository/contract"
	"quiltdex-be/internal/repository/specification"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type PatternRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PatternMapper
}

func NewPatternRepository(db *gorm.DB) contract.PatternRepository {
	return &PatternRepositoryImpl{
		db:     db,
		mapper: mapper.NewPatternMapper(),
	}
}

func (r *PatternRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *PatternRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Pattern, error) {
	var m model.Pattern
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *PatternRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Pattern, error) {
	var models []*model.Pattern
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Pattern, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *PatternRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.Pattern{}).Count(&count).Error
	return count, err
}

// likeEscaper neutralizes LIKE metacharacters so a term such as "50%" matches
// the literal text instead of acting as a wildcard.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}

func (r *PatternRepositoryImpl) TextSearch(ctx context.Context, terms []string, limit int) ([]*entity.Pattern, error) {
	if len(terms) == 0 {
		return []*entity.Pattern{}, nil
	}
	if limit <= 0 {
		limit = 50
	}

	// OR-combined across all terms, each term matched as a case-insensitive
	// substring over the three text fields.
	first := "%" + escapeLike(terms[0]) + "%"
	cond := r.db.Where("file_name ILIKE ? OR author ILIKE ? OR notes ILIKE ?", first, first, first)
	for _, term := range terms[1:] {
		p := "%" + escapeLike(term) + "%"
		cond = cond.Or(r.db.Where("file_name ILIKE ? OR author ILIKE ? OR notes ILIKE ?", p, p, p))
	}

	var models []*model.Pattern
	err := r.db.WithContext(ctx).
		Model(&model.Pattern{}).
		Where(cond).
		Order("file_name ASC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	entities := make([]*entity.Pattern, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *PatternRepositoryImpl) SearchSemantic(ctx context.Context, embedding []float32, threshold float64, limit int) ([]*entity.ScoredPattern, error) {
	if limit <= 0 {
		limit = 50
	}

	// The similarity math lives in the stored procedure; this is a plain RPC.
	type result struct {
		model.Pattern
		Similarity float64
	}
	var results []result

	err := r.db.WithContext(ctx).
		Raw(
			"SELECT * FROM search_patterns_semantic(?, ?, ?)",
			pgvector.NewVector(embedding),
			threshold,
			limit,
		).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*entity.ScoredPattern, len(results))
	for i, res := range results {
		scored[i] = &entity.ScoredPattern{
			Pattern:    r.mapper.ToEntity(&res.Pattern),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}
