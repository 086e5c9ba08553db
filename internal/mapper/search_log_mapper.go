package mapper

import (
	"encoding/json"

	"quiltdex-be/internal/entity"
	"quiltdex-be/internal/model"

	"gorm.io/datatypes"
)

type SearchLogMapper struct{}

func NewSearchLogMapper() *SearchLogMapper {
	return &SearchLogMapper{}
}

func (m *SearchLogMapper) ToModel(l *entity.SearchLog) *model.SearchLog {
	if l == nil {
		return nil
	}

	details, _ := json.Marshal(map[string]interface{}{
		"fallback_used": l.FallbackUsed,
		"cache_hit":     l.CacheHit,
	})

	return &model.SearchLog{
		Id:          l.Id,
		UserId:      l.UserId,
		Query:       l.Query,
		Method:      l.Method,
		ResultCount: l.ResultCount,
		Details:     datatypes.JSON(details),
		CreatedAt:   l.CreatedAt,
	}
}
