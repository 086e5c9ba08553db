package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type SearchLog struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId      uuid.UUID      `gorm:"type:uuid;index"`
	Query       string         `gorm:"type:varchar(500);not null"`
	Method      string         `gorm:"type:varchar(16);not null"`
	ResultCount int            `gorm:"not null;default:0"`
	Details     datatypes.JSON `gorm:"type:jsonb"` // fallbackUsed, cacheHit, timings
	CreatedAt   time.Time      `gorm:"autoCreateTime;index"`
}

func (SearchLog) TableName() string {
	return "search_logs"
}
