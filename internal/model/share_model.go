package model

import (
	"time"

	"github.com/google/uuid"
)

type ShareLink struct {
	Id        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PatternId int64      `gorm:"not null;index"`
	Token     string     `gorm:"type:varchar(64);not null;uniqueIndex"`
	CreatedBy uuid.UUID  `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
	ExpiresAt *time.Time `gorm:"index"`
	RevokedAt *time.Time
}

func (ShareLink) TableName() string {
	return "share_links"
}

type PatternFeedback struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PatternId  int64     `gorm:"not null;index"`
	ShareToken string    `gorm:"type:varchar(64);not null;index"`
	AuthorName string    `gorm:"type:varchar(100);not null"`
	Comment    string    `gorm:"type:text"`
	Rating     int       `gorm:"not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (PatternFeedback) TableName() string {
	return "pattern_feedback"
}
