package model

import (
	"time"

	"gorm.io/gorm"
)

type Pattern struct {
	Id            int64          `gorm:"primaryKey;autoIncrement"`
	FileName      string         `gorm:"type:varchar(255);not null;index"`
	FileExtension string         `gorm:"type:varchar(16);not null"`
	Author        string         `gorm:"type:varchar(255);index"`
	Notes         string         `gorm:"type:text"`
	ThumbnailURL  string         `gorm:"type:text"`
	CreatedAt     time.Time      `gorm:"autoCreateTime"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime"`
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

func (Pattern) TableName() string {
	return "patterns"
}
