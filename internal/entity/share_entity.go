package entity

import (
	"time"

	"github.com/google/uuid"
)

type ShareLink struct {
	Id        uuid.UUID
	PatternId int64
	Token     string
	CreatedBy uuid.UUID
	CreatedAt time.Time
	ExpiresAt *time.Time
	RevokedAt *time.Time
}

// Active reports whether the link can still be resolved.
func (s *ShareLink) Active(now time.Time) bool {
	if s.RevokedAt != nil {
		return false
	}
	if s.ExpiresAt != nil && now.After(*s.ExpiresAt) {
		return false
	}
	return true
}

type PatternFeedback struct {
	Id         uuid.UUID
	PatternId  int64
	ShareToken string
	AuthorName string
	Comment    string
	Rating     int
	CreatedAt  time.Time
}
