package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateShareRequest struct {
	PatternId     int64 `json:"pattern_id" validate:"required"`
	ExpiresInDays *int  `json:"expires_in_days" validate:"omitempty,min=1,max=365"`
}

type CreateShareResponse struct {
	Token     string     `json:"token"`
	URL       string     `json:"url"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

type SharedPatternResponse struct {
	Pattern  PatternResult `json:"pattern"`
	SharedAt time.Time     `json:"shared_at"`
}

type SubmitFeedbackRequest struct {
	AuthorName string `json:"author_name" validate:"required,max=100"`
	Comment    string `json:"comment" validate:"max=2000"`
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
	// ClientKey lets the browser retry safely; duplicate submissions with the
	// same key are answered with the original result.
	ClientKey string `json:"client_key" validate:"omitempty,max=64"`
}

type SubmitFeedbackResponse struct {
	Id        uuid.UUID `json:"id"`
	Duplicate bool      `json:"duplicate"`
}
