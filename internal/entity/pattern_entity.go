package entity

import "time"

type Pattern struct {
	Id            int64
	FileName      string
	FileExtension string
	Author        string
	Notes         string
	ThumbnailURL  string
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

// ScoredPattern carries the cosine similarity reported by the vector search
// procedure alongside the pattern summary.
type ScoredPattern struct {
	Pattern    *Pattern
	Similarity float64
}
