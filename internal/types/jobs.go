package types

import (
	"time"

	"github.com/google/uuid"
)

// JobRecord is a job posting as supplied by the job store. Scoring code only reads it.
type JobRecord struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location,omitempty"`
	Description string    `json:"description,omitempty"`
	URL         string    `json:"url,omitempty"`
	Tags        []string  `json:"tags"`
	PostedAt    time.Time `json:"posted_at"`
}

// ScoredJob pairs a job with its relevance score.
type ScoredJob struct {
	Job   JobRecord `json:"job"`
	Score float64   `json:"score"`
}

// SkillSuggestion is a single autocomplete entry.
type SkillSuggestion struct {
	Skill    string `json:"skill"`
	Distance int    `json:"distance"`
}
