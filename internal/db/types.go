package db

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/career-coach/internal/types"
)

// Roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a stored user row including the career profile.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize to JSON
	Role         string    `json:"role"`
	Headline     string    `json:"headline"`
	Skills       []string  `json:"skills"`
	ResumeText   string    `json:"resume_text,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile returns the user's career profile.
func (u *User) Profile() types.Profile {
	skills := u.Skills
	if skills == nil {
		skills = []string{}
	}
	return types.Profile{Headline: u.Headline, Skills: skills, ResumeText: u.ResumeText}
}

// ScoreRecord is one entry of a user's resume score history.
type ScoreRecord struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	Score           int       `json:"score"`
	KeywordCoverage *int      `json:"keyword_coverage,omitempty"`
	Bullets         int       `json:"bullets"`
	Metrics         int       `json:"metrics"`
	Suggestions     []string  `json:"suggestions"`
	MissingKeywords []string  `json:"missing_keywords"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewScoreRecord builds a history entry from a scoring result.
func NewScoreRecord(userID uuid.UUID, r types.ScoreResult) ScoreRecord {
	return ScoreRecord{
		UserID:          userID,
		Score:           r.Score,
		KeywordCoverage: r.KeywordCoverage,
		Bullets:         r.Bullets,
		Metrics:         r.Metrics,
		Suggestions:     nonNil(r.Suggestions),
		MissingKeywords: nonNil(r.MissingKeywords),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// StringArray stores a string list as a JSON text column (SQLite has no array type).
type StringArray []string

// Scan implements the Scanner interface for StringArray
func (a *StringArray) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*a = StringArray{}
		return nil
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	default:
		return errors.New("StringArray: unsupported source type")
	}
}

// Value implements the Valuer interface for StringArray
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(a))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
