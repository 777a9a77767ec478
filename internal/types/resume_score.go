// Package types provides type definitions for structured data used throughout the career-coach system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ResumeFeatures is the numeric feature vector derived from resume text and an optional job description.
type ResumeFeatures struct {
	Coverage      float64 `json:"coverage"`       // 0..1, fraction of JD keywords found in the resume
	SectionsRatio float64 `json:"sections_ratio"` // 0..1, fraction of canonical sections present
	Bullets       int     `json:"bullets"`
	Metrics       int     `json:"metrics"`
	// KeywordCount is the size of the JD keyword set. Zero means coverage was not measured.
	KeywordCount int `json:"keyword_count"`
}

// HasJobDescription reports whether coverage was measured against real JD keywords.
func (f ResumeFeatures) HasJobDescription() bool {
	return f.KeywordCount > 0
}

// ScoreResult is the ATS-style score returned to callers.
type ScoreResult struct {
	Score           int      `json:"score"`
	KeywordCoverage *int     `json:"keyword_coverage,omitempty"`
	Bullets         int      `json:"bullets"`
	Metrics         int      `json:"metrics"`
	Suggestions     []string `json:"suggestions"`
	MissingKeywords []string `json:"missing_keywords,omitempty"`
}
