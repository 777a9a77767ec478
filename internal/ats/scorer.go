package ats

import (
	"math"

	"github.com/jonathan/career-coach/internal/types"
)

// Heuristic weights. JD alignment dominates, structure is second, and bullet/metric
// density is a small capped bonus.
const (
	coverageWeight = 55.0
	sectionsWeight = 25.0
	bulletWeight   = 2.0
	metricWeight   = 2.0

	// densityCap bounds how many bullets or metrics can contribute.
	densityCap = 10
)

// Suggestion thresholds and texts, applied in this order.
const (
	coverageThreshold = 0.7
	sectionsThreshold = 0.8
	minBullets        = 6
	minMetrics        = 2

	SuggestKeywords = "Add more role-specific keywords from the job description."
	SuggestSections = "Ensure Summary, Experience, Education, Projects, Skills, Achievements are present."
	SuggestBullets  = "Use concise bullet points under experience/projects."
	SuggestMetrics  = "Quantify impact with metrics (%, $, time saved, scale)."
)

// Formula maps a feature vector to an unclamped raw score.
type Formula interface {
	Raw(f types.ResumeFeatures) float64
}

// Heuristic is the built-in fixed-weight formula.
type Heuristic struct{}

// Raw implements Formula.
func (Heuristic) Raw(f types.ResumeFeatures) float64 {
	return coverageWeight*f.Coverage +
		sectionsWeight*f.SectionsRatio +
		bulletWeight*capped(f.Bullets) +
		metricWeight*capped(f.Metrics)
}

// Raw implements Formula.
func (m LinearModel) Raw(f types.ResumeFeatures) float64 {
	return m.Intercept +
		m.Coverage*f.Coverage +
		m.Sections*f.SectionsRatio +
		m.Bullets*capped(f.Bullets) +
		m.Metrics*capped(f.Metrics)
}

// Scorer scores resumes with a fixed formula chosen at construction. It holds no
// mutable state and is safe for concurrent use.
type Scorer struct {
	formula Formula
}

// NewScorer creates a scorer for the given model configuration.
func NewScorer(model ModelConfig) *Scorer {
	return &Scorer{formula: model.Formula()}
}

// Score extracts features from the resume and job description and scores them.
func (s *Scorer) Score(resumeText, jobDescription string) types.ScoreResult {
	result := s.ScoreFeatures(ExtractFeatures(resumeText, jobDescription))
	result.MissingKeywords = MissingKeywords(resumeText, jobDescription)
	return result
}

// ScoreFeatures turns a feature vector into a ScoreResult.
func (s *Scorer) ScoreFeatures(f types.ResumeFeatures) types.ScoreResult {
	result := types.ScoreResult{
		Score:       clampScore(s.formula.Raw(f)),
		Bullets:     f.Bullets,
		Metrics:     f.Metrics,
		Suggestions: suggestions(f),
	}
	if f.HasJobDescription() {
		coverage := int(math.Round(f.Coverage * 100))
		result.KeywordCoverage = &coverage
	}
	return result
}

func suggestions(f types.ResumeFeatures) []string {
	out := make([]string, 0, 4)
	if f.Coverage < coverageThreshold {
		out = append(out, SuggestKeywords)
	}
	if f.SectionsRatio < sectionsThreshold {
		out = append(out, SuggestSections)
	}
	if f.Bullets < minBullets {
		out = append(out, SuggestBullets)
	}
	if f.Metrics < minMetrics {
		out = append(out, SuggestMetrics)
	}
	return out
}

func capped(n int) float64 {
	return float64(min(densityCap, n))
}

// clampScore rounds a raw score and clamps it to 0..100. NaN maps to 0.
func clampScore(raw float64) int {
	if math.IsNaN(raw) {
		return 0
	}
	return int(math.Max(0, math.Min(100, math.Round(raw))))
}
