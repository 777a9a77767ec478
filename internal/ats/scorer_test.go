package ats

import (
	"math"
	"testing"

	"github.com/jonathan/career-coach/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore_HeuristicWithoutJobDescription(t *testing.T) {
	s := NewScorer(DefaultModel())

	result := s.Score(sampleResume, "")

	// 55*0.5 + 25*1 + 2*8 + 2*3 = 74.5
	assert.Equal(t, 75, result.Score)
	assert.Nil(t, result.KeywordCoverage)
	assert.Equal(t, 8, result.Bullets)
	assert.Equal(t, 3, result.Metrics)
	assert.Equal(t, []string{SuggestKeywords}, result.Suggestions, "neutral coverage is below the keyword threshold")
	assert.Empty(t, result.MissingKeywords)
}

func TestScore_WithJobDescription(t *testing.T) {
	s := NewScorer(DefaultModel())

	result := s.Score("Golang services on Kubernetes with Postgres", "Golang, Kubernetes and Terraform")

	require.NotNil(t, result.KeywordCoverage)
	assert.Equal(t, 67, *result.KeywordCoverage)
	assert.Equal(t, 37, result.Score)
	assert.Equal(t, []string{"terraform"}, result.MissingKeywords)
	assert.Equal(t, []string{SuggestKeywords, SuggestSections, SuggestBullets, SuggestMetrics}, result.Suggestions)
}

func TestScore_Idempotent(t *testing.T) {
	s := NewScorer(DefaultModel())

	first := s.Score(sampleResume, "Go engineer with Kubernetes experience")
	second := s.Score(sampleResume, "Go engineer with Kubernetes experience")
	assert.Equal(t, first, second)
}

func TestScoreFeatures_Bounds(t *testing.T) {
	s := NewScorer(DefaultModel())

	high := s.ScoreFeatures(types.ResumeFeatures{Coverage: 1, SectionsRatio: 1, Bullets: 50, Metrics: 50, KeywordCount: 4})
	assert.Equal(t, 100, high.Score)

	low := s.ScoreFeatures(types.ResumeFeatures{})
	assert.Equal(t, 0, low.Score)
}

func TestScoreFeatures_DensityCapped(t *testing.T) {
	s := NewScorer(DefaultModel())

	ten := s.ScoreFeatures(types.ResumeFeatures{Bullets: 10, Metrics: 10})
	many := s.ScoreFeatures(types.ResumeFeatures{Bullets: 40, Metrics: 25})
	assert.Equal(t, ten.Score, many.Score)
	assert.Equal(t, 40, many.Bullets)
}

func TestScoreFeatures_LinearModel(t *testing.T) {
	model := LinearModel{Intercept: 10, Coverage: 50, Sections: 20, Bullets: 1, Metrics: 1}
	s := NewScorer(LoadedModel(model, "test"))

	result := s.ScoreFeatures(types.ResumeFeatures{Coverage: 0.5, SectionsRatio: 1, Bullets: 8, Metrics: 3})
	assert.Equal(t, 66, result.Score)
}

func TestScoreFeatures_LinearModelClamped(t *testing.T) {
	f := types.ResumeFeatures{Coverage: 0.5, SectionsRatio: 1, Bullets: 8, Metrics: 3}

	assert.Equal(t, 100, NewScorer(LoadedModel(LinearModel{Intercept: 500}, "")).ScoreFeatures(f).Score)
	assert.Equal(t, 0, NewScorer(LoadedModel(LinearModel{Intercept: -500}, "")).ScoreFeatures(f).Score)
}

func TestSuggestions_Thresholds(t *testing.T) {
	tests := []struct {
		name     string
		features types.ResumeFeatures
		want     []string
	}{
		{
			name:     "all good",
			features: types.ResumeFeatures{Coverage: 0.7, SectionsRatio: 0.8, Bullets: 6, Metrics: 2, KeywordCount: 3},
			want:     []string{},
		},
		{
			name:     "low coverage with job description",
			features: types.ResumeFeatures{Coverage: 0.69, SectionsRatio: 1, Bullets: 6, Metrics: 2, KeywordCount: 3},
			want:     []string{SuggestKeywords},
		},
		{
			name:     "neutral coverage without job description",
			features: types.ResumeFeatures{Coverage: NeutralCoverage, SectionsRatio: 1, Bullets: 6, Metrics: 2},
			want:     []string{SuggestKeywords},
		},
		{
			name:     "structure",
			features: types.ResumeFeatures{Coverage: 1, SectionsRatio: 0.5, Bullets: 5, Metrics: 1, KeywordCount: 1},
			want:     []string{SuggestSections, SuggestBullets, SuggestMetrics},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, suggestions(tt.features))
		})
	}
}

func TestClampScore(t *testing.T) {
	assert.Equal(t, 0, clampScore(math.NaN()))
	assert.Equal(t, 0, clampScore(-3))
	assert.Equal(t, 100, clampScore(math.Inf(1)))
	assert.Equal(t, 51, clampScore(50.5))
}
