// Package skills builds sparse skill/tag vectors, loads optional tag weights,
// extracts known skills from free text and suggests skills for partial input.
package skills

import (
	"math"

	"github.com/jonathan/career-coach/internal/parsing"
)

// SkillVector maps a lowercase tag to a positive weight.
type SkillVector map[string]float64

// BuildSkillVector lowercases, trims and dedupes the input, giving each tag weight 1.0.
// Empty strings are dropped.
func BuildSkillVector(tags []string) SkillVector {
	v := make(SkillVector, len(tags))
	for _, t := range parsing.NormalizeTags(tags) {
		v[t] = 1.0
	}
	return v
}

// Norm returns the Euclidean norm of the vector.
func (v SkillVector) Norm() float64 {
	sum := 0.0
	for _, w := range v {
		sum += w * w
	}
	return math.Sqrt(sum)
}

// Dot returns the dot product of v and other over their shared keys.
func (v SkillVector) Dot(other SkillVector) float64 {
	small, large := v, other
	if len(small) > len(large) {
		small, large = large, small
	}
	dot := 0.0
	for t, w := range small {
		dot += w * large[t]
	}
	return dot
}
