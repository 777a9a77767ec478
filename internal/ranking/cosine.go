// Package ranking scores jobs against a user's skills and ranks jobs for free-text queries.
package ranking

import (
	"math"

	"github.com/jonathan/career-coach/internal/skills"
)

// Cosine returns the cosine similarity of two sparse vectors. It is 0 when either
// vector has zero norm, and in [0,1] for non-negative weights.
func Cosine(a, b skills.SkillVector) float64 {
	na, nb := a.Norm(), b.Norm()
	if na == 0 || nb == 0 {
		return 0
	}
	sim := a.Dot(b) / (na * nb)
	// guard against float drift just above 1
	return math.Min(sim, 1)
}
