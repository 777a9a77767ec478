package ranking

import (
	"testing"

	"github.com/jonathan/career-coach/internal/skills"
	"github.com/stretchr/testify/assert"
)

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b skills.SkillVector
		want float64
	}{
		{name: "identical", a: skills.SkillVector{"go": 1, "sql": 1}, b: skills.SkillVector{"go": 1, "sql": 1}, want: 1},
		{name: "half overlap", a: skills.SkillVector{"react": 1, "node": 1}, b: skills.SkillVector{"react": 1, "python": 1}, want: 0.5},
		{name: "disjoint", a: skills.SkillVector{"go": 1}, b: skills.SkillVector{"java": 1}, want: 0},
		{name: "empty left", a: skills.SkillVector{}, b: skills.SkillVector{"go": 1}, want: 0},
		{name: "empty right", a: skills.SkillVector{"go": 1}, b: nil, want: 0},
		{name: "both empty", a: nil, b: nil, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Cosine(tt.a, tt.b), 1e-9)
			assert.InDelta(t, Cosine(tt.a, tt.b), Cosine(tt.b, tt.a), 1e-12)
		})
	}
}
