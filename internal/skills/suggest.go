package skills

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/jonathan/career-coach/internal/types"
)

// DefaultSuggestLimit is used by callers that do not pass a limit.
const DefaultSuggestLimit = 8

// defaultVocabulary is the built-in autocomplete vocabulary.
var defaultVocabulary = []string{
	"react", "next.js", "node.js", "express", "typescript", "javascript", "python", "java", "spring",
	"django", "flask", "fastapi", "mongodb", "mysql", "postgresql", "redis", "graphql", "docker",
	"kubernetes", "aws", "gcp", "azure", "tailwind", "html", "css", "git", "jenkins", "kafka",
	"spark", "pandas", "numpy", "tensorflow", "pytorch", "scikit-learn", "nlp", "computer vision",
	"golang", "rust", "kotlin", "c++", "c", "product management", "ui/ux design", "marketing", "seo",
	"finance", "accounting", "hr", "qa testing", "sre", "devops", "data engineer",
}

// Suggester ranks a fixed vocabulary by edit distance to a query.
type Suggester struct {
	vocabulary []string
}

// NewSuggester creates a suggester over the built-in vocabulary.
func NewSuggester() *Suggester {
	return NewSuggesterWithVocabulary(defaultVocabulary)
}

// NewSuggesterWithVocabulary creates a suggester over a custom vocabulary.
func NewSuggesterWithVocabulary(vocabulary []string) *Suggester {
	v := make([]string, len(vocabulary))
	copy(v, vocabulary)
	return &Suggester{vocabulary: v}
}

// Vocabulary returns a copy of the vocabulary.
func (s *Suggester) Vocabulary() []string {
	out := make([]string, len(s.vocabulary))
	copy(out, s.vocabulary)
	return out
}

// Suggest returns up to limit vocabulary entries ordered by ascending Levenshtein
// distance to the lowercased query, surrounding spaces included. Ties keep vocabulary
// order. A blank query or a non-positive limit yields an empty result.
func (s *Suggester) Suggest(query string, limit int) []types.SkillSuggestion {
	if strings.TrimSpace(query) == "" || limit <= 0 {
		return []types.SkillSuggestion{}
	}
	q := strings.ToLower(query)

	ranked := make([]types.SkillSuggestion, len(s.vocabulary))
	for i, skill := range s.vocabulary {
		ranked[i] = types.SkillSuggestion{
			Skill:    skill,
			Distance: levenshtein.ComputeDistance(q, strings.ToLower(skill)),
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Distance < ranked[j].Distance
	})

	if limit < len(ranked) {
		ranked = ranked[:limit]
	}
	return ranked
}

// SuggestSkills returns only the skill names from Suggest.
func (s *Suggester) SuggestSkills(query string, limit int) []string {
	suggestions := s.Suggest(query, limit)
	out := make([]string, len(suggestions))
	for i, sg := range suggestions {
		out[i] = sg.Skill
	}
	return out
}
