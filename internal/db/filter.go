package db

import (
	"strings"

	"github.com/jonathan/career-coach/internal/parsing"
)

// JobFilter narrows the candidate set read from a job store.
type JobFilter struct {
	// Contains keeps jobs whose title, company, description or tags contain the
	// string (case-insensitive).
	Contains string
	// AnyTokens keeps jobs where any token occurs in the title, company, location or
	// description, or equals one of the tags.
	AnyTokens []string
	// Limit caps the number of rows returned. Zero means no limit.
	Limit int
}

// SearchFilter builds the coarse candidate filter for a free-text query.
func SearchFilter(query string, limit int) JobFilter {
	return JobFilter{AnyTokens: parsing.UniqueTokens(query), Limit: limit}
}

// likePattern wraps s for a LIKE/ILIKE match, escaping wildcards.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(s)) + "%"
}

func likePatterns(tokens []string) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = likePattern(t)
	}
	return out
}
