package parsing

import (
	"strings"
)

// skillAliases maps common skill name variants to the canonical lowercase tag.
var skillAliases = map[string]string{
	"golang":     "go",
	"go lang":    "go",
	"js":         "javascript",
	"ts":         "typescript",
	"k8s":        "kubernetes",
	"react.js":   "react",
	"reactjs":    "react",
	"vue.js":     "vue",
	"vuejs":      "vue",
	"nodejs":     "node",
	"node.js":    "node",
	"cpp":        "c++",
	"next":       "next.js",
	"nextjs":     "next.js",
	"postgres":   "postgresql",
	"sklearn":    "scikit-learn",
	"tensorflow": "tensorflow",
}

// NormalizeTag lowercases and trims a skill or tag. Empty input yields "".
func NormalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// CanonicalSkill normalizes a skill name and folds known aliases onto one tag.
func CanonicalSkill(skill string) string {
	normalized := NormalizeTag(skill)
	if canonical, ok := skillAliases[normalized]; ok {
		return canonical
	}
	return normalized
}

// NormalizeTags normalizes a list of tags, dropping empties and duplicates.
// First-occurrence order is kept.
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		n := NormalizeTag(t)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// CollapseWhitespace replaces runs of whitespace with a single space and trims the ends.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
