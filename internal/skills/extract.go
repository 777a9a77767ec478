package skills

import (
	"regexp"
	"strings"

	"github.com/jonathan/career-coach/internal/parsing"
)

// resumeSkills is the dictionary scanned by ExtractSkills.
var resumeSkills = []string{
	"c", "c++", "cpp", "java", "python", "javascript", "typescript", "go", "rust",
	"html", "css", "react", "next.js", "next", "node", "express", "redux", "tailwind",
	"mongodb", "postgresql", "mysql", "docker", "kubernetes", "aws", "gcp",
	"pytorch", "tensorflow", "nlp",
}

// jobTags is the dictionary scanned by ExtractTags. It covers tech and non-tech roles.
var jobTags = []string{
	"react", "next.js", "vue", "angular", "svelte", "javascript", "typescript", "node", "express",
	"python", "django", "flask", "fastapi", "java", "spring", "kotlin", "go", "rust", "c++", "c", "php", "laravel",
	"html", "css", "tailwind", "redux", "graphql", "apollo",
	"mongodb", "postgresql", "mysql", "redis", "elasticsearch", "kafka",
	"aws", "gcp", "azure", "docker", "kubernetes", "terraform", "ansible",
	"ml", "ai", "nlp", "cv", "pytorch", "tensorflow", "sklearn", "pandas", "spark", "databricks", "dbt",
	"security", "devops", "sre", "qa", "testing", "automation",
	"marketing", "seo", "sem", "content", "copywriting", "social media", "brand", "growth",
	"sales", "account executive", "business development", "customer success", "support",
	"finance", "accounting", "fp&a", "treasury", "audit", "tax",
	"hr", "people operations", "recruiting", "talent acquisition",
	"design", "ui", "ux", "research", "product design", "graphic design",
	"operations", "strategy", "legal", "paralegal", "project management", "program management",
	"data analyst", "bi", "analytics", "product manager", "pm", "supply chain", "logistics",
}

type termMatcher struct {
	term string
	re   *regexp.Regexp
}

var (
	resumeSkillMatchers = compileTerms(resumeSkills)
	jobTagMatchers      = compileTerms(jobTags)
)

// compileTerms builds one matcher per term. A term matches when it is not glued to
// another word character, where '+' and '#' count as word characters so that "c"
// does not match inside "c++" or "c#".
func compileTerms(terms []string) []termMatcher {
	out := make([]termMatcher, 0, len(terms))
	for _, t := range terms {
		re := regexp.MustCompile(`(?:^|[^a-z0-9_+#])` + regexp.QuoteMeta(t) + `(?:$|[^a-z0-9_+#])`)
		out = append(out, termMatcher{term: t, re: re})
	}
	return out
}

func scan(text string, matchers []termMatcher, canonical func(string) string) []string {
	lower := strings.ToLower(text)
	if strings.TrimSpace(lower) == "" {
		return nil
	}

	var found []string
	seen := make(map[string]struct{})
	for _, m := range matchers {
		if !m.re.MatchString(lower) {
			continue
		}
		name := canonical(m.term)
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		found = append(found, name)
	}
	return found
}

// ExtractSkills returns the known skills mentioned in text, in dictionary order.
// Aliases such as "cpp" and "next" are folded onto their canonical names.
func ExtractSkills(text string) []string {
	return scan(text, resumeSkillMatchers, canonicalResumeSkill)
}

// ExtractTags returns the job tags mentioned in a posting's title and description.
func ExtractTags(title, description string) []string {
	return scan(title+" "+description, jobTagMatchers, func(s string) string { return s })
}

func canonicalResumeSkill(s string) string {
	switch s {
	case "cpp", "next":
		return parsing.CanonicalSkill(s)
	}
	return s
}
