// Package ats computes a deterministic ATS-style compatibility score for a resume,
// optionally against a job description.
package ats

import (
	"regexp"
	"strings"

	"github.com/jonathan/career-coach/internal/parsing"
	"github.com/jonathan/career-coach/internal/types"
)

// NeutralCoverage is the coverage assumed when the job description yields no keywords,
// so resumes scored without a JD are not pushed to the bottom of the scale.
const NeutralCoverage = 0.5

// sectionLabels are the canonical resume sections looked for in the text.
var sectionLabels = []string{"summary", "experience", "education", "projects", "skills", "achievements"}

var (
	// bulletPattern matches a line starting (after optional indent) with a bullet glyph.
	bulletPattern = regexp.MustCompile(`\n\s*[-•*]`)

	// metricPattern matches quantified impact: currency, percentages, k/m magnitudes, or bare 2+ digit numbers.
	metricPattern = regexp.MustCompile(`(?i)\$\d[\d,]*(?:\.\d+)?|\b\d+(?:\.\d+)?%|\b\d+(?:\.\d+)?[km]\b|\b\d{2,}\b`)
)

// ExtractFeatures derives the feature vector of a resume. jobDescription may be empty.
func ExtractFeatures(resumeText, jobDescription string) types.ResumeFeatures {
	lower := strings.ToLower(resumeText)
	keywords := parsing.Keywords(jobDescription)

	coverage := NeutralCoverage
	if len(keywords) > 0 {
		hits := 0
		for _, k := range keywords {
			if strings.Contains(lower, k) {
				hits++
			}
		}
		coverage = float64(hits) / float64(len(keywords))
	}

	sections := 0
	for _, label := range sectionLabels {
		if strings.Contains(lower, label) {
			sections++
		}
	}

	return types.ResumeFeatures{
		Coverage:      coverage,
		SectionsRatio: float64(sections) / float64(len(sectionLabels)),
		Bullets:       len(bulletPattern.FindAllStringIndex(resumeText, -1)),
		Metrics:       len(metricPattern.FindAllStringIndex(resumeText, -1)),
		KeywordCount:  len(keywords),
	}
}

// MissingKeywords lists the job description keywords absent from the resume, in JD order.
func MissingKeywords(resumeText, jobDescription string) []string {
	lower := strings.ToLower(resumeText)
	var missing []string
	for _, k := range parsing.Keywords(jobDescription) {
		if !strings.Contains(lower, k) {
			missing = append(missing, k)
		}
	}
	return missing
}
