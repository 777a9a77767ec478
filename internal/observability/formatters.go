// Package observability renders command results as boxed, human-readable text for
// the CLI's text output mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/career-coach/internal/jobimport"
	"github.com/jonathan/career-coach/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 10
)

// Printer writes formatted result boxes.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // output errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// PrintScore outputs a resume score with coverage, counts and suggestions.
func (p *Printer) PrintScore(result types.ScoreResult) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Score:     %d / 100\n", result.Score))
	if result.KeywordCoverage != nil {
		sb.WriteString(fmt.Sprintf("Coverage:  %d%%\n", *result.KeywordCoverage))
	} else {
		sb.WriteString("Coverage:  n/a (no job description)\n")
	}
	sb.WriteString(fmt.Sprintf("Bullets:   %d\n", result.Bullets))
	sb.WriteString(fmt.Sprintf("Metrics:   %d\n", result.Metrics))

	if len(result.MissingKeywords) > 0 {
		sb.WriteString("\nMissing keywords:\n")
		writeList(&sb, result.MissingKeywords)
	}
	if len(result.Suggestions) > 0 {
		sb.WriteString("\nSuggestions:\n")
		for _, s := range result.Suggestions {
			sb.WriteString(fmt.Sprintf("  • %s\n", s))
		}
	}

	p.printBox("RESUME SCORE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintJobs outputs ranked jobs with their scores under title.
func (p *Printer) PrintJobs(title string, jobs []types.ScoredJob) {
	if len(jobs) == 0 {
		p.printBox(title, "No matching jobs.")
		return
	}

	var sb strings.Builder
	count := min(len(jobs), maxItemsToShow)
	for i := 0; i < count; i++ {
		job := jobs[i].Job
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, job.Title))
		sb.WriteString(fmt.Sprintf("    %s", job.Company))
		if job.Location != "" {
			sb.WriteString(fmt.Sprintf(" · %s", job.Location))
		}
		sb.WriteString(fmt.Sprintf("\n    Score: %.3f\n", jobs[i].Score))
		if len(job.Tags) > 0 {
			sb.WriteString(fmt.Sprintf("    Tags: %s\n", strings.Join(job.Tags, ", ")))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}
	if len(jobs) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more jobs", len(jobs)-maxItemsToShow))
	}

	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSuggestions outputs skill suggestions with their edit distances.
func (p *Printer) PrintSuggestions(suggestions []types.SkillSuggestion) {
	if len(suggestions) == 0 {
		p.printBox("SKILL SUGGESTIONS", "No suggestions.")
		return
	}

	var sb strings.Builder
	for _, s := range suggestions {
		sb.WriteString(fmt.Sprintf("%-24s distance %d\n", s.Skill, s.Distance))
	}
	p.printBox("SKILL SUGGESTIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintImport outputs the counters of a job import run.
func (p *Printer) PrintImport(r jobimport.Result) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Read:               %d\n", r.Read))
	sb.WriteString(fmt.Sprintf("Accepted:           %d\n", r.Accepted))
	sb.WriteString(fmt.Sprintf("Skipped invalid:    %d\n", r.Invalid))
	sb.WriteString(fmt.Sprintf("Skipped duplicate:  %d\n", r.Duplicates))
	sb.WriteString(fmt.Sprintf("Skipped stale:      %d\n", r.Stale))
	if r.Dry {
		sb.WriteString("\nDry run: nothing written.")
	} else {
		if r.Deleted > 0 {
			sb.WriteString(fmt.Sprintf("Deleted:            %d\n", r.Deleted))
		}
		sb.WriteString(fmt.Sprintf("Inserted:           %d\n", r.Inserted))
		sb.WriteString(fmt.Sprintf("Updated:            %d", r.Updated))
	}

	p.printBox("JOB IMPORT", sb.String())
}

func writeList(sb *strings.Builder, items []string) {
	count := min(len(items), maxItemsToShow)
	for _, item := range items[:count] {
		sb.WriteString(fmt.Sprintf("  • %s\n", item))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
}
