package main

import (
	"fmt"

	"github.com/jonathan/career-coach/internal/observability"
	"github.com/jonathan/career-coach/internal/skills"
	"github.com/spf13/cobra"
)

const maxSuggestLimit = 50

func newSuggestSkillsCmd(root *rootOptions) *cobra.Command {
	var (
		query string
		limit int
	)
	cmd := &cobra.Command{
		Use:   "suggest-skills",
		Short: "Suggest skills closest to a partial query",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit <= 0 {
				limit = skills.DefaultSuggestLimit
			}
			suggestions := skills.NewSuggester().Suggest(query, min(limit, maxSuggestLimit))
			return root.emit(cmd, suggestions, "", func(p *observability.Printer) {
				p.PrintSuggestions(suggestions)
			})
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Partial skill name (required)")
	cmd.Flags().IntVarP(&limit, "limit", "n", skills.DefaultSuggestLimit, "Maximum number of suggestions")
	if err := cmd.MarkFlagRequired("query"); err != nil {
		panic(fmt.Sprintf("failed to mark query flag as required: %v", err))
	}
	return cmd
}
