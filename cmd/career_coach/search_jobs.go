package main

import (
	"fmt"

	"github.com/jonathan/career-coach/internal/db"
	"github.com/jonathan/career-coach/internal/logger"
	"github.com/jonathan/career-coach/internal/observability"
	"github.com/jonathan/career-coach/internal/parsing"
	"github.com/jonathan/career-coach/internal/ranking"
	"github.com/jonathan/career-coach/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type searchJobsOptions struct {
	source jobSource
	query  string
	limit  int
	out    string
}

func newSearchJobsCmd(root *rootOptions) *cobra.Command {
	opts := &searchJobsOptions{}
	cmd := &cobra.Command{
		Use:   "search-jobs",
		Short: "Search jobs with a free-text query",
		Long: "Ranks jobs by query token hits, tag matches and posting recency. Only jobs that " +
			"mention at least one query token are considered.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSearchJobs(cmd, root, opts)
		},
	}

	opts.source.addFlags(cmd)
	cmd.Flags().StringVarP(&opts.query, "query", "q", "", "Search query (required)")
	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 0, "Maximum number of results (default search.default-limit)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Path to output file (default stdout)")
	if err := cmd.MarkFlagRequired("query"); err != nil {
		panic(fmt.Sprintf("failed to mark query flag as required: %v", err))
	}
	return cmd
}

func runSearchJobs(cmd *cobra.Command, root *rootOptions, opts *searchJobsOptions) error {
	if err := opts.source.validate(); err != nil {
		return err
	}
	cfg, log, err := root.load("stderr")
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	hits := []types.ScoredJob{}
	if len(parsing.UniqueTokens(opts.query)) > 0 {
		jobs, err := opts.source.load(cmd.Context(), db.SearchFilter(opts.query, cfg.Search.CandidateLimit))
		if err != nil {
			return err
		}
		hits = ranking.NewSearchRanker().RankScored(opts.query, jobs, cfg.Search.Clamp(opts.limit))
		log.Debug("search",
			zap.String("query", logger.TruncateForLog(opts.query, 80)),
			zap.Int("candidates", len(jobs)),
			zap.Int("hits", len(hits)),
		)
	}

	return root.emit(cmd, hits, opts.out, func(p *observability.Printer) {
		p.PrintJobs("SEARCH RESULTS", hits)
	})
}
