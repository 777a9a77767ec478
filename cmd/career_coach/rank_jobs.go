package main

import (
	"fmt"

	"github.com/jonathan/career-coach/internal/db"
	"github.com/jonathan/career-coach/internal/observability"
	"github.com/jonathan/career-coach/internal/ranking"
	"github.com/jonathan/career-coach/internal/skills"
	"github.com/spf13/cobra"
)

type rankJobsOptions struct {
	source     jobSource
	skills     []string
	tagWeights string
	limit      int
	out        string
}

func newRankJobsCmd(root *rootOptions) *cobra.Command {
	opts := &rankJobsOptions{}
	cmd := &cobra.Command{
		Use:   "rank-jobs",
		Short: "Rank jobs against a skill list",
		Long: "Scores each job's tags against the given skills by cosine similarity and prints the " +
			"jobs in descending order of score.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRankJobs(cmd, root, opts)
		},
	}

	opts.source.addFlags(cmd)
	cmd.Flags().StringSliceVarP(&opts.skills, "skills", "s", nil, "Comma-separated skills to match (required)")
	cmd.Flags().StringVar(&opts.tagWeights, "tag-weights", "", "Path to tag weights JSON (overrides scoring.tag-weights-file)")
	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 0, "Maximum number of jobs (default recommendations.default-limit)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Path to output file (default stdout)")
	if err := cmd.MarkFlagRequired("skills"); err != nil {
		panic(fmt.Sprintf("failed to mark skills flag as required: %v", err))
	}
	return cmd
}

func runRankJobs(cmd *cobra.Command, root *rootOptions, opts *rankJobsOptions) error {
	if err := opts.source.validate(); err != nil {
		return err
	}
	cfg, log, err := root.load("stderr")
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	jobs, err := opts.source.load(cmd.Context(), db.JobFilter{Limit: cfg.Recommendations.CandidateLimit})
	if err != nil {
		return err
	}

	weightsFile := cfg.Scoring.TagWeightsFile
	if opts.tagWeights != "" {
		weightsFile = opts.tagWeights
	}
	matcher := ranking.NewMatcher(skills.LoadTagWeights(weightsFile, log))

	ranked := matcher.RankJobs(jobs, opts.skills, cfg.Recommendations.Clamp(opts.limit))
	return root.emit(cmd, ranked, opts.out, func(p *observability.Printer) {
		p.PrintJobs("RANKED JOBS", ranked)
	})
}
