package main

import (
	"fmt"
	"strings"

	"github.com/jonathan/career-coach/internal/ats"
	"github.com/jonathan/career-coach/internal/fetch"
	"github.com/jonathan/career-coach/internal/observability"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type scoreResumeOptions struct {
	resume string
	jd     string
	jdURL  string
	model  string
	out    string
}

func newScoreResumeCmd(root *rootOptions) *cobra.Command {
	opts := &scoreResumeOptions{}
	cmd := &cobra.Command{
		Use:   "score-resume",
		Short: "Score a resume, optionally against a job description",
		Long: "Computes the ATS-style score of a plain-text resume. With --jd or --jd-url, keyword " +
			"coverage and missing keywords are measured against the job description.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScoreResume(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.resume, "resume", "r", "", "Path to plain-text resume (required)")
	cmd.Flags().StringVarP(&opts.jd, "jd", "j", "", "Path to plain-text job description")
	cmd.Flags().StringVar(&opts.jdURL, "jd-url", "", "URL of a job posting page to use as the job description")
	cmd.Flags().StringVarP(&opts.model, "model", "m", "", "Path to linear model JSON (overrides scoring.model-file)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Path to output file (default stdout)")
	if err := cmd.MarkFlagRequired("resume"); err != nil {
		panic(fmt.Sprintf("failed to mark resume flag as required: %v", err))
	}
	cmd.MarkFlagsMutuallyExclusive("jd", "jd-url")
	return cmd
}

func runScoreResume(cmd *cobra.Command, root *rootOptions, opts *scoreResumeOptions) error {
	cfg, log, err := root.load("stderr")
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	resume, err := readText(opts.resume, "resume")
	if err != nil {
		return err
	}
	if strings.TrimSpace(resume) == "" {
		return fmt.Errorf("resume file %s is empty", opts.resume)
	}

	var jd string
	switch {
	case opts.jd != "":
		if jd, err = readText(opts.jd, "job description"); err != nil {
			return err
		}
	case opts.jdURL != "":
		if jd, err = fetch.NewClient(fetch.Options{}, log).JobDescription(cmd.Context(), opts.jdURL); err != nil {
			return err
		}
		log.Info("fetched job description",
			zap.String("url", opts.jdURL),
			zap.String("platform", string(fetch.DetectPlatform(opts.jdURL))),
			zap.Int("chars", len(jd)),
		)
	}

	modelFile := cfg.Scoring.ModelFile
	if opts.model != "" {
		modelFile = opts.model
	}
	scorer := ats.NewScorer(ats.LoadLinearModel(modelFile, log))

	result := scorer.Score(resume, jd)
	return root.emit(cmd, result, opts.out, func(p *observability.Printer) {
		p.PrintScore(result)
	})
}
