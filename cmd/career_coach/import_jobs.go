package main

import (
	"fmt"

	"github.com/jonathan/career-coach/internal/db"
	"github.com/jonathan/career-coach/internal/fetch"
	"github.com/jonathan/career-coach/internal/jobimport"
	"github.com/jonathan/career-coach/internal/observability"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type importJobsOptions struct {
	file   string
	url    string
	sqlite string
	days   int
	dry    bool
	reset  bool
}

func newImportJobsCmd(root *rootOptions) *cobra.Command {
	opts := &importJobsOptions{}
	cmd := &cobra.Command{
		Use:   "import-jobs",
		Short: "Import a job feed into the job store",
		Long: "Validates a job feed JSON document, cleans HTML, extracts tags, drops invalid, duplicate " +
			"and stale postings, and upserts the rest by URL. Without --sqlite the configured " +
			"PostgreSQL database is used.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runImportJobs(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Path to job feed JSON file")
	cmd.Flags().StringVar(&opts.url, "url", "", "URL of a job feed JSON document")
	cmd.Flags().StringVar(&opts.sqlite, "sqlite", "", "Path to a SQLite job store")
	cmd.Flags().IntVar(&opts.days, "days", jobimport.DefaultDays, "Drop postings older than this many days")
	cmd.Flags().BoolVar(&opts.dry, "dry", false, "Report what would be imported without writing")
	cmd.Flags().BoolVar(&opts.reset, "reset", false, "Delete all stored jobs before importing")
	cmd.MarkFlagsOneRequired("file", "url")
	cmd.MarkFlagsMutuallyExclusive("file", "url")
	return cmd
}

func (o *importJobsOptions) readFeed(cmd *cobra.Command, log *zap.Logger) ([]jobimport.FeedEntry, error) {
	if o.file != "" {
		return jobimport.ReadFeed(o.file)
	}
	data, err := fetch.NewClient(fetch.Options{}, log).Get(cmd.Context(), o.url)
	if err != nil {
		return nil, err
	}
	entries, err := jobimport.ParseFeed(data)
	if err != nil {
		return nil, fmt.Errorf("feed %s: %w", o.url, err)
	}
	return entries, nil
}

func runImportJobs(cmd *cobra.Command, root *rootOptions, opts *importJobsOptions) error {
	cfg, log, err := root.load("stderr")
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	entries, err := opts.readFeed(cmd, log)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	var store db.JobStore
	switch {
	case opts.dry:
	case opts.sqlite != "":
		s, err := db.OpenSQLite(ctx, opts.sqlite)
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()
		store = s
	default:
		if cfg.Database.URL == "" {
			return fmt.Errorf("database.url (or DATABASE_URL) is required without --sqlite")
		}
		s, err := db.Connect(ctx, cfg.Database.URL)
		if err != nil {
			return err
		}
		defer s.Close()
		store = s
	}

	result, err := jobimport.NewImporter(store, log).Import(ctx, entries, jobimport.Options{
		Days:  opts.days,
		Dry:   opts.dry,
		Reset: opts.reset,
	})
	if err != nil {
		return err
	}
	return root.emit(cmd, result, "", func(p *observability.Printer) {
		p.PrintImport(result)
	})
}
