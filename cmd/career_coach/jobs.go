package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/career-coach/internal/db"
	"github.com/jonathan/career-coach/internal/jobimport"
	"github.com/jonathan/career-coach/internal/ranking"
	"github.com/jonathan/career-coach/internal/types"
	"github.com/spf13/cobra"
)

var errJobSource = errors.New("exactly one of --jobs or --sqlite is required")

// jobSource is where the offline ranking commands read jobs from: a job feed file
// or a SQLite job store.
type jobSource struct {
	file   string
	sqlite string
}

func (s *jobSource) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.file, "jobs", "", "Path to a job feed JSON file")
	cmd.Flags().StringVar(&s.sqlite, "sqlite", "", "Path to a SQLite job store")
}

func (s *jobSource) validate() error {
	if (s.file == "") == (s.sqlite == "") {
		return errJobSource
	}
	return nil
}

// load reads jobs honouring filter. Feed files are filtered in memory the same way
// the stores filter in SQL.
func (s *jobSource) load(ctx context.Context, filter db.JobFilter) ([]types.JobRecord, error) {
	if s.sqlite != "" {
		store, err := db.OpenSQLite(ctx, s.sqlite)
		if err != nil {
			return nil, err
		}
		defer func() { _ = store.Close() }()
		return store.ListJobs(ctx, filter)
	}

	entries, err := jobimport.ReadFeed(s.file)
	if err != nil {
		return nil, fmt.Errorf("failed to load jobs: %w", err)
	}
	jobs := jobimport.Records(entries, time.Now())
	if len(filter.AnyTokens) > 0 {
		return ranking.FilterCandidates(strings.Join(filter.AnyTokens, " "), jobs, filter.Limit), nil
	}
	if filter.Limit > 0 && len(jobs) > filter.Limit {
		jobs = jobs[:filter.Limit]
	}
	return jobs, nil
}
