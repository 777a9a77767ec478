package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonathan/career-coach/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestSQLite(t *testing.T) *SQLiteJobStore {
	t.Helper()
	s, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "nested", "jobs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func seedJobs(t *testing.T, s JobStore) {
	t.Helper()
	base := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	jobs := []types.JobRecord{
		{Title: "Go Engineer", Company: "Globex", Location: "Remote", Description: "Build APIs", URL: "https://jobs/1", Tags: []string{"go", "kubernetes"}, PostedAt: base},
		{Title: "Frontend Developer", Company: "Initech", Description: "JavaScript and React 100%", URL: "https://jobs/2", Tags: []string{"react", "javascript"}, PostedAt: base.Add(48 * time.Hour)},
		{Title: "Accountant", Company: "Acme", Description: "Ledgers", URL: "https://jobs/3", Tags: []string{"accounting"}, PostedAt: base.Add(24 * time.Hour)},
	}
	for _, j := range jobs {
		inserted, err := s.UpsertJob(context.Background(), j)
		require.NoError(t, err)
		require.True(t, inserted)
	}
}

func titles(jobs []types.JobRecord) []string {
	out := make([]string, len(jobs))
	for i, j := range jobs {
		out[i] = j.Title
	}
	return out
}

func TestSQLite_ListJobs(t *testing.T) {
	s := openTestSQLite(t)
	seedJobs(t, s)
	ctx := context.Background()

	all, err := s.ListJobs(ctx, JobFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Frontend Developer", "Accountant", "Go Engineer"}, titles(all), "newest first")
	assert.Equal(t, []string{"go", "kubernetes"}, all[2].Tags)
	assert.Equal(t, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), all[2].PostedAt)

	limited, err := s.ListJobs(ctx, JobFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestSQLite_ListJobs_Contains(t *testing.T) {
	s := openTestSQLite(t)
	seedJobs(t, s)
	ctx := context.Background()

	got, err := s.ListJobs(ctx, JobFilter{Contains: "GLOBEX"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Go Engineer"}, titles(got))

	got, err = s.ListJobs(ctx, JobFilter{Contains: "accounting"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Accountant"}, titles(got), "tags are searched")

	got, err = s.ListJobs(ctx, JobFilter{Contains: "100%"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Frontend Developer"}, titles(got), "wildcards are escaped")
}

func TestSQLite_ListJobs_AnyTokens(t *testing.T) {
	s := openTestSQLite(t)
	seedJobs(t, s)
	ctx := context.Background()

	got, err := s.ListJobs(ctx, SearchFilter("kubernetes ledgers", 0))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Go Engineer", "Accountant"}, titles(got))

	got, err = s.ListJobs(ctx, SearchFilter("java", 0))
	require.NoError(t, err)
	assert.Equal(t, []string{"Frontend Developer"}, titles(got), "substring match")

	got, err = s.ListJobs(ctx, SearchFilter("nothing-here", 0))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSQLite_UpsertJob_UpdatesByURL(t *testing.T) {
	s := openTestSQLite(t)
	seedJobs(t, s)
	ctx := context.Background()

	inserted, err := s.UpsertJob(ctx, types.JobRecord{Title: "Senior Go Engineer", Company: "Globex", URL: "https://jobs/1", Tags: []string{"go"}})
	require.NoError(t, err)
	assert.False(t, inserted)

	n, err := s.CountJobs(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	got, err := s.ListJobs(ctx, JobFilter{Contains: "senior"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"go"}, got[0].Tags)
}

func TestSQLite_DeleteAllJobs(t *testing.T) {
	s := openTestSQLite(t)
	seedJobs(t, s)
	ctx := context.Background()

	deleted, err := s.DeleteAllJobs(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)

	n, err := s.CountJobs(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}
