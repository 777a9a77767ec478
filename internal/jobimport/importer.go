package jobimport

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonathan/career-coach/internal/db"
	"github.com/jonathan/career-coach/internal/logger"
	"github.com/jonathan/career-coach/internal/types"
	"go.uber.org/zap"
)

// ErrNoStore is returned when a non-dry import has no store to write to.
var ErrNoStore = errors.New("job store is required unless running dry")

// Options controls a single import run.
type Options struct {
	// Days drops postings older than this many days. Zero or less means DefaultDays.
	Days int
	// Dry prepares and counts postings without writing anything.
	Dry bool
	// Reset deletes every stored job before upserting.
	Reset bool
}

// Result summarizes an import run.
type Result struct {
	Read       int   `json:"read"`
	Accepted   int   `json:"accepted"`
	Invalid    int   `json:"skipped_invalid"`
	Duplicates int   `json:"skipped_duplicate"`
	Stale      int   `json:"skipped_stale"`
	Inserted   int   `json:"inserted"`
	Updated    int   `json:"updated"`
	Deleted    int64 `json:"deleted"`
	Dry        bool  `json:"dry"`
}

// Importer writes feed entries into a job store.
type Importer struct {
	store db.JobStore
	log   *zap.Logger
	now   func() time.Time
}

// NewImporter creates an importer. store may be nil for dry runs.
func NewImporter(store db.JobStore, log *zap.Logger) *Importer {
	return &Importer{store: store, log: logger.OrNop(log), now: time.Now}
}

// Prepare cleans, dedupes and filters entries by recency. Entries without a title or
// URL are dropped. The first occurrence of a company|title|location|url key wins.
func Prepare(entries []FeedEntry, days int, now time.Time) ([]types.JobRecord, Result) {
	if days <= 0 {
		days = DefaultDays
	}
	cutoff := now.Add(-time.Duration(days) * 24 * time.Hour)

	res := Result{Read: len(entries)}
	seen := make(map[string]struct{}, len(entries))
	jobs := make([]types.JobRecord, 0, len(entries))

	for _, e := range entries {
		job := toRecord(e, now)
		if job.Title == "" || job.URL == "" {
			res.Invalid++
			continue
		}
		key := uniqueKey(job)
		if _, ok := seen[key]; ok {
			res.Duplicates++
			continue
		}
		if job.PostedAt.Before(cutoff) {
			res.Stale++
			continue
		}
		seen[key] = struct{}{}
		jobs = append(jobs, job)
	}
	res.Accepted = len(jobs)
	return jobs, res
}

// Import prepares entries and upserts them by URL.
func (im *Importer) Import(ctx context.Context, entries []FeedEntry, opts Options) (Result, error) {
	jobs, res := Prepare(entries, opts.Days, im.now())
	res.Dry = opts.Dry

	im.log.Info("prepared job feed",
		zap.Int("read", res.Read),
		zap.Int("accepted", res.Accepted),
		zap.Int("invalid", res.Invalid),
		zap.Int("duplicates", res.Duplicates),
		zap.Int("stale", res.Stale),
	)

	if opts.Dry {
		im.log.Info("dry run, skipping writes", zap.Int("would_upsert", len(jobs)))
		return res, nil
	}
	if im.store == nil {
		return res, ErrNoStore
	}

	if opts.Reset {
		deleted, err := im.store.DeleteAllJobs(ctx)
		if err != nil {
			return res, fmt.Errorf("failed to clear jobs: %w", err)
		}
		res.Deleted = deleted
		im.log.Info("cleared job store", zap.Int64("deleted", deleted))
	}

	for _, job := range jobs {
		inserted, err := im.store.UpsertJob(ctx, job)
		if err != nil {
			return res, fmt.Errorf("failed to upsert job %s: %w", job.URL, err)
		}
		if inserted {
			res.Inserted++
		} else {
			res.Updated++
		}
	}

	im.log.Info("imported jobs", zap.Int("inserted", res.Inserted), zap.Int("updated", res.Updated))
	return res, nil
}
