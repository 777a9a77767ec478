package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/career-coach/internal/types"
)

// ListJobs returns jobs matching filter, newest first.
func (db *DB) ListJobs(ctx context.Context, filter JobFilter) ([]types.JobRecord, error) {
	var (
		where []string
		args  []any
	)
	if filter.Contains != "" {
		args = append(args, likePattern(filter.Contains))
		n := len(args)
		where = append(where, fmt.Sprintf(
			`(LOWER(title) LIKE $%[1]d OR LOWER(company) LIKE $%[1]d OR LOWER(description) LIKE $%[1]d
			  OR LOWER(array_to_string(tags, ' ')) LIKE $%[1]d)`, n))
	}
	if len(filter.AnyTokens) > 0 {
		args = append(args, likePatterns(filter.AnyTokens), filter.AnyTokens)
		n := len(args)
		where = append(where, fmt.Sprintf(
			`(LOWER(title || ' ' || company || ' ' || location || ' ' || description) LIKE ANY($%d)
			  OR tags && $%d::text[])`, n-1, n))
	}

	query := `SELECT id, title, company, location, description, url, tags, posted_at FROM jobs`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY posted_at DESC, id"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	jobs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (types.JobRecord, error) {
		var j types.JobRecord
		err := row.Scan(&j.ID, &j.Title, &j.Company, &j.Location, &j.Description, &j.URL, &j.Tags, &j.PostedAt)
		return j, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan jobs: %w", err)
	}
	return jobs, nil
}

// UpsertJob inserts a job or updates the existing row with the same URL.
// It reports whether a new row was inserted.
func (db *DB) UpsertJob(ctx context.Context, job types.JobRecord) (bool, error) {
	tags := job.Tags
	if tags == nil {
		tags = []string{}
	}
	postedAt := job.PostedAt
	if postedAt.IsZero() {
		postedAt = time.Now()
	}
	id := job.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	var inserted bool
	err := db.pool.QueryRow(ctx,
		`INSERT INTO jobs (id, title, company, location, description, url, tags, posted_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (url) DO UPDATE SET
		     title = EXCLUDED.title, company = EXCLUDED.company, location = EXCLUDED.location,
		     description = EXCLUDED.description, tags = EXCLUDED.tags, posted_at = EXCLUDED.posted_at,
		     updated_at = NOW()
		 RETURNING (xmax = 0)`,
		id, job.Title, job.Company, job.Location, job.Description, job.URL, tags, postedAt,
	).Scan(&inserted)
	if err != nil {
		return false, fmt.Errorf("failed to upsert job %s: %w", job.URL, err)
	}
	return inserted, nil
}

// DeleteAllJobs removes every job and returns how many were deleted.
func (db *DB) DeleteAllJobs(ctx context.Context) (int64, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM jobs`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete jobs: %w", err)
	}
	return tag.RowsAffected(), nil
}

// CountJobs returns the number of stored jobs.
func (db *DB) CountJobs(ctx context.Context) (int, error) {
	var n int
	if err := db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count jobs: %w", err)
	}
	return n, nil
}
