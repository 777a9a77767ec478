package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/career-coach/internal/types"

	_ "modernc.org/sqlite"
)

// sqliteTimeLayout is fixed-width so that stored timestamps sort lexically.
const sqliteTimeLayout = "2006-01-02T15:04:05Z"

// SQLiteJobStore is a file-backed job store used by the CLI when no PostgreSQL
// database is configured.
type SQLiteJobStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the SQLite job database at path.
func OpenSQLite(ctx context.Context, path string) (*SQLiteJobStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("sqlite: mkdir %s: %w", dir, err)
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open db: %w", err)
	}
	conn.SetMaxOpenConns(1) // SQLite: single writer

	s := &SQLiteJobStore{db: conn}
	if err := s.initSchema(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: init schema: %w", err)
	}
	return s, nil
}

// Close closes the database.
func (s *SQLiteJobStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteJobStore) initSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS jobs (
		id          TEXT PRIMARY KEY,
		title       TEXT NOT NULL,
		company     TEXT NOT NULL,
		location    TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		url         TEXT NOT NULL UNIQUE,
		tags        TEXT NOT NULL DEFAULT '[]',
		posted_at   TEXT NOT NULL,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS jobs_posted_at_idx ON jobs (posted_at DESC);`)
	return err
}

// ListJobs returns jobs matching filter, newest first.
func (s *SQLiteJobStore) ListJobs(ctx context.Context, filter JobFilter) ([]types.JobRecord, error) {
	var (
		where []string
		args  []any
	)
	if filter.Contains != "" {
		p := likePattern(filter.Contains)
		where = append(where, `(title LIKE ? ESCAPE '\' OR company LIKE ? ESCAPE '\' OR description LIKE ? ESCAPE '\' OR tags LIKE ? ESCAPE '\')`)
		args = append(args, p, p, p, p)
	}
	if len(filter.AnyTokens) > 0 {
		var ors []string
		for _, p := range likePatterns(filter.AnyTokens) {
			ors = append(ors, `(title || ' ' || company || ' ' || location || ' ' || description) LIKE ? ESCAPE '\'`)
			args = append(args, p)
		}
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(filter.AnyTokens)), ",")
		ors = append(ors, `EXISTS (SELECT 1 FROM json_each(jobs.tags) t WHERE LOWER(t.value) IN (`+placeholders+`))`)
		for _, tok := range filter.AnyTokens {
			args = append(args, tok)
		}
		where = append(where, "("+strings.Join(ors, " OR ")+")")
	}

	query := `SELECT id, title, company, location, description, url, tags, posted_at FROM jobs`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY posted_at DESC, id"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []types.JobRecord
	for rows.Next() {
		var (
			j        types.JobRecord
			id       string
			tags     StringArray
			postedAt string
		)
		if err := rows.Scan(&id, &j.Title, &j.Company, &j.Location, &j.Description, &j.URL, &tags, &postedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scan job: %w", err)
		}
		if j.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("sqlite: bad job id %q: %w", id, err)
		}
		j.Tags = []string(tags)
		if j.PostedAt, err = time.Parse(sqliteTimeLayout, postedAt); err != nil {
			return nil, fmt.Errorf("sqlite: bad posted_at %q: %w", postedAt, err)
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

// UpsertJob inserts a job or updates the existing row with the same URL.
// It reports whether a new row was inserted.
func (s *SQLiteJobStore) UpsertJob(ctx context.Context, job types.JobRecord) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("sqlite: begin: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(sqliteTimeLayout)
	postedAt := job.PostedAt
	if postedAt.IsZero() {
		postedAt = time.Now()
	}
	posted := postedAt.UTC().Format(sqliteTimeLayout)
	tags := StringArray(job.Tags)

	var existing string
	err = tx.QueryRowContext(ctx, `SELECT id FROM jobs WHERE url = ?`, job.URL).Scan(&existing)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		id := job.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO jobs (id, title, company, location, description, url, tags, posted_at, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id.String(), job.Title, job.Company, job.Location, job.Description, job.URL, tags, posted, now, now,
		)
		if err != nil {
			return false, fmt.Errorf("sqlite: insert job %s: %w", job.URL, err)
		}
		return true, tx.Commit()
	case err != nil:
		return false, fmt.Errorf("sqlite: lookup job %s: %w", job.URL, err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE jobs SET title = ?, company = ?, location = ?, description = ?, tags = ?, posted_at = ?, updated_at = ?
		 WHERE id = ?`,
		job.Title, job.Company, job.Location, job.Description, tags, posted, now, existing,
	)
	if err != nil {
		return false, fmt.Errorf("sqlite: update job %s: %w", job.URL, err)
	}
	return false, tx.Commit()
}

// DeleteAllJobs removes every job and returns how many were deleted.
func (s *SQLiteJobStore) DeleteAllJobs(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM jobs`)
	if err != nil {
		return 0, fmt.Errorf("sqlite: delete jobs: %w", err)
	}
	return res.RowsAffected()
}

// CountJobs returns the number of stored jobs.
func (s *SQLiteJobStore) CountJobs(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("sqlite: count jobs: %w", err)
	}
	return n, nil
}
