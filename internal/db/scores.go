package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SaveResumeScore appends a score to the user's history and returns its ID.
func (db *DB) SaveResumeScore(ctx context.Context, rec ScoreRecord) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO resume_scores (user_id, score, keyword_coverage, bullets, metrics, suggestions, missing_keywords)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		rec.UserID, rec.Score, rec.KeywordCoverage, rec.Bullets, rec.Metrics,
		nonNil(rec.Suggestions), nonNil(rec.MissingKeywords),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save resume score: %w", err)
	}
	return id, nil
}

// ListResumeScores returns a user's most recent scores, newest first.
func (db *DB) ListResumeScores(ctx context.Context, userID uuid.UUID, limit int) ([]ScoreRecord, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, score, keyword_coverage, bullets, metrics, suggestions, missing_keywords, created_at
		 FROM resume_scores WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resume scores: %w", err)
	}
	defer rows.Close()

	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (ScoreRecord, error) {
		var r ScoreRecord
		err := row.Scan(&r.ID, &r.UserID, &r.Score, &r.KeywordCoverage, &r.Bullets, &r.Metrics,
			&r.Suggestions, &r.MissingKeywords, &r.CreatedAt)
		return r, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan resume scores: %w", err)
	}
	return records, nil
}
