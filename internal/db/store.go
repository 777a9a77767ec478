package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/jonathan/career-coach/internal/types"
)

// JobStore reads and writes job postings. Both the PostgreSQL and SQLite stores
// implement it.
type JobStore interface {
	ListJobs(ctx context.Context, filter JobFilter) ([]types.JobRecord, error)
	UpsertJob(ctx context.Context, job types.JobRecord) (bool, error)
	DeleteAllJobs(ctx context.Context) (int64, error)
	CountJobs(ctx context.Context) (int, error)
}

// UserStore holds accounts and their career profiles.
type UserStore interface {
	CreateUser(ctx context.Context, name, email, passwordHash string) (uuid.UUID, error)
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	GetProfile(ctx context.Context, userID uuid.UUID) (*types.Profile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, p types.Profile) error
}

// ScoreStore keeps resume score history.
type ScoreStore interface {
	SaveResumeScore(ctx context.Context, rec ScoreRecord) (uuid.UUID, error)
	ListResumeScores(ctx context.Context, userID uuid.UUID, limit int) ([]ScoreRecord, error)
}

var (
	_ JobStore   = (*DB)(nil)
	_ UserStore  = (*DB)(nil)
	_ ScoreStore = (*DB)(nil)
	_ JobStore   = (*SQLiteJobStore)(nil)
)
