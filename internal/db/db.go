// Package db provides PostgreSQL access for resumes, job descriptions,
// and cached analysis artifacts.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// schema holds the DDL applied by EnsureSchema. Statements are idempotent
// so the migrate command can be re-run safely.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL DEFAULT '',
		password_set BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS resumes (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		content TEXT NOT NULL,
		content_type TEXT NOT NULL DEFAULT 'text/markdown',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS processed_resumes (
		resume_id UUID PRIMARY KEY REFERENCES resumes(id) ON DELETE CASCADE,
		structured JSONB NOT NULL,
		keywords JSONB NOT NULL DEFAULT '[]',
		processed_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS jobs (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		content TEXT NOT NULL,
		source_url TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS processed_jobs (
		job_id UUID PRIMARY KEY REFERENCES jobs(id) ON DELETE CASCADE,
		structured JSONB NOT NULL,
		keywords JSONB NOT NULL DEFAULT '[]',
		processed_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS improvements (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		resume_id UUID NOT NULL,
		job_id UUID NOT NULL,
		original_score DOUBLE PRECISION NOT NULL,
		new_score DOUBLE PRECISION NOT NULL,
		updated_resume TEXT NOT NULL,
		resume_preview JSONB,
		details TEXT,
		commentary TEXT,
		improvements JSONB NOT NULL DEFAULT '[]',
		original_resume_markdown TEXT NOT NULL,
		updated_resume_markdown TEXT NOT NULL,
		job_description TEXT NOT NULL,
		job_keywords TEXT NOT NULL DEFAULT '',
		skill_comparison JSONB NOT NULL DEFAULT '[]',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (resume_id, job_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_improvements_resume_id ON improvements (resume_id)`,
	`CREATE INDEX IF NOT EXISTS idx_improvements_job_id ON improvements (job_id)`,
	`CREATE INDEX IF NOT EXISTS idx_improvements_created_at ON improvements (created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_improvements_updated_at ON improvements (updated_at)`,
}

// EnsureSchema creates the tables and indexes if they do not exist
func (db *DB) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
