package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/marcusft/resume-matcher/internal/types"
)

// ProcessedJob is the structured form of a job description plus its keywords
type ProcessedJob struct {
	JobID       uuid.UUID            `json:"job_id"`
	Structured  *types.StructuredJob `json:"structured"`
	Keywords    []string             `json:"keywords"`
	ProcessedAt time.Time            `json:"processed_at"`
}

// CreateJob stores a raw job description and returns its ID.
// sourceURL is empty for pasted text.
func (db *DB) CreateJob(ctx context.Context, content, sourceURL string) (uuid.UUID, error) {
	var src *string
	if sourceURL != "" {
		src = &sourceURL
	}
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO jobs (content, source_url) VALUES ($1, $2) RETURNING id`,
		content, src,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create job: %w", err)
	}
	return id, nil
}

// GetJob retrieves a raw job description by ID. Returns (nil, nil) if not found.
func (db *DB) GetJob(ctx context.Context, id uuid.UUID) (*Job, error) {
	var j Job
	err := db.pool.QueryRow(ctx,
		`SELECT id, content, source_url, created_at FROM jobs WHERE id = $1`,
		id,
	).Scan(&j.ID, &j.Content, &j.SourceURL, &j.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return &j, nil
}

// SaveProcessedJob stores the structured extraction for a job description,
// replacing any previous extraction.
func (db *DB) SaveProcessedJob(ctx context.Context, jobID uuid.UUID, structured *types.StructuredJob, keywords []string) error {
	structuredJSON, err := json.Marshal(structured)
	if err != nil {
		return fmt.Errorf("failed to marshal structured job: %w", err)
	}
	keywordsJSON, err := json.Marshal(keywordSlice(keywords))
	if err != nil {
		return fmt.Errorf("failed to marshal job keywords: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO processed_jobs (job_id, structured, keywords)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (job_id) DO UPDATE SET structured = $2, keywords = $3, processed_at = NOW()`,
		jobID, structuredJSON, keywordsJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to save processed job: %w", err)
	}
	return nil
}

// GetProcessedJob retrieves the structured form of a job description.
// Returns (nil, nil) if the job has not been processed.
func (db *DB) GetProcessedJob(ctx context.Context, jobID uuid.UUID) (*ProcessedJob, error) {
	var (
		p              ProcessedJob
		structuredJSON []byte
		keywordsJSON   []byte
	)
	err := db.pool.QueryRow(ctx,
		`SELECT job_id, structured, keywords, processed_at
		 FROM processed_jobs WHERE job_id = $1`,
		jobID,
	).Scan(&p.JobID, &structuredJSON, &keywordsJSON, &p.ProcessedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get processed job: %w", err)
	}

	if err := json.Unmarshal(structuredJSON, &p.Structured); err != nil {
		return nil, fmt.Errorf("failed to unmarshal structured job: %w", err)
	}
	if err := json.Unmarshal(keywordsJSON, &p.Keywords); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job keywords: %w", err)
	}
	return &p, nil
}

// ListJobs retrieves recent job descriptions, newest first
func (db *DB) ListJobs(ctx context.Context, limit int) ([]Job, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.pool.Query(ctx,
		`SELECT id, content, source_url, created_at
		 FROM jobs ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		var j Job
		if err := rows.Scan(&j.ID, &j.Content, &j.SourceURL, &j.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}
