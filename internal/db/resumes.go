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

// ProcessedResume is the structured form of a resume plus its extracted keywords
type ProcessedResume struct {
	ResumeID    uuid.UUID               `json:"resume_id"`
	Structured  *types.StructuredResume `json:"structured"`
	Keywords    []string                `json:"keywords"`
	ProcessedAt time.Time               `json:"processed_at"`
}

// CreateResume stores a raw resume and returns its ID
func (db *DB) CreateResume(ctx context.Context, content, contentType string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO resumes (content, content_type) VALUES ($1, $2) RETURNING id`,
		content, contentType,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create resume: %w", err)
	}
	return id, nil
}

// GetResume retrieves a raw resume by ID. Returns (nil, nil) if not found.
func (db *DB) GetResume(ctx context.Context, id uuid.UUID) (*Resume, error) {
	var r Resume
	err := db.pool.QueryRow(ctx,
		`SELECT id, content, content_type, created_at FROM resumes WHERE id = $1`,
		id,
	).Scan(&r.ID, &r.Content, &r.ContentType, &r.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return &r, nil
}

// SaveProcessedResume stores the structured extraction for a resume,
// replacing any previous extraction.
func (db *DB) SaveProcessedResume(ctx context.Context, resumeID uuid.UUID, structured *types.StructuredResume, keywords []string) error {
	structuredJSON, err := json.Marshal(structured)
	if err != nil {
		return fmt.Errorf("failed to marshal structured resume: %w", err)
	}
	keywordsJSON, err := json.Marshal(keywordSlice(keywords))
	if err != nil {
		return fmt.Errorf("failed to marshal resume keywords: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO processed_resumes (resume_id, structured, keywords)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (resume_id) DO UPDATE SET structured = $2, keywords = $3, processed_at = NOW()`,
		resumeID, structuredJSON, keywordsJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to save processed resume: %w", err)
	}
	return nil
}

// GetProcessedResume retrieves the structured form of a resume.
// Returns (nil, nil) if the resume has not been processed.
func (db *DB) GetProcessedResume(ctx context.Context, resumeID uuid.UUID) (*ProcessedResume, error) {
	var (
		p              ProcessedResume
		structuredJSON []byte
		keywordsJSON   []byte
	)
	err := db.pool.QueryRow(ctx,
		`SELECT resume_id, structured, keywords, processed_at
		 FROM processed_resumes WHERE resume_id = $1`,
		resumeID,
	).Scan(&p.ResumeID, &structuredJSON, &keywordsJSON, &p.ProcessedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get processed resume: %w", err)
	}

	if err := json.Unmarshal(structuredJSON, &p.Structured); err != nil {
		return nil, fmt.Errorf("failed to unmarshal structured resume: %w", err)
	}
	if err := json.Unmarshal(keywordsJSON, &p.Keywords); err != nil {
		return nil, fmt.Errorf("failed to unmarshal resume keywords: %w", err)
	}
	return &p, nil
}

// UpdateResumeKeywords replaces the stored keyword list for a processed resume
func (db *DB) UpdateResumeKeywords(ctx context.Context, resumeID uuid.UUID, keywords []string) error {
	keywordsJSON, err := json.Marshal(keywordSlice(keywords))
	if err != nil {
		return fmt.Errorf("failed to marshal resume keywords: %w", err)
	}
	_, err = db.pool.Exec(ctx,
		`UPDATE processed_resumes SET keywords = $1, processed_at = NOW() WHERE resume_id = $2`,
		keywordsJSON, resumeID,
	)
	if err != nil {
		return fmt.Errorf("failed to update resume keywords: %w", err)
	}
	return nil
}

// ListResumes retrieves recent resumes, newest first
func (db *DB) ListResumes(ctx context.Context, limit int) ([]Resume, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.pool.Query(ctx,
		`SELECT id, content, content_type, created_at
		 FROM resumes ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	var resumes []Resume
	for rows.Next() {
		var r Resume
		if err := rows.Scan(&r.ID, &r.Content, &r.ContentType, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		resumes = append(resumes, r)
	}
	return resumes, nil
}

// keywordSlice normalizes a nil keyword list to an empty JSON array
func keywordSlice(keywords []string) []string {
	if keywords == nil {
		return []string{}
	}
	return keywords
}
