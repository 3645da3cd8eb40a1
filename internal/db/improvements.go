package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/marcusft/resume-matcher/internal/types"
)

const improvementColumns = `id, resume_id, job_id, original_score, new_score,
	updated_resume, resume_preview, details, commentary, improvements,
	original_resume_markdown, updated_resume_markdown, job_description,
	job_keywords, skill_comparison, created_at, updated_at`

// GetImprovement retrieves the cached analysis artifact for a (resume, job)
// pair. Returns (nil, nil) if no artifact exists for the pair.
func (db *DB) GetImprovement(ctx context.Context, resumeID, jobID string) (*types.Improvement, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+improvementColumns+` FROM improvements WHERE resume_id = $1 AND job_id = $2`,
		resumeID, jobID,
	)
	imp, err := scanImprovement(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get improvement: %w", err)
	}
	return imp, nil
}

// GetImprovementByID retrieves an artifact by its row ID.
// Returns (nil, nil) if not found.
func (db *DB) GetImprovementByID(ctx context.Context, id uuid.UUID) (*types.Improvement, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+improvementColumns+` FROM improvements WHERE id = $1`,
		id,
	)
	imp, err := scanImprovement(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get improvement: %w", err)
	}
	return imp, nil
}

// UpsertImprovement stores an analysis artifact for a (resume, job) pair.
// If a row already exists for the pair the full payload is replaced and
// updated_at advances while created_at is preserved. The passed Improvement
// has its ID and timestamps populated from the stored row.
func (db *DB) UpsertImprovement(ctx context.Context, imp *types.Improvement) error {
	previewJSON, err := json.Marshal(imp.ResumePreview)
	if err != nil {
		return fmt.Errorf("failed to marshal resume preview: %w", err)
	}
	suggestions := imp.Improvements
	if suggestions == nil {
		suggestions = []types.Suggestion{}
	}
	suggestionsJSON, err := json.Marshal(suggestions)
	if err != nil {
		return fmt.Errorf("failed to marshal improvements: %w", err)
	}
	comparison := imp.SkillComparison
	if comparison == nil {
		comparison = []types.SkillMention{}
	}
	comparisonJSON, err := json.Marshal(comparison)
	if err != nil {
		return fmt.Errorf("failed to marshal skill comparison: %w", err)
	}

	err = db.pool.QueryRow(ctx,
		`INSERT INTO improvements (resume_id, job_id, original_score, new_score,
			updated_resume, resume_preview, details, commentary, improvements,
			original_resume_markdown, updated_resume_markdown, job_description,
			job_keywords, skill_comparison)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		 ON CONFLICT (resume_id, job_id) DO UPDATE SET
			original_score = $3, new_score = $4, updated_resume = $5,
			resume_preview = $6, details = $7, commentary = $8, improvements = $9,
			original_resume_markdown = $10, updated_resume_markdown = $11,
			job_description = $12, job_keywords = $13, skill_comparison = $14,
			updated_at = NOW()
		 RETURNING id, created_at, updated_at`,
		imp.ResumeID, imp.JobID, imp.OriginalScore, imp.NewScore,
		imp.UpdatedResume, previewJSON, imp.Details, imp.Commentary, suggestionsJSON,
		imp.OriginalResumeMarkdown, imp.UpdatedResumeMarkdown, imp.JobDescription,
		imp.JobKeywords, comparisonJSON,
	).Scan(&imp.ID, &imp.CreatedAt, &imp.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert improvement: %w", err)
	}
	return nil
}

// ImprovementFilters holds optional filters for listing artifacts
type ImprovementFilters struct {
	ResumeID string
	JobID    string
	Limit    int
}

// ListImprovements retrieves artifacts with optional filters, newest first
func (db *DB) ListImprovements(ctx context.Context, filters ImprovementFilters) ([]types.Improvement, error) {
	if filters.Limit <= 0 {
		filters.Limit = 50
	}

	query := `SELECT ` + improvementColumns + ` FROM improvements WHERE 1=1`
	args := []any{}
	argNum := 1

	if filters.ResumeID != "" {
		query += fmt.Sprintf(" AND resume_id = $%d", argNum)
		args = append(args, filters.ResumeID)
		argNum++
	}
	if filters.JobID != "" {
		query += fmt.Sprintf(" AND job_id = $%d", argNum)
		args = append(args, filters.JobID)
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY updated_at DESC LIMIT $%d", argNum)
	args = append(args, filters.Limit)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list improvements: %w", err)
	}
	defer rows.Close()

	var improvements []types.Improvement
	for rows.Next() {
		imp, err := scanImprovement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan improvement: %w", err)
		}
		improvements = append(improvements, *imp)
	}
	return improvements, nil
}

// scanImprovement reads one improvements row, decoding the JSONB columns
func scanImprovement(row pgx.Row) (*types.Improvement, error) {
	var (
		imp             types.Improvement
		previewJSON     []byte
		suggestionsJSON []byte
		comparisonJSON  []byte
	)
	err := row.Scan(
		&imp.ID, &imp.ResumeID, &imp.JobID, &imp.OriginalScore, &imp.NewScore,
		&imp.UpdatedResume, &previewJSON, &imp.Details, &imp.Commentary, &suggestionsJSON,
		&imp.OriginalResumeMarkdown, &imp.UpdatedResumeMarkdown, &imp.JobDescription,
		&imp.JobKeywords, &comparisonJSON, &imp.CreatedAt, &imp.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(previewJSON) > 0 {
		if err := json.Unmarshal(previewJSON, &imp.ResumePreview); err != nil {
			return nil, fmt.Errorf("failed to unmarshal resume preview: %w", err)
		}
	}
	if err := json.Unmarshal(suggestionsJSON, &imp.Improvements); err != nil {
		return nil, fmt.Errorf("failed to unmarshal improvements: %w", err)
	}
	if err := json.Unmarshal(comparisonJSON, &imp.SkillComparison); err != nil {
		return nil, fmt.Errorf("failed to unmarshal skill comparison: %w", err)
	}
	return &imp, nil
}
