// Package types provides type definitions for structured data used throughout the resume-matcher system.
package types

import (
	"time"

	"github.com/google/uuid"
)

// Suggestion is a single discrete improvement recommendation produced by the
// analysis LLM, referencing a line of the original resume when available.
type Suggestion struct {
	Suggestion string `json:"suggestion"`
	LineNumber string `json:"lineNumber,omitempty"`
}

// SkillMention records how often a job keyword appears in the resume versus
// the job description.
type SkillMention struct {
	Skill          string `json:"skill"`
	ResumeMentions int    `json:"resume_mentions"`
	JobMentions    int    `json:"job_mentions"`
}

// AnalysisResult is the final payload of one full analysis pipeline run for a
// (resume, job) pair. It contains everything the improvements table persists
// besides identity and timestamps.
type AnalysisResult struct {
	OriginalScore          float64        `json:"original_score"`
	NewScore               float64        `json:"new_score"`
	UpdatedResume          string         `json:"updated_resume"` // HTML
	ResumePreview          map[string]any `json:"resume_preview,omitempty"`
	Details                string         `json:"details"`
	Commentary             string         `json:"commentary"`
	Improvements           []Suggestion   `json:"improvements"`
	OriginalResumeMarkdown string         `json:"original_resume_markdown"`
	UpdatedResumeMarkdown  string         `json:"updated_resume_markdown"`
	JobDescription         string         `json:"job_description"`
	JobKeywords            string         `json:"job_keywords"`
	SkillComparison        []SkillMention `json:"skill_comparison"`
}

// Improvement is the persisted analysis artifact for one (resume, job) pair.
// At most one row exists per pair; forced re-analysis replaces the payload in
// place and advances UpdatedAt while CreatedAt is preserved.
type Improvement struct {
	ID       uuid.UUID `json:"id"`
	ResumeID string    `json:"resume_id"`
	JobID    string    `json:"job_id"`

	AnalysisResult

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
