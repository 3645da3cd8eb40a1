package analysis

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	"golang.org/x/sync/errgroup"

	"github.com/marcusft/resume-matcher/internal/db"
	"github.com/marcusft/resume-matcher/internal/llm"
	"github.com/marcusft/resume-matcher/internal/prompts"
	"github.com/marcusft/resume-matcher/internal/scoring"
	"github.com/marcusft/resume-matcher/internal/types"
)

// SourceStore loads resumes and job descriptions with their processed forms
type SourceStore interface {
	GetResume(ctx context.Context, id uuid.UUID) (*db.Resume, error)
	GetProcessedResume(ctx context.Context, id uuid.UUID) (*db.ProcessedResume, error)
	UpdateResumeKeywords(ctx context.Context, id uuid.UUID, keywords []string) error
	GetJob(ctx context.Context, id uuid.UUID) (*db.Job, error)
	GetProcessedJob(ctx context.Context, id uuid.UUID) (*db.ProcessedJob, error)
}

// AnalysisPipeline is the production Pipeline: it scores a stored resume
// against a stored job description, rewrites the resume with the LLM, and
// assembles the full analysis payload.
type AnalysisPipeline struct {
	store       SourceStore
	llm         llm.Client
	maxAttempts int
}

// NewPipeline creates an AnalysisPipeline backed by the given store and LLM client
func NewPipeline(store SourceStore, client llm.Client) *AnalysisPipeline {
	return &AnalysisPipeline{
		store:       store,
		llm:         client,
		maxAttempts: maxImproveAttempts,
	}
}

// Run executes the full stage sequence for one (resume, job) pair.
// Progress events are delivered through the callback when non-nil; a non-nil
// callback error aborts the run immediately.
func (p *AnalysisPipeline) Run(ctx context.Context, resumeID, jobID string, progress ProgressCallback) (*types.AnalysisResult, error) {
	emit := func(event types.AnalysisEvent) error {
		if progress == nil {
			return nil
		}
		return progress(event)
	}

	if err := emit(types.StageEvent(types.StatusStarting, "Starting analysis")); err != nil {
		return nil, err
	}

	resume, resumeKeywords, err := p.loadResume(ctx, resumeID)
	if err != nil {
		return nil, err
	}
	job, jobKeywords, err := p.loadJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if err := emit(types.StageEvent(types.StatusParsing, "Parsing resume and job description")); err != nil {
		return nil, err
	}
	if err := emit(types.StageEvent(types.StatusScoring, "Scoring resume against job keywords")); err != nil {
		return nil, err
	}

	joinedJobKeywords := strings.Join(jobKeywords, ", ")

	var resumeVector, jobVector []float32
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		resumeVector, err = p.llm.Embed(gctx, resume.Content)
		return err
	})
	g.Go(func() error {
		var err error
		jobVector, err = p.llm.Embed(gctx, joinedJobKeywords)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to embed resume and job keywords: %w", err)
	}

	originalScore := scoring.CosineSimilarity(resumeVector, jobVector)
	if err := emit(types.ScoredEvent(originalScore)); err != nil {
		return nil, err
	}

	if err := emit(types.StageEvent(types.StatusImproving, "Rewriting resume")); err != nil {
		return nil, err
	}

	comparison := scoring.BuildSkillComparison(jobKeywords, resume.Content, job.Content)
	improved, newScore, err := p.improveResume(ctx, improveInput{
		jobDescription: job.Content,
		jobKeywords:    jobKeywords,
		resumeMarkdown: resume.Content,
		resumeKeywords: resumeKeywords,
		originalScore:  originalScore,
		jobVector:      jobVector,
		comparison:     comparison,
	})
	if err != nil {
		return nil, err
	}

	// Preview is cosmetic dashboard data; a failure here does not fail the run.
	preview, _ := p.generatePreview(ctx, improved)

	report, err := p.generateAnalysis(ctx, analysisInput{
		jobDescription: job.Content,
		jobKeywords:    joinedJobKeywords,
		originalResume: resume.Content,
		resumeKeywords: strings.Join(resumeKeywords, ", "),
		improvedResume: improved,
		originalScore:  originalScore,
		newScore:       newScore,
	})
	if err != nil {
		return nil, err
	}

	for i, s := range report.Improvements {
		event := types.AnalysisEvent{
			Status: types.StatusSuggestion,
			Suggestion: &types.SuggestionEvent{
				Index:     i,
				Text:      s.Suggestion,
				Reference: s.LineNumber,
			},
		}
		if err := emit(event); err != nil {
			return nil, err
		}
	}

	html, err := renderMarkdown(improved)
	if err != nil {
		return nil, fmt.Errorf("failed to render updated resume: %w", err)
	}

	return &types.AnalysisResult{
		OriginalScore:          originalScore,
		NewScore:               newScore,
		UpdatedResume:          html,
		ResumePreview:          preview,
		Details:                report.Details,
		Commentary:             report.Commentary,
		Improvements:           report.Improvements,
		OriginalResumeMarkdown: resume.Content,
		UpdatedResumeMarkdown:  improved,
		JobDescription:         job.Content,
		JobKeywords:            joinedJobKeywords,
		SkillComparison:        scoring.BuildSkillComparison(jobKeywords, improved, job.Content),
	}, nil
}

// loadResume fetches a resume and its keyword list. Resumes processed before
// keyword extraction existed get a one-shot extraction that is persisted.
func (p *AnalysisPipeline) loadResume(ctx context.Context, resumeID string) (*db.Resume, []string, error) {
	id, err := uuid.Parse(resumeID)
	if err != nil {
		return nil, nil, &ResumeNotFoundError{ResumeID: resumeID}
	}

	resume, err := p.store.GetResume(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load resume: %w", err)
	}
	if resume == nil {
		return nil, nil, &ResumeNotFoundError{ResumeID: resumeID}
	}

	processed, err := p.store.GetProcessedResume(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load processed resume: %w", err)
	}
	if processed == nil || processed.Structured == nil {
		return nil, nil, &ResumeParsingError{ResumeID: resumeID}
	}

	keywords := scoring.NormalizeKeywords(processed.Keywords)
	if len(keywords) == 0 {
		keywords, err = p.extractResumeKeywords(ctx, id, resume.Content)
		if err != nil {
			return nil, nil, &ResumeKeywordExtractionError{ResumeID: resumeID, Cause: err}
		}
		if len(keywords) == 0 {
			return nil, nil, &ResumeKeywordExtractionError{ResumeID: resumeID}
		}
	}
	return resume, keywords, nil
}

// extractResumeKeywords runs the keyword extraction prompt and persists the result
func (p *AnalysisPipeline) extractResumeKeywords(ctx context.Context, id uuid.UUID, content string) ([]string, error) {
	template := prompts.MustGet("improvement.json", "extract-keywords")
	prompt := prompts.Format(template, map[string]string{"Resume": content})

	text, err := p.llm.GenerateContent(ctx, prompt, llm.TierLite)
	if err != nil {
		return nil, err
	}

	keywords := scoring.NormalizeKeywords(llm.ParseKeywordList(text))
	if len(keywords) > 0 {
		if err := p.store.UpdateResumeKeywords(ctx, id, keywords); err != nil {
			return nil, err
		}
	}
	return keywords, nil
}

// loadJob fetches a job description and its keyword list
func (p *AnalysisPipeline) loadJob(ctx context.Context, jobID string) (*db.Job, []string, error) {
	id, err := uuid.Parse(jobID)
	if err != nil {
		return nil, nil, &JobNotFoundError{JobID: jobID}
	}

	job, err := p.store.GetJob(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load job: %w", err)
	}
	if job == nil {
		return nil, nil, &JobNotFoundError{JobID: jobID}
	}

	processed, err := p.store.GetProcessedJob(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load processed job: %w", err)
	}
	if processed == nil || processed.Structured == nil {
		return nil, nil, &JobParsingError{JobID: jobID}
	}

	keywords := scoring.NormalizeKeywords(processed.Keywords)
	if len(keywords) == 0 {
		return nil, nil, &JobKeywordExtractionError{JobID: jobID}
	}
	return job, keywords, nil
}

// renderMarkdown converts resume markdown to HTML for dashboard rendering
func renderMarkdown(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
