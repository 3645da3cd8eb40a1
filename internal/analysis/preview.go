package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/marcusft/resume-matcher/internal/llm"
	"github.com/marcusft/resume-matcher/internal/prompts"
	"github.com/marcusft/resume-matcher/internal/schemas"
	"github.com/marcusft/resume-matcher/internal/types"
)

// generatePreview converts the improved resume into structured JSON for
// dashboard rendering, validated against the preview schema
func (p *AnalysisPipeline) generatePreview(ctx context.Context, improvedResume string) (map[string]any, error) {
	schema, err := schemas.Content(schemas.ResumePreviewSchema)
	if err != nil {
		return nil, err
	}

	template := prompts.MustGet("analysis.json", "resume-preview")
	prompt := prompts.Format(template, map[string]string{
		"Schema":         schema,
		"ImprovedResume": improvedResume,
	})

	raw, err := p.llm.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, fmt.Errorf("failed to generate resume preview: %w", err)
	}
	if err := schemas.Validate(schemas.ResumePreviewSchema, raw); err != nil {
		return nil, fmt.Errorf("resume preview failed validation: %w", err)
	}

	var preview map[string]any
	if err := json.Unmarshal([]byte(raw), &preview); err != nil {
		return nil, fmt.Errorf("failed to parse resume preview: %w", err)
	}
	return preview, nil
}

type analysisInput struct {
	jobDescription string
	jobKeywords    string
	originalResume string
	resumeKeywords string
	improvedResume string
	originalScore  float64
	newScore       float64
}

// analysisReport is the validated shape of the resume-analysis prompt output
type analysisReport struct {
	Details      string             `json:"details"`
	Commentary   string             `json:"commentary"`
	Improvements []types.Suggestion `json:"improvements"`
}

// generateAnalysis produces the comparison narrative and the suggestion list
func (p *AnalysisPipeline) generateAnalysis(ctx context.Context, in analysisInput) (*analysisReport, error) {
	schema, err := schemas.Content(schemas.ResumeAnalysisSchema)
	if err != nil {
		return nil, err
	}

	template := prompts.MustGet("analysis.json", "resume-analysis")
	prompt := prompts.Format(template, map[string]string{
		"Schema":         schema,
		"JobDescription": in.jobDescription,
		"JobKeywords":    in.jobKeywords,
		"OriginalResume": in.originalResume,
		"ResumeKeywords": in.resumeKeywords,
		"ImprovedResume": in.improvedResume,
		"OriginalScore":  fmt.Sprintf("%.4f", in.originalScore),
		"NewScore":       fmt.Sprintf("%.4f", in.newScore),
	})

	raw, err := p.llm.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, fmt.Errorf("failed to generate analysis: %w", err)
	}

	// A malformed analysis response must not discard the improved resume:
	// ship the artifact with an empty narrative instead.
	if err := schemas.Validate(schemas.ResumeAnalysisSchema, raw); err != nil {
		log.Printf("Analysis output failed validation, continuing without narrative: %v", err)
		return &analysisReport{Improvements: []types.Suggestion{}}, nil
	}

	var report analysisReport
	if err := json.Unmarshal([]byte(raw), &report); err != nil {
		log.Printf("Failed to parse analysis output, continuing without narrative: %v", err)
		return &analysisReport{Improvements: []types.Suggestion{}}, nil
	}
	if report.Improvements == nil {
		report.Improvements = []types.Suggestion{}
	}
	return &report, nil
}
