// Package parsing turns raw resume and job description text into their
// structured forms using LLM extraction.
package parsing

import (
	"context"
	"encoding/json"

	"github.com/marcusft/resume-matcher/internal/llm"
	"github.com/marcusft/resume-matcher/internal/scoring"
	"github.com/marcusft/resume-matcher/internal/types"
)

// ParseResume extracts a StructuredResume from resume markdown
func ParseResume(ctx context.Context, client llm.Client, text string) (*types.StructuredResume, error) {
	prompt := llm.BuildExtractionPrompt(llm.StructuredResumeSchema(), text)

	responseText, err := client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &APICallError{
			Message: "failed to extract structured resume",
			Cause:   err,
		}
	}
	responseText = llm.CleanJSONBlock(responseText)

	var resume types.StructuredResume
	if err := json.Unmarshal([]byte(responseText), &resume); err != nil {
		return nil, &ParseError{
			Message: "failed to parse structured resume JSON",
			Cause:   err,
		}
	}

	if err := postProcessResume(&resume); err != nil {
		return nil, err
	}
	return &resume, nil
}

// postProcessResume normalizes keywords and rejects empty extractions
func postProcessResume(resume *types.StructuredResume) error {
	resume.ExtractedKeywords = scoring.NormalizeKeywords(resume.ExtractedKeywords)

	if resume.PersonalData == nil && len(resume.Experiences) == 0 &&
		len(resume.Skills) == 0 && len(resume.Education) == 0 {
		return &ValidationError{Message: "extraction produced no resume content"}
	}
	return nil
}
