package parsing

import (
	"context"
	"encoding/json"

	"github.com/marcusft/resume-matcher/internal/llm"
	"github.com/marcusft/resume-matcher/internal/scoring"
	"github.com/marcusft/resume-matcher/internal/types"
)

// ParseJob extracts a StructuredJob from job description text
func ParseJob(ctx context.Context, client llm.Client, text string) (*types.StructuredJob, error) {
	prompt := llm.BuildExtractionPrompt(llm.StructuredJobSchema(), text)

	responseText, err := client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &APICallError{
			Message: "failed to extract structured job",
			Cause:   err,
		}
	}
	responseText = llm.CleanJSONBlock(responseText)

	var job types.StructuredJob
	if err := json.Unmarshal([]byte(responseText), &job); err != nil {
		return nil, &ParseError{
			Message: "failed to parse structured job JSON",
			Cause:   err,
		}
	}

	if err := postProcessJob(&job); err != nil {
		return nil, err
	}
	return &job, nil
}

// postProcessJob normalizes keywords. Analysis has no keyword fallback for
// jobs, so an empty keyword list is rejected at intake.
func postProcessJob(job *types.StructuredJob) error {
	job.ExtractedKeywords = scoring.NormalizeKeywords(job.ExtractedKeywords)

	if len(job.ExtractedKeywords) == 0 {
		return &ValidationError{
			Field:   "extracted_keywords",
			Message: "no keywords could be extracted from the job description",
		}
	}
	return nil
}
