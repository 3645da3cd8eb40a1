package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/marcusft/resume-matcher/internal/llm"
	"github.com/marcusft/resume-matcher/internal/prompts"
	"github.com/marcusft/resume-matcher/internal/scoring"
	"github.com/marcusft/resume-matcher/internal/types"
)

// maxImproveAttempts bounds the rewrite loop. Each attempt is a full LLM
// rewrite plus an embedding call, so the loop stops as soon as the score beats
// the original.
const maxImproveAttempts = 5

type improveInput struct {
	jobDescription string
	jobKeywords    []string
	resumeMarkdown string
	resumeKeywords []string
	originalScore  float64
	jobVector      []float32
	comparison     []types.SkillMention
}

// improveResume iteratively rewrites the resume, keeping the highest-scoring
// candidate. The original resume is the floor: if no candidate beats it, the
// original text and score are returned.
func (p *AnalysisPipeline) improveResume(ctx context.Context, in improveInput) (string, float64, error) {
	template := prompts.MustGet("improvement.json", "improve-resume")
	ats := scoring.ATSRecommendations(in.comparison, in.resumeMarkdown)
	priority := scoring.SkillPriorityText(in.comparison, 12)

	best := in.resumeMarkdown
	bestScore := in.originalScore

	for attempt := 0; attempt < p.maxAttempts; attempt++ {
		prompt := prompts.Format(template, map[string]string{
			"JobDescription":     in.jobDescription,
			"JobKeywords":        strings.Join(in.jobKeywords, ", "),
			"Resume":             best,
			"ResumeKeywords":     strings.Join(in.resumeKeywords, ", "),
			"CurrentScore":       fmt.Sprintf("%.4f", bestScore),
			"ATSRecommendations": ats,
			"SkillPriority":      priority,
		})

		candidate, err := p.llm.GenerateContent(ctx, prompt, llm.TierAdvanced)
		if err != nil {
			return "", 0, fmt.Errorf("failed to generate improved resume: %w", err)
		}
		candidate = stripCodeFence(candidate)
		if candidate == "" {
			continue
		}

		vector, err := p.llm.Embed(ctx, candidate)
		if err != nil {
			return "", 0, fmt.Errorf("failed to embed improved resume: %w", err)
		}
		score := scoring.CosineSimilarity(vector, in.jobVector)
		if score > bestScore {
			best = candidate
			bestScore = score
		}
		if bestScore > in.originalScore {
			break
		}
	}
	return best, bestScore, nil
}

// stripCodeFence removes a wrapping markdown code fence if the model ignored
// the no-fence instruction
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	lines := strings.Split(text, "\n")
	if len(lines) < 2 {
		return text
	}
	lines = lines[1:]
	if strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
