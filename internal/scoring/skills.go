package scoring

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/marcusft/resume-matcher/internal/types"
)

// summaryHeading matches a summary/profile/overview section heading at the
// start of a markdown line, with or without heading markup.
var summaryHeading = regexp.MustCompile(`(?i)^\s{0,3}(?:#{1,3}|\*\*|__)?\s*(professional\s+)?(summary|profile|overview)\b`)

// BuildSkillComparison counts, per job keyword, word-boundary mentions in the
// resume and the job description.
func BuildSkillComparison(keywords []string, resumeText, jobText string) []types.SkillMention {
	if len(keywords) == 0 {
		return nil
	}

	resumeNorm := prepareForMatching(resumeText)
	jobNorm := prepareForMatching(jobText)

	stats := make([]types.SkillMention, 0, len(keywords))
	for _, keyword := range keywords {
		stats = append(stats, types.SkillMention{
			Skill:          keyword,
			ResumeMentions: countMentions(keyword, resumeNorm),
			JobMentions:    countMentions(keyword, jobNorm),
		})
	}
	return stats
}

// HasSummarySection reports whether the resume text contains a summary-style
// section heading.
func HasSummarySection(resumeText string) bool {
	for _, line := range strings.Split(resumeText, "\n") {
		if summaryHeading.MatchString(strings.TrimSpace(line)) {
			return true
		}
	}
	return false
}

// SkillPriorityText renders the top keywords by job mentions (resume mentions
// breaking ties) as an indented bullet list for prompt interpolation.
func SkillPriorityText(stats []types.SkillMention, topN int) string {
	if len(stats) == 0 {
		return "    - No keyword statistics available."
	}

	ordered := make([]types.SkillMention, len(stats))
	copy(ordered, stats)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].JobMentions != ordered[j].JobMentions {
			return ordered[i].JobMentions > ordered[j].JobMentions
		}
		return ordered[i].ResumeMentions > ordered[j].ResumeMentions
	})

	if topN > len(ordered) {
		topN = len(ordered)
	}
	lines := make([]string, 0, topN)
	for _, record := range ordered[:topN] {
		lines = append(lines, fmt.Sprintf("    - %s (job mentions: %d, resume mentions: %d)",
			record.Skill, record.JobMentions, record.ResumeMentions))
	}
	return strings.Join(lines, "\n")
}

// ATSRecommendations derives factual prompt guidance from the comparison:
// add a summary section if one is missing, and surface job keywords the
// resume never mentions.
func ATSRecommendations(stats []types.SkillMention, resumeText string) string {
	var recommendations []string

	if !HasSummarySection(resumeText) {
		recommendations = append(recommendations,
			"Create a concise 2-3 sentence summary section at the top that reflects the most relevant accomplishments and weaves in the priority keywords.")
	}

	var missing []string
	for _, record := range stats {
		if record.JobMentions > 0 && record.ResumeMentions == 0 {
			missing = append(missing, record.Skill)
		}
	}
	if len(missing) > 0 {
		if len(missing) > 10 {
			missing = missing[:10]
		}
		recommendations = append(recommendations,
			"Emphasize factual experience that aligns with these uncovered keywords: "+
				strings.Join(missing, ", ")+
				". Rephrase existing bullets so they explicitly mention the relevant tools, domains, or methodologies without inventing new work.")
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations,
			"Tighten each section so that high-priority keywords appear in strong action-driven bullets supported by concrete outcomes.")
	}

	for i, rec := range recommendations {
		recommendations[i] = "    - " + rec
	}
	return strings.Join(recommendations, "\n")
}
