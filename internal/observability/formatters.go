// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/marcusft/resume-matcher/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintStructuredJob outputs a human-readable summary of a parsed job description.
func (p *Printer) PrintStructuredJob(job *types.StructuredJob) {
	if job == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Company:  %s\n", job.CompanyName))
	sb.WriteString(fmt.Sprintf("Role:     %s\n", job.JobTitle))
	if job.Location != "" {
		sb.WriteString(fmt.Sprintf("Location: %s\n", job.Location))
	}
	sb.WriteString("\n")

	if job.Qualifications != nil && len(job.Qualifications.Required) > 0 {
		sb.WriteString("Required Qualifications:\n")
		count := min(len(job.Qualifications.Required), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", job.Qualifications.Required[i]))
		}
		if len(job.Qualifications.Required) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(job.Qualifications.Required)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(job.ExtractedKeywords) > 0 {
		sb.WriteString(fmt.Sprintf("Keywords: %s", joinLimited(job.ExtractedKeywords, maxItemsToShow)))
	}

	p.printBox("JOB DESCRIPTION", strings.TrimRight(sb.String(), "\n"))
}

// PrintStructuredResume outputs a human-readable summary of a parsed resume.
func (p *Printer) PrintStructuredResume(resume *types.StructuredResume) {
	if resume == nil {
		return
	}

	var sb strings.Builder

	if resume.PersonalData != nil {
		name := strings.TrimSpace(resume.PersonalData.FirstName + " " + resume.PersonalData.LastName)
		sb.WriteString(fmt.Sprintf("Candidate: %s\n", name))
	}
	sb.WriteString(fmt.Sprintf("Experiences: %d\n", len(resume.Experiences)))
	sb.WriteString(fmt.Sprintf("Skills:      %d\n", len(resume.Skills)))
	sb.WriteString(fmt.Sprintf("Education:   %d\n", len(resume.Education)))

	if len(resume.ExtractedKeywords) > 0 {
		sb.WriteString(fmt.Sprintf("Keywords:    %s", joinLimited(resume.ExtractedKeywords, maxItemsToShow)))
	}

	p.printBox("RESUME", strings.TrimRight(sb.String(), "\n"))
}

// PrintImprovement outputs a human-readable summary of an analysis artifact.
func (p *Printer) PrintImprovement(imp *types.Improvement) {
	if imp == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Original score: %.4f\n", imp.OriginalScore))
	sb.WriteString(fmt.Sprintf("New score:      %.4f\n", imp.NewScore))
	sb.WriteString("\n")

	if len(imp.SkillComparison) > 0 {
		sb.WriteString("Skill Coverage (resume / job mentions):\n")
		count := min(len(imp.SkillComparison), maxItemsToShow)
		for i := 0; i < count; i++ {
			mention := imp.SkillComparison[i]
			sb.WriteString(fmt.Sprintf("  • %s: %d / %d\n",
				mention.Skill, mention.ResumeMentions, mention.JobMentions))
		}
		if len(imp.SkillComparison) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(imp.SkillComparison)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(imp.Improvements) > 0 {
		sb.WriteString("Suggestions:\n")
		count := min(len(imp.Improvements), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, imp.Improvements[i].Suggestion))
		}
		if len(imp.Improvements) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(imp.Improvements)-maxItemsToShow))
		}
	}

	p.printBox("ANALYSIS RESULT", strings.TrimRight(sb.String(), "\n"))
}

// PrintEvent outputs one streamed analysis event as a single line.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintEvent(event types.AnalysisEvent) {
	switch event.Status {
	case types.StatusScored:
		if event.Score != nil {
			fmt.Fprintf(p.out, "[%s] compatibility score: %.4f\n", event.Status, *event.Score)
			return
		}
	case types.StatusSuggestion:
		if event.Suggestion != nil {
			fmt.Fprintf(p.out, "[%s] %d. %s\n", event.Status, event.Suggestion.Index+1, event.Suggestion.Text)
			return
		}
	case types.StatusCompleted:
		fmt.Fprintf(p.out, "[%s] analysis complete\n", event.Status)
		return
	}
	if event.Message != "" {
		fmt.Fprintf(p.out, "[%s] %s\n", event.Status, event.Message)
		return
	}
	fmt.Fprintf(p.out, "[%s]\n", event.Status)
}

// joinLimited joins up to limit items, appending an ellipsis marker beyond it
func joinLimited(items []string, limit int) string {
	if len(items) <= limit {
		return strings.Join(items, ", ")
	}
	return strings.Join(items[:limit], ", ") + ", ..."
}
