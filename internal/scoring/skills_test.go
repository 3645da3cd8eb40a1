package scoring

import (
	"strings"
	"testing"

	"github.com/marcusft/resume-matcher/internal/types"
)

func TestBuildSkillComparison(t *testing.T) {
	resume := "Senior Go engineer. Built Go services backed by PostgreSQL."
	job := "Looking for a Go developer. PostgreSQL and Kafka required."

	stats := BuildSkillComparison([]string{"Go", "PostgreSQL", "Kafka"}, resume, job)
	if len(stats) != 3 {
		t.Fatalf("got %d stats, want 3", len(stats))
	}

	if stats[0].Skill != "Go" || stats[0].ResumeMentions != 2 || stats[0].JobMentions != 1 {
		t.Errorf("Go stats = %+v", stats[0])
	}
	if stats[2].Skill != "Kafka" || stats[2].ResumeMentions != 0 || stats[2].JobMentions != 1 {
		t.Errorf("Kafka stats = %+v", stats[2])
	}
}

func TestBuildSkillComparisonEmptyKeywords(t *testing.T) {
	if got := BuildSkillComparison(nil, "resume", "job"); got != nil {
		t.Errorf("BuildSkillComparison(nil) = %v, want nil", got)
	}
}

func TestHasSummarySection(t *testing.T) {
	cases := []struct {
		name string
		text string
		want bool
	}{
		{"markdown heading", "# Summary\nExperienced engineer", true},
		{"bold heading", "**Professional Summary**\ntext", true},
		{"profile heading", "## Profile\ntext", true},
		{"no heading", "# Experience\nworked places", false},
		{"summary mid-sentence", "Wrote a summary of findings", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := HasSummarySection(tc.text); got != tc.want {
				t.Errorf("HasSummarySection = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSkillPriorityText(t *testing.T) {
	stats := []types.SkillMention{
		{Skill: "Go", JobMentions: 1, ResumeMentions: 5},
		{Skill: "Kafka", JobMentions: 4, ResumeMentions: 0},
		{Skill: "SQL", JobMentions: 4, ResumeMentions: 2},
	}

	text := SkillPriorityText(stats, 2)
	lines := strings.Split(text, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	// SQL outranks Kafka on resume mentions at equal job mentions
	if !strings.Contains(lines[0], "SQL") {
		t.Errorf("first line = %q, want SQL first", lines[0])
	}
	if !strings.Contains(lines[1], "Kafka") {
		t.Errorf("second line = %q, want Kafka second", lines[1])
	}
}

func TestSkillPriorityTextEmpty(t *testing.T) {
	if got := SkillPriorityText(nil, 12); !strings.Contains(got, "No keyword statistics") {
		t.Errorf("SkillPriorityText(nil) = %q", got)
	}
}

func TestATSRecommendations(t *testing.T) {
	t.Run("missing summary and uncovered keywords", func(t *testing.T) {
		stats := []types.SkillMention{
			{Skill: "Terraform", JobMentions: 3, ResumeMentions: 0},
		}
		got := ATSRecommendations(stats, "# Experience\nstuff")
		if !strings.Contains(got, "summary section") {
			t.Errorf("expected summary recommendation, got %q", got)
		}
		if !strings.Contains(got, "Terraform") {
			t.Errorf("expected uncovered keyword mention, got %q", got)
		}
	})

	t.Run("fully covered resume falls back to generic advice", func(t *testing.T) {
		stats := []types.SkillMention{
			{Skill: "Go", JobMentions: 2, ResumeMentions: 4},
		}
		got := ATSRecommendations(stats, "# Summary\nGreat engineer")
		if !strings.Contains(got, "high-priority keywords") {
			t.Errorf("expected generic recommendation, got %q", got)
		}
	})
}
