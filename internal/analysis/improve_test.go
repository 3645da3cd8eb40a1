package analysis

import "testing"

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "no fence",
			input: "# Resume\n\nContent",
			want:  "# Resume\n\nContent",
		},
		{
			name:  "plain fence",
			input: "```\n# Resume\n```",
			want:  "# Resume",
		},
		{
			name:  "language fence",
			input: "```markdown\n# Resume\n\nContent\n```",
			want:  "# Resume\n\nContent",
		},
		{
			name:  "unclosed fence",
			input: "```markdown\n# Resume",
			want:  "# Resume",
		},
		{
			name:  "surrounding whitespace",
			input: "  \n```\n# Resume\n```\n  ",
			want:  "# Resume",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripCodeFence(tt.input); got != tt.want {
				t.Errorf("stripCodeFence(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
