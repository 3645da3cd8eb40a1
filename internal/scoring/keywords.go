package scoring

import (
	"regexp"
	"strings"
)

var (
	markupChars = regexp.MustCompile("[`*_>#-]")
	whitespace  = regexp.MustCompile(`\s+`)
)

// NormalizeKeywords trims, drops empties, and deduplicates keywords
// case-insensitively while preserving order and original casing.
func NormalizeKeywords(raw []string) []string {
	var normalized []string
	seen := make(map[string]struct{}, len(raw))
	for _, keyword := range raw {
		kw := strings.TrimSpace(keyword)
		if kw == "" {
			continue
		}
		lower := strings.ToLower(kw)
		if _, ok := seen[lower]; ok {
			continue
		}
		seen[lower] = struct{}{}
		normalized = append(normalized, kw)
	}
	return normalized
}

// prepareForMatching lowercases text and strips markdown markup so keyword
// mention counting is not thrown off by formatting characters.
func prepareForMatching(text string) string {
	lowered := strings.ToLower(text)
	lowered = markupChars.ReplaceAllString(lowered, " ")
	return whitespace.ReplaceAllString(lowered, " ")
}

// countMentions counts occurrences of keyword in normalized text that are not
// embedded inside a longer word. The keyword is matched literally.
func countMentions(keyword, normalizedText string) int {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	if kw == "" {
		return 0
	}

	count := 0
	for start := 0; start <= len(normalizedText)-len(kw); {
		idx := strings.Index(normalizedText[start:], kw)
		if idx < 0 {
			break
		}
		pos := start + idx
		end := pos + len(kw)
		beforeOK := pos == 0 || !isWordChar(normalizedText[pos-1])
		afterOK := end == len(normalizedText) || !isWordChar(normalizedText[end])
		if beforeOK && afterOK {
			count++
		}
		start = pos + 1
	}
	return count
}

func isWordChar(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}
