package ai

import (
	"regexp"
	"strings"
)

// ExtractJSON finds the JSON object inside a model reply. The reply may
// wrap it in a markdown fence or surround it with prose. Returns "" when
// no object is found.
func ExtractJSON(text string) string {
	if idx := strings.Index(text, "```json"); idx >= 0 {
		start := idx + len("```json")
		end := strings.Index(text[start:], "```")
		if end >= 0 {
			return strings.TrimSpace(text[start : start+end])
		}
	}
	if idx := strings.Index(text, "```"); idx >= 0 {
		start := idx + len("```")
		end := strings.Index(text[start:], "```")
		if end >= 0 {
			candidate := strings.TrimSpace(text[start : start+end])
			if strings.HasPrefix(candidate, "{") {
				return candidate
			}
		}
	}

	// Match braces, skipping braces inside string literals.
	depth := 0
	start := -1
	inString, escaped := false, false
	for i, ch := range text {
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			if start >= 0 {
				inString = true
			}
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 && start >= 0 {
				return text[start : i+1]
			}
		}
	}

	return ""
}

var sqlFence = regexp.MustCompile("(?i)```sql")

// CleanSQL strips markdown fences from a SQL reply and trims it. The
// language tag is matched case-insensitively.
func CleanSQL(text string) string {
	s := sqlFence.ReplaceAllString(text, "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
