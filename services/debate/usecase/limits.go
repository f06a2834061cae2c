package usecase

import "strings"

// WordCount counts whitespace-separated words.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// EnforceWordLimit keeps the first limit words. Text within the limit is
// returned unchanged; truncated text is re-joined with single spaces.
func EnforceWordLimit(text string, limit int) (string, bool) {
	words := strings.Fields(text)
	if len(words) <= limit {
		return text, false
	}
	return strings.Join(words[:limit], " "), true
}
