package analysis

import (
	"strings"
	"unicode"

	"github.com/eduvox/backend/services/fluency/consts"
	"github.com/eduvox/backend/services/fluency/entity"
)

// DetectRepetitions sums the stutters visible in the transcript text and the
// hesitation-then-repeat pairs visible in the word timings.
func DetectRepetitions(segments []entity.TranscriptSegment, text string) int {
	return countDirectRepetitions(text) + countHesitationRepetitions(flattenWords(segments))
}

// countDirectRepetitions counts non-overlapping occurrences of a whole word
// followed either by "-word" or by whitespace and one or more back-to-back
// copies of the word ("I-I", "the the", "ha haha"). Matching is case-insensitive.
func countDirectRepetitions(text string) int {
	runes := []rune(strings.ToLower(text))
	n := len(runes)
	count := 0

	i := 0
	for i < n {
		if !isWordRune(runes[i]) || (i > 0 && isWordRune(runes[i-1])) {
			i++
			continue
		}

		j := i
		for j < n && isWordRune(runes[j]) {
			j++
		}

		if end, ok := matchRepeat(runes, j, runes[i:j]); ok {
			count++
			i = end
			continue
		}
		i = j
	}

	return count
}

// matchRepeat checks whether the text at pos continues with a repetition of word.
// It returns the end of the repetition.
func matchRepeat(runes []rune, pos int, word []rune) (int, bool) {
	n := len(runes)
	if pos >= n {
		return 0, false
	}

	if runes[pos] == '-' {
		end := pos + 1 + len(word)
		if hasRunePrefix(runes[pos+1:], word) && atWordEnd(runes, end) {
			return end, true
		}
		return 0, false
	}

	if !unicode.IsSpace(runes[pos]) {
		return 0, false
	}

	start := pos
	for start < n && unicode.IsSpace(runes[start]) {
		start++
	}

	copies := 0
	for hasRunePrefix(runes[start+copies*len(word):], word) {
		copies++
	}
	for ; copies > 0; copies-- {
		end := start + copies*len(word)
		if atWordEnd(runes, end) {
			return end, true
		}
	}

	return 0, false
}

// countHesitationRepetitions flags adjacent words that repeat, or restart the
// same word, after a hesitation longer than consts.HesitationThreshold.
func countHesitationRepetitions(words []entity.WordTiming) int {
	count := 0
	for i := 1; i < len(words); i++ {
		current := []rune(strings.ToLower(strings.TrimSpace(words[i].Word)))
		previous := []rune(strings.ToLower(strings.TrimSpace(words[i-1].Word)))

		if !sameAttempt(current, previous) {
			continue
		}
		if words[i].Start-words[i-1].End > consts.HesitationThreshold {
			count++
		}
	}
	return count
}

func sameAttempt(current, previous []rune) bool {
	if string(current) == string(previous) {
		return true
	}
	if len(current) <= 2 || len(previous) <= 2 {
		return false
	}
	return hasRunePrefix(current, previous[:2]) || hasRunePrefix(previous, current[:2])
}

func flattenWords(segments []entity.TranscriptSegment) []entity.WordTiming {
	total := 0
	for _, segment := range segments {
		total += len(segment.Words)
	}

	words := make([]entity.WordTiming, 0, total)
	for _, segment := range segments {
		words = append(words, segment.Words...)
	}
	return words
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

func atWordEnd(runes []rune, pos int) bool {
	return pos >= len(runes) || !isWordRune(runes[pos])
}

func hasRunePrefix(s, prefix []rune) bool {
	if len(prefix) == 0 || len(s) < len(prefix) {
		return false
	}
	for i := range prefix {
		if s[i] != prefix[i] {
			return false
		}
	}
	return true
}
