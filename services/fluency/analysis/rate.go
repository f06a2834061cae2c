package analysis

import (
	"strings"

	"github.com/eduvox/backend/services/fluency/consts"
	"github.com/eduvox/backend/services/fluency/entity"
)

// ComputeRate measures words per minute over duration seconds. Durations
// below one second are treated as one second.
func ComputeRate(text string, duration float64) entity.RateAnalysis {
	wordCount := len(strings.Fields(text))
	if duration < consts.MinDuration {
		duration = consts.MinDuration
	}

	wpm := float64(wordCount) / duration * 60

	return entity.RateAnalysis{
		WordCount:      wordCount,
		WordsPerMinute: round(wpm, 1),
		Category:       Categorize(wpm),
	}
}

// Categorize maps a speech rate onto its band. Bands are closed on the lower bound.
func Categorize(wpm float64) entity.RateCategory {
	switch {
	case wpm < consts.RateAverageFrom:
		return entity.RateSlow
	case wpm < consts.RateFastFrom:
		return entity.RateAverage
	case wpm < consts.RateVeryFastFrom:
		return entity.RateFast
	default:
		return entity.RateVeryFast
	}
}

// CountFillers adds up raw substring occurrences of every filler word, so
// "also" counts towards "so".
func CountFillers(text string) int {
	lowered := strings.ToLower(text)
	count := 0
	for _, filler := range consts.FillerWords {
		count += strings.Count(lowered, filler)
	}
	return count
}
