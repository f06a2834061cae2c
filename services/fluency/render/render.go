// Package render formats a fluency report as the plain-text summary shown to
// speakers and written to report files.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/eduvox/backend/services/fluency/consts"
	"github.com/eduvox/backend/services/fluency/entity"
)

const maxListedPauses = 3

const (
	BandExcellent = "Excellent Fluency"
	BandGood      = "Good Fluency"
	BandModerate  = "Moderate Fluency"
	BandWeak      = "Needs Improvement"
)

// Band names the fluency band a score falls into.
func Band(score int) string {
	switch {
	case score >= 90:
		return BandExcellent
	case score >= 70:
		return BandGood
	case score >= 50:
		return BandModerate
	default:
		return BandWeak
	}
}

// Recommendations lists the coaching hints triggered by the report, in a fixed order.
func Recommendations(r *entity.FluencyReport) []string {
	var out []string
	if r.PauseCount > 2 {
		out = append(out, "Practice with prepared speech to reduce pauses")
	}
	if r.RepetitionCount > 2 {
		out = append(out, "Try speaking slightly slower to reduce repetitions")
	}
	if r.FillerCount > 3 {
		out = append(out, "Be conscious of filler words and practice replacing them with pauses")
	}
	if r.WordsPerMinute < consts.RatePenaltyBelow {
		out = append(out, "Try to increase your speaking pace slightly")
	}
	if r.WordsPerMinute > consts.RatePenaltyAbove {
		out = append(out, "Consider slowing down slightly for better clarity")
	}
	return out
}

func Render(r *entity.FluencyReport) string {
	var b strings.Builder

	b.WriteString("\nSpeech Analysis Report:\n")
	b.WriteString("==========================\n")
	fmt.Fprintf(&b, "Transcription: \"%s\"\n\n", r.Transcript)

	b.WriteString("Basic Metrics:\n")
	fmt.Fprintf(&b, "- Total Words: %d words\n", r.WordCount)
	fmt.Fprintf(&b, "- Speech Rate: %s words per minute (%s)\n", formatFloat(r.WordsPerMinute), r.RateCategory)
	fmt.Fprintf(&b, "- Number of Pauses: %d\n", r.PauseCount)
	fmt.Fprintf(&b, "- Stammering/Repetitions: %d\n", r.RepetitionCount)
	fmt.Fprintf(&b, "- Filler Words: %d\n\n", r.FillerCount)

	fmt.Fprintf(&b, "Fluency Score: %d/100\n\n", r.FluencyScore)
	b.WriteString("Detailed Analysis:\n")

	if len(r.Pauses) > 0 {
		b.WriteString("\nPause Details:\n")
		for _, pause := range r.Pauses[:min(len(r.Pauses), maxListedPauses)] {
			fmt.Fprintf(&b, "  • %ss pause %s\n", formatFloat(pause.Duration), pause.Position)
		}
		if len(r.Pauses) > maxListedPauses {
			fmt.Fprintf(&b, "  • ...and %d more pauses\n", len(r.Pauses)-maxListedPauses)
		}
	}

	b.WriteString("\nInterpretation:\n")
	b.WriteString("- 90-100: Excellent Fluency (minimal pauses or repetitions)\n")
	b.WriteString("- 70-89: Good Fluency (occasional pauses/repetitions)\n")
	b.WriteString("- 50-69: Moderate Fluency (noticeable pauses/repetitions)\n")
	b.WriteString("- Below 50: Significant fluency challenges\n\n")
	fmt.Fprintf(&b, "Your Score: %d/100 - %s\n", r.FluencyScore, Band(r.FluencyScore))

	b.WriteString("\nRecommendations:\n")
	for _, rec := range Recommendations(r) {
		fmt.Fprintf(&b, "- %s\n", rec)
	}

	return b.String()
}

// formatFloat prints the shortest representation but always keeps a decimal
// part, so 48 renders as "48.0".
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
