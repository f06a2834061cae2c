package analysis

import (
	"fmt"
	"math"
	"strings"

	"github.com/eduvox/backend/services/fluency/entity"
)

// DetectPauses reports every gap longer than threshold. Gaps between segments
// come first, followed by gaps between words inside each segment. A gap that
// shows up at both levels is reported twice.
func DetectPauses(segments []entity.TranscriptSegment, threshold float64) []entity.PauseEvent {
	pauses := make([]entity.PauseEvent, 0)

	for i := 1; i < len(segments); i++ {
		gap := segments[i].Start - segments[i-1].End
		if gap > threshold {
			pauses = append(pauses, entity.PauseEvent{
				Duration: round(gap, 2),
				Position: fmt.Sprintf("between '%s' and '%s'",
					strings.TrimSpace(segments[i-1].Text),
					strings.TrimSpace(segments[i].Text)),
			})
		}
	}

	for _, segment := range segments {
		words := segment.Words
		for i := 1; i < len(words); i++ {
			gap := words[i].Start - words[i-1].End
			if gap > threshold {
				pauses = append(pauses, entity.PauseEvent{
					Duration: round(gap, 2),
					Position: fmt.Sprintf("between '%s' and '%s'", words[i-1].Word, words[i].Word),
				})
			}
		}
	}

	return pauses
}

func round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
