package analysis

import "github.com/eduvox/backend/services/fluency/consts"

// Score combines the detected issues into a 0-100 fluency score. Each penalty
// is capped on its own before they are subtracted.
func Score(pauses, repetitions, fillers int, wpm float64) int {
	score := consts.MaxScore -
		min(pauses*consts.PausePenalty, consts.PausePenaltyCap) -
		min(repetitions*consts.RepetitionPenalty, consts.RepetitionPenaltyCap) -
		min(fillers*consts.FillerPenalty, consts.FillerPenaltyCap)

	if wpm < consts.RatePenaltyBelow || wpm > consts.RatePenaltyAbove {
		score -= consts.RatePenalty
	}

	return max(0, min(score, consts.MaxScore))
}
