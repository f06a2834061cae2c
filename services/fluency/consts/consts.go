package consts

const (
	// Detection thresholds, seconds
	DefaultPauseThreshold = 0.5
	HesitationThreshold   = 0.2
	MinDuration           = 1.0

	// Speech rate bands, words per minute
	RateAverageFrom  = 100.0
	RateFastFrom     = 150.0
	RateVeryFastFrom = 200.0

	// Rate penalty applies outside [RatePenaltyBelow, RatePenaltyAbove]
	RatePenaltyBelow = 80.0
	RatePenaltyAbove = 200.0
	RatePenalty      = 10

	// Per-event penalties and their caps
	PausePenalty         = 5
	PausePenaltyCap      = 40
	RepetitionPenalty    = 6
	RepetitionPenaltyCap = 30
	FillerPenalty        = 3
	FillerPenaltyCap     = 15

	MaxScore = 100
)

// FillerWords are counted as raw substrings of the lowercased transcript.
var FillerWords = []string{"um", "uh", "like", "you know", "so"}
