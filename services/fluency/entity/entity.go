package entity

import "time"

// WordTiming is a single recognised word with its timestamps in seconds.
type WordTiming struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// TranscriptSegment is a contiguous span of recognised speech. Words is empty
// when the upstream engine did not return word-level timestamps.
type TranscriptSegment struct {
	Start float64      `json:"start"`
	End   float64      `json:"end"`
	Text  string       `json:"text"`
	Words []WordTiming `json:"words,omitempty"`
}

// Transcription is the result handed over by a speech-to-text engine together
// with the nominal recording duration.
type Transcription struct {
	Text     string              `json:"text"`
	Segments []TranscriptSegment `json:"segments"`
	Duration float64             `json:"duration"`
}

type PauseEvent struct {
	Duration float64 `json:"duration" yaml:"duration"`
	Position string  `json:"position" yaml:"position"`
}

type RateCategory string

const (
	RateSlow     RateCategory = "Slow"
	RateAverage  RateCategory = "Average"
	RateFast     RateCategory = "Fast"
	RateVeryFast RateCategory = "Very Fast"
)

type RateAnalysis struct {
	WordCount      int          `json:"word_count"`
	WordsPerMinute float64      `json:"words_per_minute"`
	Category       RateCategory `json:"category"`
}

type Warning string

const (
	WarningMissingTimestamps   Warning = "missing_timestamps"
	WarningInvalidDuration     Warning = "invalid_duration"
	WarningUnorderedTimestamps Warning = "unordered_timestamps"
)

type FluencyReport struct {
	Transcript      string       `json:"transcript" yaml:"transcript"`
	WordCount       int          `json:"word_count" yaml:"word_count"`
	WordsPerMinute  float64      `json:"words_per_minute" yaml:"words_per_minute"`
	RateCategory    RateCategory `json:"rate_category" yaml:"rate_category"`
	Pauses          []PauseEvent `json:"pauses" yaml:"pauses"`
	PauseCount      int          `json:"pause_count" yaml:"pause_count"`
	RepetitionCount int          `json:"repetition_count" yaml:"repetition_count"`
	FillerCount     int          `json:"filler_count" yaml:"filler_count"`
	FluencyScore    int          `json:"fluency_score" yaml:"fluency_score"`
	Warnings        []Warning    `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Report is a persisted analysis run.
type Report struct {
	ID        string        `json:"id"`
	OwnerID   string        `json:"owner_id"`
	Source    string        `json:"source"`
	CreatedAt time.Time     `json:"created_at"`
	Fluency   FluencyReport `json:"fluency"`
	Rendered  string        `json:"rendered"`
}

type AnalyzeRequest struct {
	OwnerID        string        `json:"owner_id"`
	Source         string        `json:"source"`
	Transcription  Transcription `json:"transcription"`
	PauseThreshold float64       `json:"pause_threshold,omitempty"`
}

type AnalyzeResponse struct {
	Report *Report `json:"report"`
}

// GetReportRequest looks a report up by ID. A non-empty OwnerID hides
// reports that belong to someone else.
type GetReportRequest struct {
	ID      string `json:"id"`
	OwnerID string `json:"owner_id,omitempty"`
}

type ListReportsRequest struct {
	OwnerID string `json:"owner_id"`
}

type ListReportsResponse struct {
	Reports []*Report `json:"reports"`
}
