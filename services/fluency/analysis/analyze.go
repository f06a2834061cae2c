// Package analysis implements the fluency metrics engine: pause and
// repetition detection, speech rate, filler words and the weighted score.
// Every function is pure; the same transcription always yields the same report.
package analysis

import (
	"errors"
	"strings"

	"github.com/eduvox/backend/services/fluency/consts"
	"github.com/eduvox/backend/services/fluency/entity"
)

var ErrEmptyTranscript = errors.New("empty transcription")

type Options struct {
	// PauseThreshold defaults to consts.DefaultPauseThreshold when not positive.
	PauseThreshold float64
}

// Analyze builds a fluency report for tr. The speech rate is measured over the
// nominal recording duration, or over the end of the last segment when the
// nominal duration is missing.
func Analyze(tr entity.Transcription, opts Options) (*entity.FluencyReport, error) {
	text := strings.TrimSpace(tr.Text)
	if text == "" {
		return nil, ErrEmptyTranscript
	}

	threshold := opts.PauseThreshold
	if threshold <= 0 {
		threshold = consts.DefaultPauseThreshold
	}

	var warnings []entity.Warning
	if !hasWordTimings(tr.Segments) {
		warnings = append(warnings, entity.WarningMissingTimestamps)
	} else if !timingsOrdered(tr.Segments) {
		warnings = append(warnings, entity.WarningUnorderedTimestamps)
	}

	duration := tr.Duration
	if duration <= 0 && len(tr.Segments) > 0 {
		duration = tr.Segments[len(tr.Segments)-1].End
	}
	if duration < consts.MinDuration {
		warnings = append(warnings, entity.WarningInvalidDuration)
	}

	pauses := DetectPauses(tr.Segments, threshold)
	repetitions := DetectRepetitions(tr.Segments, text)
	rate := ComputeRate(text, duration)
	fillers := CountFillers(text)

	return &entity.FluencyReport{
		Transcript:      text,
		WordCount:       rate.WordCount,
		WordsPerMinute:  rate.WordsPerMinute,
		RateCategory:    rate.Category,
		Pauses:          pauses,
		PauseCount:      len(pauses),
		RepetitionCount: repetitions,
		FillerCount:     fillers,
		FluencyScore:    Score(len(pauses), repetitions, fillers, rate.WordsPerMinute),
		Warnings:        warnings,
	}, nil
}

func hasWordTimings(segments []entity.TranscriptSegment) bool {
	for _, segment := range segments {
		if len(segment.Words) > 0 {
			return true
		}
	}
	return false
}

func timingsOrdered(segments []entity.TranscriptSegment) bool {
	for _, segment := range segments {
		for i, word := range segment.Words {
			if word.Start > word.End {
				return false
			}
			if i > 0 && word.Start < segment.Words[i-1].Start {
				return false
			}
		}
	}
	return true
}
