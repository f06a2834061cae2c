package telemetry

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/eduvox/backend/services/fluency/entity"
)

// Recorder keeps service-wide analysis counters.
type Recorder struct {
	log *slog.Logger

	analyses         atomic.Uint64
	failures         atomic.Uint64
	emptyTranscripts atomic.Uint64
	warnings         atomic.Uint64
	pauses           atomic.Uint64
	repetitions      atomic.Uint64
	fillers          atomic.Uint64
	scoreTotal       atomic.Uint64
}

// Snapshot captures cumulative metrics recorded so far.
type Snapshot struct {
	Analyses         uint64
	Failures         uint64
	EmptyTranscripts uint64
	Warnings         uint64
	Pauses           uint64
	Repetitions      uint64
	Fillers          uint64
	AverageScore     float64
}

func NewRecorder(logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{
		log: logger.With("component", "telemetry.Recorder"),
	}
}

// RecordAnalysis counts a successful analysis.
func (r *Recorder) RecordAnalysis(report *entity.FluencyReport, elapsed time.Duration) {
	if r == nil || report == nil {
		return
	}
	r.analyses.Add(1)
	r.warnings.Add(uint64(len(report.Warnings)))
	r.pauses.Add(uint64(report.PauseCount))
	r.repetitions.Add(uint64(report.RepetitionCount))
	r.fillers.Add(uint64(report.FillerCount))
	r.scoreTotal.Add(uint64(report.FluencyScore))

	r.log.Debug("analysis recorded",
		"duration_ms", elapsed.Milliseconds(),
		"score", report.FluencyScore,
		"warnings", len(report.Warnings),
	)
}

// RecordFailure counts a failed analysis. Empty transcripts are tracked separately.
func (r *Recorder) RecordFailure(err error, empty bool) {
	if r == nil {
		return
	}
	r.failures.Add(1)
	if empty {
		r.emptyTranscripts.Add(1)
	}
	r.log.Debug("analysis failed", "error", err, "empty_transcript", empty)
}

func (r *Recorder) Snapshot() Snapshot {
	if r == nil {
		return Snapshot{}
	}
	s := Snapshot{
		Analyses:         r.analyses.Load(),
		Failures:         r.failures.Load(),
		EmptyTranscripts: r.emptyTranscripts.Load(),
		Warnings:         r.warnings.Load(),
		Pauses:           r.pauses.Load(),
		Repetitions:      r.repetitions.Load(),
		Fillers:          r.fillers.Load(),
	}
	if s.Analyses > 0 {
		s.AverageScore = float64(r.scoreTotal.Load()) / float64(s.Analyses)
	}
	return s
}

// LogSummary writes the current totals at info level.
func (r *Recorder) LogSummary() {
	if r == nil {
		return
	}
	s := r.Snapshot()
	r.log.Info("analysis totals",
		"analyses", s.Analyses,
		"failures", s.Failures,
		"empty_transcripts", s.EmptyTranscripts,
		"warnings", s.Warnings,
		"pauses", s.Pauses,
		"repetitions", s.Repetitions,
		"fillers", s.Fillers,
		"average_score", s.AverageScore,
	)
}
