package telemetry

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/eduvox/backend/services/fluency/entity"
)

func TestRecorderSnapshot(t *testing.T) {
	recorder := NewRecorder(slog.New(slog.NewTextHandler(io.Discard, nil)))
	if snapshot := recorder.Snapshot(); snapshot.Analyses != 0 {
		t.Fatalf("expected empty snapshot, got %+v", snapshot)
	}

	recorder.RecordAnalysis(&entity.FluencyReport{
		PauseCount:      2,
		RepetitionCount: 1,
		FillerCount:     3,
		FluencyScore:    80,
		Warnings:        []entity.Warning{entity.WarningMissingTimestamps},
	}, 3*time.Millisecond)
	recorder.RecordAnalysis(&entity.FluencyReport{FluencyScore: 90}, time.Millisecond)
	recorder.RecordFailure(errors.New("empty transcription"), true)
	recorder.RecordFailure(errors.New("storage down"), false)

	snapshot := recorder.Snapshot()
	want := Snapshot{
		Analyses:         2,
		Failures:         2,
		EmptyTranscripts: 1,
		Warnings:         1,
		Pauses:           2,
		Repetitions:      1,
		Fillers:          3,
		AverageScore:     85,
	}
	if snapshot != want {
		t.Fatalf("unexpected snapshot %+v, want %+v", snapshot, want)
	}

	recorder.LogSummary()
}

func TestRecorderConcurrent(t *testing.T) {
	recorder := NewRecorder(nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			recorder.RecordAnalysis(&entity.FluencyReport{PauseCount: 1, FluencyScore: 100}, 0)
		}()
	}
	wg.Wait()

	if snapshot := recorder.Snapshot(); snapshot.Analyses != 50 || snapshot.Pauses != 50 {
		t.Fatalf("unexpected totals %+v", snapshot)
	}
}

func TestNilRecorder(t *testing.T) {
	var recorder *Recorder
	recorder.RecordAnalysis(&entity.FluencyReport{}, 0)
	recorder.RecordFailure(errors.New("x"), false)
	recorder.LogSummary()
	if snapshot := recorder.Snapshot(); snapshot != (Snapshot{}) {
		t.Fatalf("expected zero snapshot, got %+v", snapshot)
	}
}
