package render

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/eduvox/backend/services/fluency/entity"
)

func TestRenderFullReport(t *testing.T) {
	report := &entity.FluencyReport{
		Transcript:      "This is a test test of the system",
		WordCount:       8,
		WordsPerMinute:  48,
		RateCategory:    entity.RateSlow,
		Pauses:          []entity.PauseEvent{},
		RepetitionCount: 1,
		FluencyScore:    84,
	}

	want := `
Speech Analysis Report:
==========================
Transcription: "This is a test test of the system"

Basic Metrics:
- Total Words: 8 words
- Speech Rate: 48.0 words per minute (Slow)
- Number of Pauses: 0
- Stammering/Repetitions: 1
- Filler Words: 0

Fluency Score: 84/100

Detailed Analysis:

Interpretation:
- 90-100: Excellent Fluency (minimal pauses or repetitions)
- 70-89: Good Fluency (occasional pauses/repetitions)
- 50-69: Moderate Fluency (noticeable pauses/repetitions)
- Below 50: Significant fluency challenges

Your Score: 84/100 - Good Fluency

Recommendations:
- Try to increase your speaking pace slightly
`
	if diff := cmp.Diff(want, Render(report)); diff != "" {
		t.Fatalf("unexpected rendering (-want +got):\n%s", diff)
	}
}

func TestRenderPauseDetails(t *testing.T) {
	pauses := []entity.PauseEvent{
		{Duration: 0.6, Position: "between 'a' and 'b'"},
		{Duration: 1, Position: "between 'b' and 'c'"},
		{Duration: 1.25, Position: "between 'c' and 'd'"},
		{Duration: 0.9, Position: "between 'd' and 'e'"},
		{Duration: 0.7, Position: "between 'e' and 'f'"},
	}
	report := &entity.FluencyReport{
		Transcript:      "a b c d e f",
		WordCount:       6,
		WordsPerMinute:  240,
		RateCategory:    entity.RateVeryFast,
		Pauses:          pauses,
		PauseCount:      len(pauses),
		RepetitionCount: 3,
		FillerCount:     4,
		FluencyScore:    30,
	}

	got := Render(report)

	for _, line := range []string{
		"\nPause Details:\n",
		"  • 0.6s pause between 'a' and 'b'\n",
		"  • 1.0s pause between 'b' and 'c'\n",
		"  • 1.25s pause between 'c' and 'd'\n",
		"  • ...and 2 more pauses\n",
		"- Speech Rate: 240.0 words per minute (Very Fast)\n",
		"Your Score: 30/100 - Needs Improvement\n",
	} {
		if !strings.Contains(got, line) {
			t.Errorf("rendering is missing %q", line)
		}
	}
	if strings.Contains(got, "between 'd' and 'e'") {
		t.Errorf("only the first three pauses should be listed")
	}

	wantRecs := "\nRecommendations:\n" +
		"- Practice with prepared speech to reduce pauses\n" +
		"- Try speaking slightly slower to reduce repetitions\n" +
		"- Be conscious of filler words and practice replacing them with pauses\n" +
		"- Consider slowing down slightly for better clarity\n"
	if !strings.HasSuffix(got, wantRecs) {
		t.Errorf("unexpected recommendations block:\n%s", got[strings.Index(got, "\nRecommendations:"):])
	}
}

func TestBand(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{100, BandExcellent},
		{90, BandExcellent},
		{89, BandGood},
		{70, BandGood},
		{69, BandModerate},
		{50, BandModerate},
		{49, BandWeak},
		{0, BandWeak},
	}

	for _, tc := range tests {
		if got := Band(tc.score); got != tc.want {
			t.Errorf("Band(%d) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestRecommendationsThresholds(t *testing.T) {
	report := &entity.FluencyReport{
		PauseCount:      2,
		RepetitionCount: 2,
		FillerCount:     3,
		WordsPerMinute:  80,
	}
	if recs := Recommendations(report); len(recs) != 0 {
		t.Fatalf("expected no recommendations at the thresholds, got %v", recs)
	}

	report.WordsPerMinute = 200
	if recs := Recommendations(report); len(recs) != 0 {
		t.Fatalf("expected no recommendations at 200 wpm, got %v", recs)
	}
}
