package opponent

import (
	"context"
	"strings"
	"testing"

	"github.com/eduvox/backend/services/debate/entity"
)

func TestScriptedLines(t *testing.T) {
	ctx := context.Background()
	o := NewScripted()

	opening, _ := o.Argue(ctx, "topic", entity.StanceFor, entity.StageOpening)
	if !strings.HasPrefix(opening, "This is a simulated AI opening statement") {
		t.Fatalf("unexpected opening %q", opening)
	}
	argument, _ := o.Argue(ctx, "topic", entity.StanceFor, entity.StageArgument)
	if !strings.HasPrefix(argument, "Here's my counterpoint") {
		t.Fatalf("unexpected argument %q", argument)
	}
	question, _ := o.Question(ctx, "topic", entity.StanceFor)
	if !strings.HasSuffix(question, "?") {
		t.Fatalf("expected a question, got %q", question)
	}
	closing, _ := o.Argue(ctx, "topic", entity.StanceFor, entity.StageClosing)
	if closing == opening || closing == "" {
		t.Fatalf("unexpected closing %q", closing)
	}
}

func TestScriptedFeedback(t *testing.T) {
	tests := []struct {
		name             string
		report           *entity.Report
		wantStrengths    []string
		wantImprovements []string
	}{
		{
			name: "complete and fluent",
			report: &entity.Report{
				Status:            entity.StatusComplete,
				DebateFlow:        []entity.Turn{{Speaker: entity.SpeakerUser}, {Speaker: entity.SpeakerAI}},
				WordCount:         entity.WordCount{UserTotal: 60, AITotal: 20},
				RebuttalQuestions: entity.RebuttalQuestions{User: []string{"why?"}},
				VoiceAnalysis:     &entity.VoiceAnalysis{AnalysedTurns: 1, AverageFluencyScore: 85},
			},
			wantStrengths: []string{
				"You completed every stage of the debate",
				"You developed your arguments in detail",
				"You challenged your opponent with rebuttal questions",
				"Your delivery was fluent",
			},
			wantImprovements: []string{},
		},
		{
			name: "incomplete and brief",
			report: &entity.Report{
				Status:        entity.StatusIncomplete,
				DebateFlow:    []entity.Turn{{Speaker: entity.SpeakerUser}, {Speaker: entity.SpeakerAI}},
				WordCount:     entity.WordCount{UserTotal: 5, AITotal: 30},
				VoiceAnalysis: &entity.VoiceAnalysis{AnalysedTurns: 1, AverageFluencyScore: 40},
			},
			wantStrengths: []string{},
			wantImprovements: []string{
				"Finish all stages to get a complete assessment",
				"Develop your points further, your opponent used more words than you",
				"Work on delivery by reducing pauses and filler words",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fb, err := NewScripted().Feedback(context.Background(), tc.report)
			if err != nil {
				t.Fatalf("Feedback() returned error: %v", err)
			}
			if strings.Join(fb.Strengths, "|") != strings.Join(tc.wantStrengths, "|") {
				t.Fatalf("unexpected strengths %q", fb.Strengths)
			}
			if strings.Join(fb.Improvements, "|") != strings.Join(tc.wantImprovements, "|") {
				t.Fatalf("unexpected improvements %q", fb.Improvements)
			}
		})
	}
}
