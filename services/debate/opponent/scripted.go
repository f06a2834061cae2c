// Package opponent holds the offline debate opponent used when no language
// model is configured, and in tests.
package opponent

import (
	"context"

	"github.com/eduvox/backend/services/debate/entity"
)

const (
	scriptedOpening  = "This is a simulated AI opening statement. I would like to present three key arguments. First, evidence suggests this position has merit. Second, multiple studies confirm these findings. Third, we should consider the broader implications."
	scriptedArgument = "Here's my counterpoint: While that position has some validity, recent evidence suggests otherwise. Consider the following facts that challenge this assumption."
	scriptedQuestion = "How do you reconcile your position with the recent findings that suggest an alternative interpretation of the data?"
	scriptedResponse = "I acknowledge your points and would like to respond with a thoughtful consideration of the evidence presented."
	scriptedClosing  = "In closing, the evidence presented today supports my position. I thank my opponent for a spirited exchange and ask you to weigh the arguments carefully."
)

// Scripted answers every prompt with a canned line and derives coaching
// feedback from the report numbers.
type Scripted struct{}

func NewScripted() *Scripted {
	return &Scripted{}
}

func (Scripted) Argue(ctx context.Context, topic string, stance entity.Stance, stage entity.Stage) (string, error) {
	switch stage {
	case entity.StageOpening:
		return scriptedOpening, nil
	case entity.StageClosing:
		return scriptedClosing, nil
	default:
		return scriptedArgument, nil
	}
}

func (Scripted) Respond(ctx context.Context, topic string, stance entity.Stance, userText string) (string, error) {
	return scriptedResponse, nil
}

func (Scripted) Question(ctx context.Context, topic string, stance entity.Stance) (string, error) {
	return scriptedQuestion, nil
}

func (Scripted) Feedback(ctx context.Context, report *entity.Report) (*entity.Feedback, error) {
	fb := &entity.Feedback{
		Strengths:    []string{},
		Improvements: []string{},
	}

	userTurns := 0
	for _, turn := range report.DebateFlow {
		if turn.Speaker == entity.SpeakerUser {
			userTurns++
		}
	}

	if report.Status == entity.StatusComplete {
		fb.Strengths = append(fb.Strengths, "You completed every stage of the debate")
	} else {
		fb.Improvements = append(fb.Improvements, "Finish all stages to get a complete assessment")
	}

	if userTurns > 0 && report.WordCount.UserTotal/userTurns >= 40 {
		fb.Strengths = append(fb.Strengths, "You developed your arguments in detail")
	}
	if report.WordCount.UserTotal < report.WordCount.AITotal {
		fb.Improvements = append(fb.Improvements, "Develop your points further, your opponent used more words than you")
	}
	if len(report.RebuttalQuestions.User) > 0 {
		fb.Strengths = append(fb.Strengths, "You challenged your opponent with rebuttal questions")
	}

	if va := report.VoiceAnalysis; va != nil && va.AnalysedTurns > 0 {
		if va.AverageFluencyScore >= 70 {
			fb.Strengths = append(fb.Strengths, "Your delivery was fluent")
		} else {
			fb.Improvements = append(fb.Improvements, "Work on delivery by reducing pauses and filler words")
		}
	}

	return fb, nil
}
