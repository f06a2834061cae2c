package usecase

import (
	"math"
	"time"

	"github.com/eduvox/backend/services/debate/entity"
)

// BuildReport summarises a session. Feedback is left for the caller.
func BuildReport(session *entity.Session, now time.Time) *entity.Report {
	report := &entity.Report{
		Topic:      session.Topic,
		UserStance: session.UserStance,
		AIStance:   session.AIStance,
		Status:     session.Status,
		TotalTurns: len(session.History),
		DebateFlow: append([]entity.Turn{}, session.History...),
		RebuttalQuestions: entity.RebuttalQuestions{
			User: []string{},
			AI:   []string{},
		},
		GeneratedAt: now,
	}

	userArguments := 0
	for _, turn := range session.History {
		switch turn.Speaker {
		case entity.SpeakerUser:
			report.WordCount.UserTotal += turn.WordCount
			if turn.Stage == entity.StageArgument {
				userArguments++
			}
		case entity.SpeakerAI:
			report.WordCount.AITotal += turn.WordCount
		}

		if turn.Stage == entity.StageRebuttalQuestions {
			if turn.Speaker == entity.SpeakerUser {
				report.RebuttalQuestions.User = append(report.RebuttalQuestions.User, turn.Text)
			} else {
				report.RebuttalQuestions.AI = append(report.RebuttalQuestions.AI, turn.Text)
			}
		}
	}

	report.RoundsCompleted = min(session.Rounds, userArguments)
	if report.TotalTurns > 0 {
		total := report.WordCount.UserTotal + report.WordCount.AITotal
		report.WordCount.AveragePerTurn = round1(float64(total) / float64(report.TotalTurns))
	}

	if session.Mode == entity.ModeVoice {
		report.VoiceAnalysis = voiceAnalysis(session.History)
	}

	return report
}

func voiceAnalysis(history []entity.Turn) *entity.VoiceAnalysis {
	va := &entity.VoiceAnalysis{}

	var scoreSum, wpmSum float64
	for _, turn := range history {
		if turn.Speaker != entity.SpeakerUser || turn.Fluency == nil {
			continue
		}
		va.AnalysedTurns++
		scoreSum += float64(turn.Fluency.FluencyScore)
		wpmSum += turn.Fluency.WordsPerMinute
		va.TotalPauses += turn.Fluency.PauseCount
		va.TotalRepetitions += turn.Fluency.RepetitionCount
		va.TotalFillerWords += turn.Fluency.FillerCount
	}

	if va.AnalysedTurns > 0 {
		va.AverageFluencyScore = round1(scoreSum / float64(va.AnalysedTurns))
		va.AverageWordsPerMinute = round1(wpmSum / float64(va.AnalysedTurns))
	}
	return va
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
