package entity

import (
	"time"

	fluency "github.com/eduvox/backend/services/fluency/entity"
)

type Mode string

const (
	ModeText  Mode = "text"
	ModeVoice Mode = "voice"
)

type Stage string

const (
	StageOpening           Stage = "opening"
	StageArgument          Stage = "argument"
	StageRebuttalQuestions Stage = "rebuttal_questions"
	StageClosing           Stage = "closing"
)

type Stance string

const (
	StanceFor     Stance = "For"
	StanceAgainst Stance = "Against"
)

// Opposite returns the stance the opponent argues.
func (s Stance) Opposite() Stance {
	if s == StanceFor {
		return StanceAgainst
	}
	return StanceFor
}

type Speaker string

const (
	SpeakerUser Speaker = "User"
	SpeakerAI   Speaker = "AI"
)

type Status string

const (
	StatusActive     Status = "active"
	StatusComplete   Status = "complete"
	StatusIncomplete Status = "incomplete"
)

type Turn struct {
	Speaker   Speaker   `json:"speaker"`
	Stage     Stage     `json:"stage"`
	Text      string    `json:"text"`
	WordCount int       `json:"word_count"`
	Truncated bool      `json:"truncated,omitempty"`
	Timestamp time.Time `json:"timestamp"`

	// Voice turns only.
	SpokenSeconds float64                `json:"spoken_seconds,omitempty"`
	OverTimeLimit bool                   `json:"over_time_limit,omitempty"`
	Fluency       *fluency.FluencyReport `json:"fluency,omitempty"`
}

type Session struct {
	ID                string    `json:"id"`
	OwnerID           string    `json:"owner_id"`
	Topic             string    `json:"topic"`
	UserStance        Stance    `json:"user_stance"`
	AIStance          Stance    `json:"ai_stance"`
	Mode              Mode      `json:"mode"`
	Rounds            int       `json:"rounds"`
	RebuttalQuestions int       `json:"rebuttal_questions"`
	Stage             Stage     `json:"stage"`
	StageTurns        int       `json:"stage_turns"`
	Status            Status    `json:"status"`
	History           []Turn    `json:"history"`
	Report            *Report   `json:"report,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type WordCount struct {
	UserTotal      int     `json:"user_total"`
	AITotal        int     `json:"ai_total"`
	AveragePerTurn float64 `json:"average_per_turn"`
}

type RebuttalQuestions struct {
	User []string `json:"user_questions"`
	AI   []string `json:"ai_questions"`
}

type VoiceAnalysis struct {
	AnalysedTurns         int     `json:"analysed_turns"`
	AverageFluencyScore   float64 `json:"average_fluency_score"`
	AverageWordsPerMinute float64 `json:"average_words_per_minute"`
	TotalPauses           int     `json:"total_pauses"`
	TotalRepetitions      int     `json:"total_repetitions"`
	TotalFillerWords      int     `json:"total_filler_words"`
}

type Feedback struct {
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

type Report struct {
	Topic             string            `json:"topic"`
	UserStance        Stance            `json:"user_stance"`
	AIStance          Stance            `json:"ai_stance"`
	Status            Status            `json:"status"`
	RoundsCompleted   int               `json:"rounds_completed"`
	TotalTurns        int               `json:"total_turns"`
	WordCount         WordCount         `json:"word_count"`
	DebateFlow        []Turn            `json:"debate_flow"`
	RebuttalQuestions RebuttalQuestions `json:"rebuttal_questions"`
	VoiceAnalysis     *VoiceAnalysis    `json:"voice_analysis,omitempty"`
	Feedback          *Feedback         `json:"feedback,omitempty"`
	GeneratedAt       time.Time         `json:"generated_at"`
}

type CreateRequest struct {
	OwnerID           string `json:"owner_id"`
	Topic             string `json:"topic"`
	Stance            string `json:"stance"`
	Rounds            int    `json:"rounds"`
	RebuttalQuestions int    `json:"rebuttal_questions,omitempty"`
	Mode              Mode   `json:"mode,omitempty"`
}

type GetRequest struct {
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`
}

// TurnRequest carries the user's next turn. Voice sessions send the
// transcription of the recording; its text is used when Text is empty.
type TurnRequest struct {
	SessionID     string                 `json:"session_id"`
	OwnerID       string                 `json:"owner_id"`
	Text          string                 `json:"text"`
	Transcription *fluency.Transcription `json:"transcription,omitempty"`
}

type TurnResponse struct {
	UserTurn Turn     `json:"user_turn"`
	AITurn   Turn     `json:"ai_turn"`
	Session  *Session `json:"session"`
}

type FinishRequest struct {
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`
}
