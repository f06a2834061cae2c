package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/eduvox/backend/pkg/gen"
	"github.com/eduvox/backend/pkg/logger"
	"github.com/eduvox/backend/services/debate/consts"
	"github.com/eduvox/backend/services/debate/entity"
	"github.com/eduvox/backend/services/debate/storage"
	fluency "github.com/eduvox/backend/services/fluency/entity"
)

var (
	ErrInvalidRequest  = errors.New("invalid request")
	ErrSessionFinished = errors.New("debate session is finished")
)

// Opponent produces the AI side of a debate.
type Opponent interface {
	Argue(ctx context.Context, topic string, stance entity.Stance, stage entity.Stage) (string, error)
	Respond(ctx context.Context, topic string, stance entity.Stance, userText string) (string, error)
	Question(ctx context.Context, topic string, stance entity.Stance) (string, error)
	Feedback(ctx context.Context, report *entity.Report) (*entity.Feedback, error)
}

// Analyzer scores spoken turns.
type Analyzer interface {
	Analyze(ctx context.Context, req *fluency.AnalyzeRequest) (*fluency.Report, error)
}

type Usecase interface {
	Create(ctx context.Context, req *entity.CreateRequest) (*entity.Session, error)
	Get(ctx context.Context, req *entity.GetRequest) (*entity.Session, error)
	Turn(ctx context.Context, req *entity.TurnRequest) (*entity.TurnResponse, error)
	Finish(ctx context.Context, req *entity.FinishRequest) (*entity.Report, error)
}

type usecase struct {
	storage  storage.Storage
	opponent Opponent
	analyzer Analyzer

	ids              gen.IDGenerator
	now              func() time.Time
	defaultRebuttals int

	locks sync.Map
}

type Option func(*usecase)

func WithIDs(ids gen.IDGenerator) Option {
	return func(u *usecase) { u.ids = ids }
}

func WithClock(now func() time.Time) Option {
	return func(u *usecase) { u.now = now }
}

// WithDefaultRebuttalQuestions sets the rebuttal count used when a request leaves it out.
func WithDefaultRebuttalQuestions(n int) Option {
	return func(u *usecase) { u.defaultRebuttals = n }
}

// New wires a debate usecase. analyzer may be nil, in which case voice turns
// are recorded without fluency metrics.
func New(storage storage.Storage, opponent Opponent, analyzer Analyzer, opts ...Option) Usecase {
	u := &usecase{
		storage:          storage,
		opponent:         opponent,
		analyzer:         analyzer,
		ids:              gen.UUID(),
		now:              time.Now,
		defaultRebuttals: consts.DefaultRebuttalQuestions,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *usecase) Create(ctx context.Context, req *entity.CreateRequest) (*entity.Session, error) {
	if req == nil || req.OwnerID == "" {
		return nil, fmt.Errorf("%w: owner is required", ErrInvalidRequest)
	}

	topic := strings.TrimSpace(req.Topic)
	if len([]rune(topic)) < consts.MinTopicLength {
		return nil, fmt.Errorf("%w: topic must be at least %d characters", ErrInvalidRequest, consts.MinTopicLength)
	}

	stance, err := parseStance(req.Stance)
	if err != nil {
		return nil, err
	}

	if req.Rounds < consts.MinRounds || req.Rounds > consts.MaxRounds {
		return nil, fmt.Errorf("%w: rounds must be between %d and %d", ErrInvalidRequest, consts.MinRounds, consts.MaxRounds)
	}

	rebuttals := req.RebuttalQuestions
	if rebuttals == 0 {
		rebuttals = u.defaultRebuttals
	}
	if rebuttals < consts.MinRebuttalQuestions || rebuttals > consts.MaxRebuttalQuestions {
		return nil, fmt.Errorf("%w: rebuttal questions must be between %d and %d",
			ErrInvalidRequest, consts.MinRebuttalQuestions, consts.MaxRebuttalQuestions)
	}

	mode := req.Mode
	if mode == "" {
		mode = entity.ModeText
	}
	if mode != entity.ModeText && mode != entity.ModeVoice {
		return nil, fmt.Errorf("%w: unknown mode %q", ErrInvalidRequest, mode)
	}

	now := u.now().UTC()
	session := &entity.Session{
		ID:                u.ids.Next(),
		OwnerID:           req.OwnerID,
		Topic:             topic,
		UserStance:        stance,
		AIStance:          stance.Opposite(),
		Mode:              mode,
		Rounds:            req.Rounds,
		RebuttalQuestions: rebuttals,
		Stage:             entity.StageOpening,
		Status:            entity.StatusActive,
		History:           []entity.Turn{},
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := u.storage.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	logger.FromContext(ctx).Info("debate created",
		"session_id", session.ID,
		"mode", string(session.Mode),
		"rounds", session.Rounds,
	)

	return session, nil
}

func (u *usecase) Get(ctx context.Context, req *entity.GetRequest) (*entity.Session, error) {
	if req == nil || req.ID == "" {
		return nil, fmt.Errorf("%w: session id is required", ErrInvalidRequest)
	}
	return u.load(ctx, req.ID, req.OwnerID)
}

func (u *usecase) Turn(ctx context.Context, req *entity.TurnRequest) (*entity.TurnResponse, error) {
	log := logger.FromContext(ctx)

	if req == nil || req.SessionID == "" {
		return nil, fmt.Errorf("%w: session id is required", ErrInvalidRequest)
	}

	mu := u.lock(req.SessionID)
	mu.Lock()
	defer mu.Unlock()

	session, err := u.load(ctx, req.SessionID, req.OwnerID)
	if err != nil {
		return nil, err
	}
	if session.Status != entity.StatusActive {
		return nil, ErrSessionFinished
	}

	text := strings.TrimSpace(req.Text)
	if session.Mode == entity.ModeVoice {
		if req.Transcription == nil {
			return nil, fmt.Errorf("%w: voice turns need a transcription", ErrInvalidRequest)
		}
		if text == "" {
			text = strings.TrimSpace(req.Transcription.Text)
		}
	}
	if text == "" {
		return nil, fmt.Errorf("%w: turn text is required", ErrInvalidRequest)
	}

	stage := session.Stage
	limit := consts.WordLimits[stage]

	userText, truncated := EnforceWordLimit(text, limit)
	userTurn := entity.Turn{
		Speaker:   entity.SpeakerUser,
		Stage:     stage,
		Text:      userText,
		WordCount: WordCount(userText),
		Truncated: truncated,
		Timestamp: u.now().UTC(),
	}

	if session.Mode == entity.ModeVoice {
		userTurn.SpokenSeconds = spokenSeconds(req.Transcription)
		userTurn.OverTimeLimit = userTurn.SpokenSeconds > consts.TimeLimits[stage].Seconds()
		userTurn.Fluency = u.analyze(ctx, session, req.Transcription)
	}

	reply, err := u.reply(ctx, session, userText)
	if err != nil {
		log.Error("failed to generate opponent turn", "session_id", session.ID, "error", err)
		return nil, fmt.Errorf("failed to generate opponent turn: %w", err)
	}
	replyText, replyTruncated := EnforceWordLimit(strings.TrimSpace(reply), limit)
	aiTurn := entity.Turn{
		Speaker:   entity.SpeakerAI,
		Stage:     stage,
		Text:      replyText,
		WordCount: WordCount(replyText),
		Truncated: replyTruncated,
		Timestamp: u.now().UTC(),
	}

	session.History = append(session.History, userTurn, aiTurn)
	advance(session)
	session.UpdatedAt = u.now().UTC()

	if err := u.storage.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	log.Debug("debate turn recorded",
		"session_id", session.ID,
		"stage", string(stage),
		"next_stage", string(session.Stage),
		"status", string(session.Status),
	)

	return &entity.TurnResponse{
		UserTurn: userTurn,
		AITurn:   aiTurn,
		Session:  session,
	}, nil
}

func (u *usecase) Finish(ctx context.Context, req *entity.FinishRequest) (*entity.Report, error) {
	log := logger.FromContext(ctx)

	if req == nil || req.ID == "" {
		return nil, fmt.Errorf("%w: session id is required", ErrInvalidRequest)
	}

	mu := u.lock(req.ID)
	mu.Lock()
	defer mu.Unlock()

	session, err := u.load(ctx, req.ID, req.OwnerID)
	if err != nil {
		return nil, err
	}
	if session.Report != nil {
		return session.Report, nil
	}

	if session.Status == entity.StatusActive {
		session.Status = entity.StatusIncomplete
	}

	report := BuildReport(session, u.now().UTC())
	if u.opponent != nil {
		feedback, err := u.opponent.Feedback(ctx, report)
		if err != nil {
			log.Warn("failed to get coach feedback", "session_id", session.ID, "error", err)
		} else {
			report.Feedback = feedback
		}
	}

	session.Report = report
	session.UpdatedAt = u.now().UTC()
	if err := u.storage.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	log.Info("debate finished",
		"session_id", session.ID,
		"status", string(report.Status),
		"rounds_completed", report.RoundsCompleted,
	)

	return report, nil
}

func (u *usecase) load(ctx context.Context, id, ownerID string) (*entity.Session, error) {
	session, err := u.storage.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if ownerID != "" && session.OwnerID != ownerID {
		return nil, storage.ErrSessionNotFound
	}
	return session, nil
}

func (u *usecase) lock(id string) *sync.Mutex {
	mu, _ := u.locks.LoadOrStore(id, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// reply asks the opponent for the answer to the user's turn in the current stage.
// Arguments alternate between a fresh argument and a direct response; rebuttal
// turns alternate between answering the user's question and asking one back.
func (u *usecase) reply(ctx context.Context, session *entity.Session, userText string) (string, error) {
	turn := session.StageTurns + 1

	switch session.Stage {
	case entity.StageOpening, entity.StageClosing:
		return u.opponent.Argue(ctx, session.Topic, session.AIStance, session.Stage)
	case entity.StageArgument:
		if turn%2 == 1 {
			return u.opponent.Argue(ctx, session.Topic, session.AIStance, session.Stage)
		}
		return u.opponent.Respond(ctx, session.Topic, session.AIStance, userText)
	case entity.StageRebuttalQuestions:
		if turn%2 == 1 {
			return u.opponent.Respond(ctx, session.Topic, session.AIStance, userText)
		}
		return u.opponent.Question(ctx, session.Topic, session.AIStance)
	default:
		return "", fmt.Errorf("unknown stage %q", session.Stage)
	}
}

// analyze scores a spoken turn. Failures are logged and leave the turn without metrics.
func (u *usecase) analyze(ctx context.Context, session *entity.Session, tr *fluency.Transcription) *fluency.FluencyReport {
	if u.analyzer == nil {
		return nil
	}

	report, err := u.analyzer.Analyze(ctx, &fluency.AnalyzeRequest{
		OwnerID:       session.OwnerID,
		Source:        "debate:" + session.ID,
		Transcription: *tr,
	})
	if err != nil {
		logger.FromContext(ctx).Warn("failed to analyse voice turn",
			"session_id", session.ID,
			"error", err,
		)
		return nil
	}

	return &report.Fluency
}

func advance(session *entity.Session) {
	session.StageTurns++

	next := func(stage entity.Stage) {
		session.Stage = stage
		session.StageTurns = 0
	}

	switch session.Stage {
	case entity.StageOpening:
		next(entity.StageArgument)
	case entity.StageArgument:
		if session.StageTurns >= session.Rounds {
			next(entity.StageRebuttalQuestions)
		}
	case entity.StageRebuttalQuestions:
		if session.StageTurns >= session.RebuttalQuestions {
			next(entity.StageClosing)
		}
	case entity.StageClosing:
		session.Status = entity.StatusComplete
	}
}

func parseStance(value string) (entity.Stance, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "for":
		return entity.StanceFor, nil
	case "against":
		return entity.StanceAgainst, nil
	default:
		return "", fmt.Errorf("%w: stance must be For or Against", ErrInvalidRequest)
	}
}

func spokenSeconds(tr *fluency.Transcription) float64 {
	if tr.Duration > 0 {
		return tr.Duration
	}
	if n := len(tr.Segments); n > 0 {
		return tr.Segments[n-1].End
	}
	return 0
}
