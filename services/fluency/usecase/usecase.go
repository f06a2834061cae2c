package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	config "github.com/eduvox/backend/config/fluency"
	"github.com/eduvox/backend/pkg/gen"
	"github.com/eduvox/backend/pkg/logger"
	"github.com/eduvox/backend/services/fluency/analysis"
	"github.com/eduvox/backend/services/fluency/entity"
	"github.com/eduvox/backend/services/fluency/render"
	"github.com/eduvox/backend/services/fluency/storage"
	"github.com/eduvox/backend/services/fluency/telemetry"
)

var ErrInvalidRequest = errors.New("invalid request")

type Usecase interface {
	Analyze(ctx context.Context, req *entity.AnalyzeRequest) (*entity.AnalyzeResponse, error)
	GetReport(ctx context.Context, req *entity.GetReportRequest) (*entity.Report, error)
	ListReports(ctx context.Context, req *entity.ListReportsRequest) (*entity.ListReportsResponse, error)
}

type usecase struct {
	cfg      *config.Config
	storage  storage.Storage
	recorder *telemetry.Recorder
	ids      gen.IDGenerator
	now      func() time.Time
}

type Option func(*usecase)

func WithIDs(ids gen.IDGenerator) Option {
	return func(u *usecase) { u.ids = ids }
}

func WithClock(now func() time.Time) Option {
	return func(u *usecase) { u.now = now }
}

func New(cfg *config.Config, storage storage.Storage, recorder *telemetry.Recorder, opts ...Option) Usecase {
	u := &usecase{
		cfg:      cfg,
		storage:  storage,
		recorder: recorder,
		ids:      gen.UUID(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *usecase) Analyze(ctx context.Context, req *entity.AnalyzeRequest) (*entity.AnalyzeResponse, error) {
	log := logger.FromContext(ctx)

	if req == nil || req.OwnerID == "" {
		return nil, fmt.Errorf("%w: owner is required", ErrInvalidRequest)
	}
	if req.PauseThreshold < 0 {
		return nil, fmt.Errorf("%w: pause threshold must not be negative", ErrInvalidRequest)
	}

	threshold := req.PauseThreshold
	if threshold == 0 {
		threshold = u.cfg.PauseThreshold
	}

	started := time.Now()
	fluency, err := analysis.Analyze(req.Transcription, analysis.Options{PauseThreshold: threshold})
	if err != nil {
		u.recorder.RecordFailure(err, errors.Is(err, analysis.ErrEmptyTranscript))
		return nil, err
	}

	report := &entity.Report{
		ID:        u.ids.Next(),
		OwnerID:   req.OwnerID,
		Source:    req.Source,
		CreatedAt: u.now().UTC(),
		Fluency:   *fluency,
		Rendered:  render.Render(fluency),
	}

	if err := u.storage.SaveReport(ctx, report); err != nil {
		u.recorder.RecordFailure(err, false)
		log.Error("failed to save report", "error", err)
		return nil, fmt.Errorf("failed to save report: %w", err)
	}
	u.recorder.RecordAnalysis(fluency, time.Since(started))

	log.Info("speech analysed",
		"report_id", report.ID,
		"owner_id", report.OwnerID,
		"score", fluency.FluencyScore,
		"rate_category", string(fluency.RateCategory),
	)

	return &entity.AnalyzeResponse{Report: report}, nil
}

func (u *usecase) GetReport(ctx context.Context, req *entity.GetReportRequest) (*entity.Report, error) {
	if req == nil || req.ID == "" {
		return nil, fmt.Errorf("%w: report id is required", ErrInvalidRequest)
	}

	report, err := u.storage.GetReport(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if req.OwnerID != "" && report.OwnerID != req.OwnerID {
		return nil, storage.ErrNotFound
	}

	return report, nil
}

func (u *usecase) ListReports(ctx context.Context, req *entity.ListReportsRequest) (*entity.ListReportsResponse, error) {
	if req == nil || req.OwnerID == "" {
		return nil, fmt.Errorf("%w: owner is required", ErrInvalidRequest)
	}

	reports, err := u.storage.ListReports(ctx, req.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}

	return &entity.ListReportsResponse{Reports: reports}, nil
}
