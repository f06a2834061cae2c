package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	fluencyClient "github.com/eduvox/backend/gateways/web/clients/fluency"
	"github.com/eduvox/backend/gateways/web/middleware"
	"github.com/eduvox/backend/pkg/json"
	debate "github.com/eduvox/backend/services/debate/usecase"
	"github.com/eduvox/backend/services/debate/storage"
	fluency "github.com/eduvox/backend/services/fluency/entity"
)

// FluencyClient is the part of the fluency service the gateway talks to.
type FluencyClient interface {
	Analyze(ctx context.Context, req *fluency.AnalyzeRequest) (*fluency.Report, error)
	GetReport(ctx context.Context, req *fluency.GetReportRequest) (*fluency.Report, error)
	ListReports(ctx context.Context, req *fluency.ListReportsRequest) (*fluency.ListReportsResponse, error)
}

type Handler struct {
	fluency  FluencyClient
	debates  debate.Usecase
	validate *validator.Validate
	log      *slog.Logger
}

func New(fluency FluencyClient, debates debate.Usecase, log *slog.Logger) *Handler {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return &Handler{
		fluency:  fluency,
		debates:  debates,
		validate: validate,
		log:      log,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.HealthCheck)

	r.Route("/fluency", func(fluencyRouter chi.Router) {
		fluencyRouter.Post("/analyze", h.AnalyzeHandler)
		fluencyRouter.Get("/reports", h.ListReportsHandler)
		fluencyRouter.Get("/reports/{id}", h.GetReportHandler)
	})

	r.Route("/debates", func(debateRouter chi.Router) {
		debateRouter.Post("/", h.CreateDebateHandler)
		debateRouter.Get("/{id}", h.GetDebateHandler)
		debateRouter.Post("/{id}/turns", h.TurnHandler)
		debateRouter.Post("/{id}/turns/stream", h.StreamTurnHandler)
		debateRouter.Post("/{id}/finish", h.FinishDebateHandler)
	})
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	json.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// decode parses and validates a request body.
func (h *Handler) decode(r *http.Request, req any) error {
	if err := json.ParseJSON(r, req); err != nil {
		return &requestError{msg: "cannot parse request body: " + err.Error()}
	}
	if err := h.validate.Struct(req); err != nil {
		return &requestError{msg: formatValidationErrors(err)}
	}
	return nil
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		h.log.Error("request failed",
			slog.String("path", r.URL.Path),
			slog.String("request_id", middleware.RequestID(r.Context())),
			slog.String("error", err.Error()))
		json.WriteError(w, code, errors.New("internal error"))
		return
	}
	json.WriteError(w, code, err)
}

func statusFor(err error) int {
	var reqErr *requestError
	switch {
	case errors.As(err, &reqErr),
		errors.Is(err, fluencyClient.ErrInvalidArgument),
		errors.Is(err, debate.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, fluencyClient.ErrNotFound),
		errors.Is(err, storage.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, debate.ErrSessionFinished):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
