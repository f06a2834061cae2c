package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/eduvox/backend/gateways/web/middleware"
	"github.com/eduvox/backend/pkg/json"
	"github.com/eduvox/backend/services/debate/entity"
)

type (
	CreateDebateRequest struct {
		Topic             string      `json:"topic" validate:"required,min=10"`
		Stance            string      `json:"stance" validate:"required,oneof=For Against for against"`
		Rounds            int         `json:"rounds" validate:"required,min=3,max=10"`
		RebuttalQuestions int         `json:"rebuttal_questions" validate:"omitempty,min=1,max=5"`
		Mode              entity.Mode `json:"mode" validate:"omitempty,oneof=text voice"`
	}

	TurnRequest struct {
		Text          string          `json:"text" validate:"required_without=Transcription"`
		Transcription *AnalyzeRequest `json:"transcription" validate:"omitempty"`
	}
)

func (req *TurnRequest) toEntity(sessionID, owner string) *entity.TurnRequest {
	out := &entity.TurnRequest{
		SessionID: sessionID,
		OwnerID:   owner,
		Text:      req.Text,
	}
	if req.Transcription != nil {
		tr := req.Transcription.transcription()
		out.Transcription = &tr
	}
	return out
}

func (h *Handler) CreateDebateHandler(w http.ResponseWriter, r *http.Request) {
	req := &CreateDebateRequest{}
	if err := h.decode(r, req); err != nil {
		h.writeError(w, r, err)
		return
	}

	session, err := h.debates.Create(r.Context(), &entity.CreateRequest{
		OwnerID:           middleware.Owner(r.Context()),
		Topic:             req.Topic,
		Stance:            req.Stance,
		Rounds:            req.Rounds,
		RebuttalQuestions: req.RebuttalQuestions,
		Mode:              req.Mode,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	json.WriteJSON(w, http.StatusCreated, session)
}

func (h *Handler) GetDebateHandler(w http.ResponseWriter, r *http.Request) {
	session, err := h.debates.Get(r.Context(), &entity.GetRequest{
		ID:      chi.URLParam(r, "id"),
		OwnerID: middleware.Owner(r.Context()),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	json.WriteJSON(w, http.StatusOK, session)
}

func (h *Handler) TurnHandler(w http.ResponseWriter, r *http.Request) {
	req := &TurnRequest{}
	if err := h.decode(r, req); err != nil {
		h.writeError(w, r, err)
		return
	}

	res, err := h.debates.Turn(r.Context(), req.toEntity(chi.URLParam(r, "id"), middleware.Owner(r.Context())))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	json.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) FinishDebateHandler(w http.ResponseWriter, r *http.Request) {
	report, err := h.debates.Finish(r.Context(), &entity.FinishRequest{
		ID:      chi.URLParam(r, "id"),
		OwnerID: middleware.Owner(r.Context()),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	json.WriteJSON(w, http.StatusOK, report)
}
