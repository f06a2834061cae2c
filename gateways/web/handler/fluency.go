package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/eduvox/backend/gateways/web/middleware"
	"github.com/eduvox/backend/pkg/json"
	fluency "github.com/eduvox/backend/services/fluency/entity"
)

type (
	WordTiming struct {
		Word  string  `json:"word"`
		Start float64 `json:"start" validate:"gte=0"`
		End   float64 `json:"end" validate:"gte=0"`
	}

	Segment struct {
		Start float64      `json:"start" validate:"gte=0"`
		End   float64      `json:"end" validate:"gte=0"`
		Text  string       `json:"text"`
		Words []WordTiming `json:"words" validate:"dive"`
	}

	AnalyzeRequest struct {
		Source         string    `json:"source" validate:"max=256"`
		Duration       float64   `json:"duration" validate:"gte=0"`
		Text           string    `json:"text"`
		Segments       []Segment `json:"segments" validate:"dive"`
		PauseThreshold float64   `json:"pause_threshold" validate:"gte=0"`
	}

	ListReportsResponse struct {
		Reports []*fluency.Report `json:"reports"`
	}
)

func (req *AnalyzeRequest) transcription() fluency.Transcription {
	segments := make([]fluency.TranscriptSegment, 0, len(req.Segments))
	for _, seg := range req.Segments {
		words := make([]fluency.WordTiming, 0, len(seg.Words))
		for _, w := range seg.Words {
			words = append(words, fluency.WordTiming{Word: w.Word, Start: w.Start, End: w.End})
		}
		segments = append(segments, fluency.TranscriptSegment{
			Start: seg.Start,
			End:   seg.End,
			Text:  seg.Text,
			Words: words,
		})
	}

	return fluency.Transcription{
		Text:     req.Text,
		Segments: segments,
		Duration: req.Duration,
	}
}

func (h *Handler) AnalyzeHandler(w http.ResponseWriter, r *http.Request) {
	req := &AnalyzeRequest{}
	if err := h.decode(r, req); err != nil {
		h.writeError(w, r, err)
		return
	}

	source := req.Source
	if source == "" {
		source = "upload"
	}

	report, err := h.fluency.Analyze(r.Context(), &fluency.AnalyzeRequest{
		OwnerID:        middleware.Owner(r.Context()),
		Source:         source,
		Transcription:  req.transcription(),
		PauseThreshold: req.PauseThreshold,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	json.WriteJSON(w, http.StatusCreated, report)
}

func (h *Handler) ListReportsHandler(w http.ResponseWriter, r *http.Request) {
	res, err := h.fluency.ListReports(r.Context(), &fluency.ListReportsRequest{
		OwnerID: middleware.Owner(r.Context()),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	json.WriteJSON(w, http.StatusOK, ListReportsResponse{Reports: res.Reports})
}

func (h *Handler) GetReportHandler(w http.ResponseWriter, r *http.Request) {
	report, err := h.fluency.GetReport(r.Context(), &fluency.GetReportRequest{
		ID:      chi.URLParam(r, "id"),
		OwnerID: middleware.Owner(r.Context()),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	json.WriteJSON(w, http.StatusOK, report)
}
