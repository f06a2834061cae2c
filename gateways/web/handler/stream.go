package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/eduvox/backend/gateways/web/middleware"
	"github.com/eduvox/backend/services/debate/entity"
)

// wordsPerChunk controls how much of the opponent's reply each streamed line carries.
const wordsPerChunk = 5

type StreamChunk struct {
	Content string          `json:"content"`
	IsEnd   bool            `json:"is_end"`
	Session *entity.Session `json:"session,omitempty"`
}

// StreamTurnHandler records a turn like TurnHandler and streams the opponent's
// reply back as newline-delimited JSON chunks. The final chunk carries the
// updated session.
func (h *Handler) StreamTurnHandler(w http.ResponseWriter, r *http.Request) {
	req := &TurnRequest{}
	if err := h.decode(r, req); err != nil {
		h.writeError(w, r, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	res, err := h.debates.Turn(r.Context(), req.toEntity(chi.URLParam(r, "id"), middleware.Owner(r.Context())))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/x-ndjson")
	w.WriteHeader(http.StatusOK)

	enc := json.NewEncoder(w)
	words := strings.Fields(res.AITurn.Text)
	for i := 0; i < len(words); i += wordsPerChunk {
		if r.Context().Err() != nil {
			return
		}

		end := min(i+wordsPerChunk, len(words))
		content := strings.Join(words[i:end], " ")
		if end < len(words) {
			content += " "
		}

		_ = enc.Encode(StreamChunk{Content: content})
		flusher.Flush()
	}

	_ = enc.Encode(StreamChunk{IsEnd: true, Session: res.Session})
	flusher.Flush()
}
