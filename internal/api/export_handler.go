package api

import (
	"net/http"
	"strconv"

	"github.com/remaimber-it/flashcards/internal/history"
)

// ── Request / Response types ────────────────────────────────────────────────

type HistoryResponse struct {
	Questions []history.QuestionStats `json:"questions"`
	Entries   int                     `json:"entries"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// getHistory returns per-question statistics.
// @Summary      Answer history
// @Description  Per-question attempt counts and mastery, in the order questions were first answered.
// @Tags         History
// @Produce      json
// @Success      200  {object}  HistoryResponse
// @Router       /history [get]
func (h *Handler) getHistory(w http.ResponseWriter, r *http.Request) {
	stats := h.quiz.Stats()
	entries := 0
	for _, s := range stats {
		entries += s.TimesAnswered
	}
	respondJSON(w, http.StatusOK, HistoryResponse{Questions: stats, Entries: entries})
}

// exportHistory downloads the full history as a JSON file.
// @Summary      Export history
// @Tags         History
// @Produce      json
// @Success      200  {file}    file
// @Failure      500  {object}  errorResponse
// @Router       /history/export [get]
func (h *Handler) exportHistory(w http.ResponseWriter, r *http.Request) {
	export, err := h.quiz.Export()
	if h.handleServiceError(w, err, "history") {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename="+strconv.Quote(export.Filename))
	w.WriteHeader(http.StatusOK)
	w.Write(export.Data)
}
