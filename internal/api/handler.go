// internal/api/handler.go
package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/remaimber-it/flashcards/internal/service"
	"github.com/remaimber-it/flashcards/internal/source"
)

// Handler holds all dependencies needed by HTTP handlers.
// Instead of relying on package-level globals, every handler method
// receives its dependencies through this struct.
type Handler struct {
	quiz           *service.QuizService
	logger         *slog.Logger
	allowedOrigins []string
}

// NewHandler creates a Handler with the given dependencies. allowedOrigins
// governs both CORS and which pages may open a session websocket.
func NewHandler(quiz *service.QuizService, logger *slog.Logger, allowedOrigins []string) *Handler {
	return &Handler{
		quiz:           quiz,
		logger:         logger,
		allowedOrigins: allowedOrigins,
	}
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error string `json:"error"`
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Error: msg})
}

type validator interface {
	Validate() error
}

// decodeJSON decodes the request body into v. An empty body leaves v as is.
// Returns false if a response has already been written.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Body == nil {
		return true
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}

func decodeAndValidate(w http.ResponseWriter, r *http.Request, v validator) bool {
	if !decodeJSON(w, r, v) {
		return false
	}
	if err := v.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// handleServiceError checks for common service errors and writes the
// appropriate HTTP response. Returns true if an error was handled (caller
// should return).
func (h *Handler) handleServiceError(w http.ResponseWriter, err error, entity string) bool {
	if err == nil {
		return false
	}

	var srcErr *source.SourceError
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		respondError(w, http.StatusNotFound, entity+" not found")
	case errors.Is(err, service.ErrSourceUnavailable):
		respondError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, service.ErrReadOnlySource):
		respondError(w, http.StatusConflict, err.Error())
	case errors.As(err, &srcErr):
		h.logger.Error("source error", "error", err, "location", srcErr.Location)
		respondError(w, http.StatusBadGateway, "question source failed")
	default:
		h.logger.Error("service error", "error", err, "entity", entity)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
	return true
}
