package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	practicesession "github.com/remaimber-it/flashcards/internal/domain/practice_session"
)

// ── Request / Response types ────────────────────────────────────────────────

type CreateSessionRequest struct {
	MaxQuestions *int `json:"max_questions,omitempty" example:"10"`
}

func (r *CreateSessionRequest) Validate() error {
	if r.MaxQuestions != nil && *r.MaxQuestions < 0 {
		return errors.New("max_questions must be >= 0")
	}
	return nil
}

type SubmitAnswerRequest struct {
	Answer string `json:"answer" example:"Paris"`
}

// SessionResponse is a session snapshot plus whether the request changed it.
// Blank answers and out-of-turn actions are not errors; they come back with
// accepted set to false and the session unchanged.
type SessionResponse struct {
	practicesession.Snapshot
	Accepted bool `json:"accepted"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// createSession draws a new practice session.
// @Summary      Start a session
// @Description  Draws up to max_questions distinct questions (default from configuration) in random order.
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        body  body      CreateSessionRequest  false  "Draw limits"
// @Success      201   {object}  SessionResponse
// @Failure      400   {object}  errorResponse
// @Failure      503   {object}  errorResponse  "question source unavailable"
// @Router       /sessions [post]
func (h *Handler) createSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req CreateSessionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	var (
		snap practicesession.Snapshot
		err  error
	)
	if req.MaxQuestions != nil {
		snap, err = h.quiz.StartSessionWithConfig(ctx, practicesession.SessionConfig{MaxQuestions: *req.MaxQuestions})
	} else {
		snap, err = h.quiz.StartSession(ctx)
	}
	if h.handleServiceError(w, err, "session") {
		return
	}

	respondJSON(w, http.StatusCreated, SessionResponse{Snapshot: snap, Accepted: true})
}

// getSession returns the current state of a session.
// @Summary      Get a session
// @Tags         Sessions
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200        {object}  SessionResponse
// @Failure      404        {object}  errorResponse
// @Router       /sessions/{sessionID} [get]
func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	snap, err := h.quiz.Session(chi.URLParam(r, "sessionID"))
	if h.handleServiceError(w, err, "session") {
		return
	}
	respondJSON(w, http.StatusOK, SessionResponse{Snapshot: snap, Accepted: true})
}

// submitAnswer judges an answer to the current question.
// @Summary      Submit an answer
// @Description  Judges the answer and moves the session to feedback. Blank answers are ignored.
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        sessionID  path      string               true  "Session ID"
// @Param        body       body      SubmitAnswerRequest  true  "Answer"
// @Success      200        {object}  SessionResponse
// @Failure      404        {object}  errorResponse
// @Router       /sessions/{sessionID}/answers [post]
func (h *Handler) submitAnswer(w http.ResponseWriter, r *http.Request) {
	var req SubmitAnswerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	snap, accepted, err := h.quiz.Submit(chi.URLParam(r, "sessionID"), req.Answer)
	if h.handleServiceError(w, err, "session") {
		return
	}
	respondJSON(w, http.StatusOK, SessionResponse{Snapshot: snap, Accepted: accepted})
}

// advanceSession leaves feedback for the next question or the summary.
// @Summary      Advance a session
// @Description  Reaching the summary records the session in history.
// @Tags         Sessions
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200        {object}  SessionResponse
// @Failure      404        {object}  errorResponse
// @Failure      500        {object}  errorResponse  "history could not be saved"
// @Router       /sessions/{sessionID}/advance [post]
func (h *Handler) advanceSession(w http.ResponseWriter, r *http.Request) {
	snap, accepted, err := h.quiz.Advance(r.Context(), chi.URLParam(r, "sessionID"))
	if h.handleServiceError(w, err, "session") {
		return
	}
	respondJSON(w, http.StatusOK, SessionResponse{Snapshot: snap, Accepted: accepted})
}

// restartSession discards a session and draws a new one.
// @Summary      Restart a session
// @Description  Unfinished answers are not recorded.
// @Tags         Sessions
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      201        {object}  SessionResponse
// @Failure      404        {object}  errorResponse
// @Failure      503        {object}  errorResponse
// @Router       /sessions/{sessionID}/restart [post]
func (h *Handler) restartSession(w http.ResponseWriter, r *http.Request) {
	snap, err := h.quiz.Restart(r.Context(), chi.URLParam(r, "sessionID"))
	if h.handleServiceError(w, err, "session") {
		return
	}
	respondJSON(w, http.StatusCreated, SessionResponse{Snapshot: snap, Accepted: true})
}
