package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/remaimber-it/flashcards/internal/domain/questionbank"
	"github.com/remaimber-it/flashcards/internal/source"
)

// ── Request / Response types ────────────────────────────────────────────────

type AddQuestionRequest struct {
	Question    string `json:"question"`
	Answer      string `json:"answer"`
	Explanation string `json:"explanation,omitempty"`
}

func (r *AddQuestionRequest) Validate() error {
	if strings.TrimSpace(r.Question) == "" {
		return errors.New("question is required")
	}
	if strings.TrimSpace(r.Answer) == "" {
		return errors.New("answer is required")
	}
	return nil
}

type ListQuestionsResponse struct {
	Count     int                     `json:"count"`
	Questions []questionbank.Question `json:"questions"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// GET /questions
func (h *Handler) listQuestions(w http.ResponseWriter, r *http.Request) {
	bank, err := h.quiz.Bank()
	if h.handleServiceError(w, err, "questions") {
		return
	}

	questions := bank.Questions()
	respondJSON(w, http.StatusOK, ListQuestionsResponse{Count: len(questions), Questions: questions})
}

// POST /questions
func (h *Handler) addQuestion(w http.ResponseWriter, r *http.Request) {
	var req AddQuestionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	q, err := h.quiz.AddQuestion(r.Context(), source.Draft{
		Question:    req.Question,
		Answer:      req.Answer,
		Explanation: req.Explanation,
	})
	if h.handleServiceError(w, err, "question") {
		return
	}

	respondJSON(w, http.StatusCreated, q)
}

// POST /reload
func (h *Handler) reloadQuestions(w http.ResponseWriter, r *http.Request) {
	if h.handleServiceError(w, h.quiz.LoadQuestions(r.Context()), "questions") {
		return
	}
	bank, err := h.quiz.Bank()
	if h.handleServiceError(w, err, "questions") {
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"count": bank.Len()})
}
