// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter wires every route behind the shared middleware chain:
// RequestID → RealIP → Logging → Recoverer → CORS → routes.
func NewRouter(h *Handler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, Logging(logger), middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: h.allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Questions
	r.Get("/questions", h.listQuestions)
	r.Post("/questions", h.addQuestion)
	r.Post("/reload", h.reloadQuestions)

	// Sessions
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", h.createSession)
		r.Get("/{sessionID}", h.getSession)
		r.Post("/{sessionID}/answers", h.submitAnswer)
		r.Post("/{sessionID}/advance", h.advanceSession)
		r.Post("/{sessionID}/restart", h.restartSession)
	})
	r.Get("/ws/sessions/{sessionID}", h.sessionSocket)

	// History
	r.Get("/history", h.getHistory)
	r.Get("/history/export", h.exportHistory)

	// Swagger UI served at /swagger/
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}
