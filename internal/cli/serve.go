package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/remaimber-it/flashcards/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the quiz over HTTP and websockets",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := openApp(ctx, os.Stdout)
	if err != nil {
		return err
	}
	defer a.Close()

	// The server starts either way; sessions answer 503 until POST /reload succeeds.
	if err := a.quiz.LoadQuestions(ctx); err != nil {
		a.logger.Warn("starting without questions", "error", err)
	}

	handler := api.NewHandler(a.quiz, a.logger, a.cfg.CORSOrigins)

	// ── Server ──────────────────────────────────────────────────────
	// No read or write timeout: websocket connections outlive a single request.
	server := &http.Server{
		Addr:              a.cfg.ServerAddress,
		Handler:           api.NewRouter(handler, a.logger),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("starting server", "address", a.cfg.ServerAddress)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()

		a.logger.Info("shutting down server")
		if err := server.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("server forced to shutdown", "error", err)
			return err
		}
		return nil
	})

	return g.Wait()
}
