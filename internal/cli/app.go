package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/remaimber-it/flashcards/internal/history"
	"github.com/remaimber-it/flashcards/internal/infrastructure/config"
	"github.com/remaimber-it/flashcards/internal/service"
	"github.com/remaimber-it/flashcards/internal/source"
	"github.com/remaimber-it/flashcards/internal/store"
)

const sourceTimeout = 30 * time.Second

// app is the dependency graph shared by every command.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	blobs  store.BlobStore
	quiz   *service.QuizService
}

// openApp loads configuration and opens the history store. Questions are
// not loaded; commands that need them call LoadQuestions themselves.
func openApp(ctx context.Context, logOut io.Writer) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{Level: cfg.LogLevel}))

	blobs, err := store.Open(cfg.HistoryDriver, cfg.HistoryDSN)
	if err != nil {
		return nil, fmt.Errorf("open history store: %w", err)
	}

	h, err := history.Load(ctx, blobs, cfg.HistoryKey, logger)
	if err != nil {
		blobs.Close()
		return nil, err
	}

	client := &http.Client{Timeout: sourceTimeout}
	sources := make([]source.Source, len(cfg.QuestionSources))
	for i, loc := range cfg.QuestionSources {
		sources[i] = source.Open(loc, client)
	}

	quiz := service.NewQuizService(source.NewMulti(cfg.SourceWorkers, sources...), h, logger, service.Options{
		Session:    cfg.SessionConfig(),
		SessionTTL: cfg.SessionTTL,
	})

	return &app{cfg: cfg, logger: logger, blobs: blobs, quiz: quiz}, nil
}

func (a *app) Close() error {
	return a.blobs.Close()
}
