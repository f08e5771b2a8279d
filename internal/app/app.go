package app

import (
	"context"
	"fmt"
	"net/http"

	"ap-dojo/internal/config"
	"ap-dojo/internal/github"
	"ap-dojo/internal/logger"
	"ap-dojo/internal/questionbank"
	"ap-dojo/internal/quiz"
	"ap-dojo/internal/storage"
)

// App holds the wired service and the resources it needs released.
type App struct {
	Service *quiz.Service
	backend storage.Backend
}

// New wires storage, the question bank and the sync client from cfg. The
// bank is loaded eagerly so a broken source fails at startup.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	backend, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}
	store := storage.New(backend)

	httpClient := &http.Client{Timeout: cfg.Sync.Timeout()}
	loader := questionbank.NewLoader(questionbank.NewSource(cfg.Bank.Source, httpClient), log)

	syncer := github.NewClient(github.Options{
		BaseURL:      cfg.Sync.APIBaseURL,
		PagesURL:     cfg.Sync.PagesURL,
		HTTPClient:   httpClient,
		StrictLookup: cfg.Sync.StrictLookup,
		Logger:       log.With("component", "github"),
	})

	service := quiz.NewService(loader, store, store, syncer,
		quiz.WithLogger(log),
		quiz.WithQuestionCount(cfg.Quiz.DefaultCount),
	)

	if _, err := service.Dataset(ctx); err != nil {
		_ = backend.Close()
		return nil, err
	}

	log.Info("app ready", "storage", cfg.Storage.Driver, "bank", cfg.Bank.Source)
	return &App{Service: service, backend: backend}, nil
}

func (a *App) Close() error {
	if err := a.backend.Close(); err != nil {
		return fmt.Errorf("close storage: %w", err)
	}
	return nil
}
