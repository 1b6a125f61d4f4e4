// Package bootstrap assembles the application graph shared by the API and
// worker binaries.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pulakdeshmukh/loan-document-processor/internal/config"
	"github.com/pulakdeshmukh/loan-document-processor/internal/core/extract"
	"github.com/pulakdeshmukh/loan-document-processor/internal/core/ports"
	"github.com/pulakdeshmukh/loan-document-processor/internal/core/usecase"
	"github.com/pulakdeshmukh/loan-document-processor/internal/export"
	"github.com/pulakdeshmukh/loan-document-processor/internal/infrastructure/llm/gemini"
	"github.com/pulakdeshmukh/loan-document-processor/internal/infrastructure/queue/nats"
	"github.com/pulakdeshmukh/loan-document-processor/internal/infrastructure/repository/postgres"
	"github.com/pulakdeshmukh/loan-document-processor/internal/infrastructure/resilience"
	"github.com/pulakdeshmukh/loan-document-processor/internal/infrastructure/storage/localfs"
	"github.com/pulakdeshmukh/loan-document-processor/internal/infrastructure/textsource"
)

type App struct {
	Config config.Config

	Queue ports.MessageQueue
	Repo  ports.DocumentRepository

	IngestUC  ports.DocumentIngestor
	ProcessUC ports.DocumentProcessor
	AnalyzeUC ports.DocumentAnalyzer
	Exporter  ports.ReportExporter

	closeFn func()
}

// Options carry binary-specific hooks; the worker injects its metrics
// observer here, the API leaves it nil.
type Options struct {
	AnalysisObserver usecase.AnalysisObserver
}

func New(ctx context.Context, cfg config.Config, options Options) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	repo := postgres.NewDocumentRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	executor := resilience.NewExecutor(resilience.DefaultConfig())

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: executor,
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	var generator ports.FieldGenerator
	if cfg.GeminiAPIKey != "" {
		generator = gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel, gemini.Options{
			BaseURL:            cfg.GeminiBaseURL,
			RequestTimeout:     cfg.GeminiTimeout,
			ResilienceExecutor: executor,
		})
	} else {
		slog.Warn("GEMINI_API_KEY not set, extraction runs on regex fallback only")
	}

	source := textsource.New(storage)
	extractor := extract.New(generator, cfg.GeminiTimeout, cfg.ExtractMaxPromptChars)

	ingestUC := usecase.NewIngestDocumentUseCase(repo, storage, queue)
	processUC := usecase.NewProcessDocumentUseCase(repo, source, extractor, options.AnalysisObserver)
	analyzeUC := usecase.NewAnalyzeUseCase(extractor)
	exporter := export.NewExcelExporter(repo, cfg.ExportLimit)

	return &App{
		Config: cfg,
		Queue:  queue,
		Repo:   repo,

		IngestUC:  ingestUC,
		ProcessUC: processUC,
		AnalyzeUC: analyzeUC,
		Exporter:  exporter,

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
