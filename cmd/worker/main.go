package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pulakdeshmukh/loan-document-processor/internal/bootstrap"
	"github.com/pulakdeshmukh/loan-document-processor/internal/config"
	"github.com/pulakdeshmukh/loan-document-processor/internal/core/domain"
	"github.com/pulakdeshmukh/loan-document-processor/internal/observability/logging"
	"github.com/pulakdeshmukh/loan-document-processor/internal/observability/metrics"
)

const serviceName = "loan-doc-worker"

// analysisRecorder feeds pipeline outcomes into worker metrics.
type analysisRecorder struct {
	metrics *metrics.WorkerMetrics
}

func (r *analysisRecorder) ObserveAnalysis(analysis *domain.Analysis) {
	if analysis == nil {
		return
	}
	r.metrics.RecordExtractionMethod(serviceName, string(analysis.Extraction.Method))
	r.metrics.RecordVerdict(serviceName, string(analysis.Classification.Kind), analysis.Verdict.IsValid)
}

func main() {
	cfg := config.Load()
	logging.SetDefault(serviceName, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	workerMetrics := metrics.NewWorkerMetrics(serviceName)

	app, err := bootstrap.New(ctx, cfg, bootstrap.Options{
		AnalysisObserver: &analysisRecorder{metrics: workerMetrics},
	})
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	metricsServer := &http.Server{
		Addr:        ":" + cfg.WorkerMetricsPort,
		Handler:     workerMetrics.Handler(),
		ReadTimeout: 10 * time.Second,
	}
	go func() {
		log.Printf("worker metrics listening on :%s", cfg.WorkerMetricsPort)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("worker metrics server error: %v", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}()

	log.Printf("worker subscribed to %s", cfg.NATSSubject)
	err = app.Queue.SubscribeDocumentUploaded(ctx, func(handlerCtx context.Context, documentID string) error {
		processCtx, cancel := context.WithTimeout(handlerCtx, cfg.ProcessTimeout)
		defer cancel()

		if doc, err := app.Repo.GetByID(processCtx, documentID); err == nil {
			workerMetrics.ObserveQueueLag(serviceName, time.Since(doc.CreatedAt))
		}

		workerMetrics.StartDocument()
		start := time.Now()
		processErr := app.ProcessUC.ProcessByID(processCtx, documentID)
		workerMetrics.FinishDocument(serviceName, time.Since(start), processErr)
		return processErr
	})
	if err != nil {
		log.Fatalf("worker subscribe error: %v", err)
	}
}
