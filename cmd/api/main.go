package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "github.com/pulakdeshmukh/loan-document-processor/internal/adapters/http"
	"github.com/pulakdeshmukh/loan-document-processor/internal/bootstrap"
	"github.com/pulakdeshmukh/loan-document-processor/internal/config"
	"github.com/pulakdeshmukh/loan-document-processor/internal/observability/logging"
	"github.com/pulakdeshmukh/loan-document-processor/internal/observability/metrics"
)

func main() {
	cfg := config.Load()
	logging.SetDefault("loan-doc-api", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, bootstrap.Options{})
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	httpMetrics := metrics.NewHTTPServerMetrics("loan-doc-api")

	handler := httpadapter.NewHandler(app.IngestUC, app.AnalyzeUC, app.Repo, app.Exporter, httpadapter.Options{
		Service:        "loan-doc-api",
		Metrics:        httpMetrics,
		RateLimitRPS:   cfg.APIRateLimitRPS,
		RateLimitBurst: cfg.APIRateLimitBurst,
		MaxInFlight:    cfg.APIMaxInFlight,
		AcquireWait:    2 * time.Second,
	})

	mux := http.NewServeMux()
	mux.Handle("/metrics", httpMetrics.Handler())
	mux.Handle("/", handler)

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("api listening on :%s", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("api server error: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("api shutdown error: %v", err)
	}
}
