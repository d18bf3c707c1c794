package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/spacesedan/notetaker/config"
	"github.com/spacesedan/notetaker/internal/logging"
	"github.com/spacesedan/notetaker/internal/monitoring"
	"github.com/spacesedan/notetaker/internal/sentiment"
	"github.com/spacesedan/notetaker/internal/server"
)

func main() {
	config.LoadEnv(config.AppEnv())
	cfg := config.Load()
	logging.InitLogger(cfg.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg); err != nil {
		slog.Error("[Main] Exiting", slog.String("error", err.Error()))
		cancel()
		os.Exit(1)
	}
	slog.Info("[Main] Server stopped")
}

func run(ctx context.Context, cfg config.Config) error {
	classifier, err := sentiment.NewClassifier(ctx, cfg)
	if err != nil {
		return fmt.Errorf("sentiment classifier %q: %w", cfg.SentimentBackend, err)
	}
	defer func() {
		if err := sentiment.Close(classifier); err != nil {
			slog.Warn("[Main] Failed to release classifier", slog.String("error", err.Error()))
		}
	}()

	classifierHealthy := &atomic.Bool{}
	classifierHealthy.Store(true)
	go monitoring.MonitorClassifierHealth(ctx, classifier, classifierHealthy)

	srv, err := server.NewServer(sentiment.NewAnalyzer(classifier), classifierHealthy, cfg.Addr, sentiment.RequestBudget(cfg))
	if err != nil {
		return err
	}
	return srv.Start(ctx)
}
