package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/fix-display-service/internal/adapter/httpadapter"
	kafkaadapter "github.com/couchcryptid/fix-display-service/internal/adapter/kafka"
	"github.com/couchcryptid/fix-display-service/internal/config"
	"github.com/couchcryptid/fix-display-service/internal/domain"
	"github.com/couchcryptid/fix-display-service/internal/locale"
	"github.com/couchcryptid/fix-display-service/internal/observability"
	"github.com/couchcryptid/fix-display-service/internal/pipeline"
	"github.com/couchcryptid/fix-display-service/internal/preferences"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	catalog, err := locale.NewCatalog()
	if err != nil {
		logger.Error("failed to build label catalog", "error", err)
		os.Exit(1)
	}
	labels := catalog.Labels(cfg.DisplayLanguage)
	formatter := domain.NewFormatter(labels, domain.WithDecimalSeparator(locale.DecimalSeparator(labels.Language())))
	logger.Info("display language selected", "requested", cfg.DisplayLanguage.String(), "language", labels.Language().String())

	store := preferences.NewStore(domain.DefaultPreferences())
	if cfg.PreferencesFile != "" {
		if err := store.Reload(cfg.PreferencesFile); err != nil {
			logger.Error("failed to load preferences", "error", err)
			os.Exit(1)
		}
		watcher, err := preferences.NewWatcher(cfg.PreferencesFile, store, logger, metrics)
		if err != nil {
			logger.Error("failed to watch preferences", "error", err)
			os.Exit(1)
		}
		defer watcher.Close()
		logger.Info("preferences loaded", "path", cfg.PreferencesFile, "units", store.Preferences().UnitSystem.String())
	} else {
		logger.Info("no preferences file, using defaults")
	}

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)
	transformer := pipeline.NewTransformer(formatter, store, logger, metrics)

	p := pipeline.New(reader, transformer, writer, logger, metrics, cfg.BatchSize)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, store, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start display pipeline.
	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := reader.Close(); err != nil {
		logger.Error("kafka reader close error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}

	logger.Info("shutdown complete")
}
