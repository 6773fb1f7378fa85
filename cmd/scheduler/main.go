package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ErlanBelekov/bookstore/config"
	"github.com/ErlanBelekov/bookstore/internal/health"
	"github.com/ErlanBelekov/bookstore/internal/infrastructure/store"
	ctxlog "github.com/ErlanBelekov/bookstore/internal/log"
	"github.com/ErlanBelekov/bookstore/internal/metrics"
	"github.com/ErlanBelekov/bookstore/internal/scheduler"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.StoreDriver == config.StoreMemory {
		logger.Warn("memory store is per-process, catalog stats will always be empty")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	stores, err := store.Open(ctx, cfg)
	if err != nil {
		stop()
		log.Fatalf("store: %v", err)
	}
	defer func() {
		if err := stores.Close(context.Background()); err != nil {
			logger.Error("store close", "error", err)
		}
	}()

	logger.Info("store connected", "driver", stores.Driver)

	metrics.RegisterCatalog()
	checker := health.NewChecker(stores.Driver, stores.Pinger, logger, prometheus.DefaultRegisterer)

	refresher, err := scheduler.NewStatsRefresher(stores.Books, logger, cfg.CatalogStatsCron)
	if err != nil {
		stop()
		log.Fatalf("scheduler: %v", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		refresher.Start(ctx)
	}()

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)
	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	<-done

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}

	logger.Info("scheduler shut down")
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}
