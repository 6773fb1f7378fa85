package main

import (
	"context"
	"crypto/rand"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ErlanBelekov/bookstore/config"
	"github.com/ErlanBelekov/bookstore/internal/email"
	"github.com/ErlanBelekov/bookstore/internal/health"
	"github.com/ErlanBelekov/bookstore/internal/infrastructure/store"
	ctxlog "github.com/ErlanBelekov/bookstore/internal/log"
	"github.com/ErlanBelekov/bookstore/internal/metrics"
	"github.com/ErlanBelekov/bookstore/internal/token"
	httptransport "github.com/ErlanBelekov/bookstore/internal/transport/http"
	"github.com/ErlanBelekov/bookstore/internal/transport/http/handler"
	"github.com/ErlanBelekov/bookstore/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
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

	secret := []byte(cfg.SecretKey)
	if len(secret) == 0 {
		// Only reachable with ENV=local; tokens die with the process.
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			stop()
			log.Fatalf("generate secret: %v", err)
		}
		logger.Warn("SECRET_KEY not set, using a random per-process signing key")
	}

	// Auth
	tokens := token.NewManager(secret)
	sender := email.NewSender(cfg.ResendAPIKey, cfg.ResendFrom, logger)
	authUsecase := usecase.NewAuthUsecase(stores.Users, tokens, sender, logger, cfg.RegisterAsAdmin)
	authHandler := handler.NewAuthHandler(authUsecase, logger)

	// Books
	bookUsecase := usecase.NewBookUsecase(stores.Books)
	bookHandler := handler.NewBookHandler(bookUsecase, logger)

	metrics.RegisterHTTP()
	checker := health.NewChecker(stores.Driver, stores.Pinger, logger, prometheus.DefaultRegisterer)

	srv := http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httptransport.NewRouter(logger, cfg.Env != "local", authUsecase, authHandler, bookHandler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	go func() {
		logger.Info("server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
	// Each send has its own timeout, so this is bounded.
	authUsecase.Wait()
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
