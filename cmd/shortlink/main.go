package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/apolozov/shortlink/internal/auth"
	"github.com/apolozov/shortlink/internal/config"
	"github.com/apolozov/shortlink/internal/handler"
	"github.com/apolozov/shortlink/internal/repository"
	"github.com/apolozov/shortlink/internal/service"
)

func main() {
	cfg, err := config.Parse()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	var logger *zap.Logger
	if cfg.Production() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	sugar := logger.Sugar()

	sugar.Infow("Starting shortlink service",
		"address", cfg.Address,
		"env", cfg.AppEnv,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, err := repository.NewPostgresRepository(ctx, cfg.DatabaseDSN, cfg.MigrationsDir)
	if err != nil {
		sugar.Fatalw("Failed to initialize repository", "error", err)
	}
	defer repo.Close()

	shortenerService := service.NewShortenerService(repo, logger)
	verifier := auth.NewVerifier(cfg.JWTSecret)

	h := handler.NewHandler(shortenerService, logger, cfg.Production())
	router := h.SetupRouter(verifier, cfg.CORSOrigins)

	srv := &http.Server{
		Addr:    cfg.Address,
		Handler: router,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			sugar.Errorw("Server shutdown failed", "error", err)
		}
	}()

	sugar.Infow("Server starting", "address", cfg.Address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		sugar.Fatalw(err.Error(), "event", "start server")
	}

	sugar.Infow("Server stopped")
}
