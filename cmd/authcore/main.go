package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"authcore/internal/app"
	"authcore/internal/config"
	"authcore/internal/lib/logger/sl"
)

const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

func main() {
	//load config
	cfg := config.MustLoad()
	//setup logger
	logger := setupLogger(cfg.Env)
	logger.Info("starting application", slog.String("env", cfg.Env))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	application := app.New(logger, cfg)

	done := make(chan error, 1)
	go func() {
		done <- application.Run(ctx, cfg.SeedDemo)
	}()

	//graceful shutdown
	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, syscall.SIGTERM, syscall.SIGINT)

	select {
	case sign := <-stopChan:
		logger.Info("stopping application", slog.String("signal", sign.String()))
		cancel()
	case err := <-done:
		if err != nil {
			logger.Error("application failed", sl.Err(err))
		}
	}

	if err := application.Stop(); err != nil {
		logger.Info("failed to stop application", sl.Err(err))
		return
	}
	logger.Info("application stopped")
}

func setupLogger(env string) *slog.Logger {
	var logger *slog.Logger

	switch env {
	case envLocal:
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return logger
}
