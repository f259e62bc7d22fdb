package app

import (
	"context"
	"log/slog"

	metricsapp "authcore/internal/app/metrics"
	"authcore/internal/cli"
	"authcore/internal/config"
	"authcore/internal/lib/hash"
	authservice "authcore/internal/services/auth"
	"authcore/internal/storage/memory"
)

type App struct {
	cli     *cli.App
	metrics *metricsapp.App
}

func New(log *slog.Logger, cfg *config.Config) *App {
	metrics := metricsapp.New(log, cfg.MetricsPort)

	store := memory.New()

	var hasher hash.Hasher = hash.NewSHA256()
	if cfg.PasswordHasher == config.HasherBcrypt {
		hasher = hash.NewBcrypt(0)
	}

	authService := authservice.New(
		log,
		store,
		store,
		store,
		hasher,
		cfg.MaxAttempts,
		cfg.LockoutDuration,
		metrics.FailedLoginsCounter,
	)

	console := cli.New(log, authService, cfg.SessionSecret, cfg.SessionTTL)

	return &App{cli: console, metrics: metrics}
}

// Run starts the metrics endpoint in the background, seeds the demo accounts
// and hands the foreground to the interactive console.
func (a *App) Run(ctx context.Context, seedDemo bool) error {
	go a.metrics.MustRun()

	if seedDemo {
		if err := a.cli.SeedDemoAccounts(ctx); err != nil {
			return err
		}
	}

	return a.cli.Run(ctx)
}

func (a *App) Stop() error {
	return a.metrics.Stop()
}
