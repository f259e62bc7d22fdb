package metricsapp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"authcore/internal/lib/logger/sl"
)

type App struct {
	log                 *slog.Logger
	server              *http.Server
	reg                 *prometheus.Registry
	FailedLoginsCounter *prometheus.CounterVec
}

func New(log *slog.Logger, port int) *App {
	reg := prometheus.NewRegistry()

	failedLogins := promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
		Name: "failed_login_attempts_total",
		Help: "Total number of failed login attempts.",
	}, []string{"username", "reason"})

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(
		reg,
		promhttp.HandlerOpts{
			// Opt into OpenMetrics e.g. to support exemplars.
			EnableOpenMetrics: true,
		},
	))

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: mux,
	}

	return &App{
		log:                 log,
		server:              server,
		reg:                 reg,
		FailedLoginsCounter: failedLogins,
	}
}

func (a *App) MustRun() {
	err := a.Run()
	if errors.Is(err, http.ErrServerClosed) {
		a.log.Info("metrics server closed", sl.Err(err))
	} else if err != nil {
		a.log.Error("failed to start metrics server", sl.Err(err))
		panic(err)
	}
}

func (a *App) Run() error {
	const op = "metricsapp.Run"
	log := a.log.With(slog.String("op", op), slog.String("addr", a.server.Addr))

	log.Info("exposing Prometheus metrics")

	return a.server.ListenAndServe()
}

func (a *App) Stop() error {
	const op = "metricsapp.Stop"
	a.log.With(slog.String("op", op)).Info("stopping metrics server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
