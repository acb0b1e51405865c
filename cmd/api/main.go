// Command api serves the event planner JSON API.
//
// @title						Event Planner API
// @version					1.0
// @description				Create events, RSVP, invite guests by email and follow your own dashboard.
// @BasePath					/
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"eventplanner/config"
	"eventplanner/internal/app"
	delivery "eventplanner/internal/delivery/http"
	"eventplanner/internal/delivery/http/controllers"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Warn("closing storage", "err", err)
		}
	}()

	router := delivery.NewRouter(delivery.Controllers{
		Events:      controllers.NewEventController(logger, a.Store, a.Clock),
		RSVP:        controllers.NewRSVPController(logger, a.RSVP),
		Dashboard:   controllers.NewDashboardController(logger, a.Store, a.Clock),
		Invitations: controllers.NewInvitationController(logger, a.Invitations),
	}, delivery.RouterOptions{
		Logger:         logger,
		Verifier:       a.Verifier,
		SessionUserID:  cfg.Session.UserID,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Metrics:        promhttp.HandlerFor(a.Registry, promhttp.HandlerOpts{}),
	})

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr, "storage", cfg.Storage.Driver, "env", cfg.Environment)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("signal received, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
