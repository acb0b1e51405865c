// Package app assembles the event planner from configuration. Both binaries build on it.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"

	"eventplanner/config"
	"eventplanner/internal/adapters/auth"
	"eventplanner/internal/adapters/email"
	"eventplanner/internal/domain"
	"eventplanner/internal/metrics"
	"eventplanner/internal/repository/memory"
	"eventplanner/internal/repository/postgres"
	"eventplanner/internal/repository/sqlite"
	"eventplanner/internal/services"
)

// App holds the wired services. Close releases the storage connection.
type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	Registry *prometheus.Registry
	Metrics  *metrics.Metrics
	Clock    services.Clock

	Store       domain.EventStore
	Users       domain.UserDirectory
	RSVP        domain.RSVPService
	Invitations domain.InvitationService
	Verifier    domain.TokenVerifier
	Issuer      domain.TokenIssuer

	closeKV func() error
}

// New opens storage, loads the stored events and wires every service.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	kv, closeKV, err := OpenKV(ctx, cfg.Storage, logger)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewGoCollector(), prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
	m := metrics.New(reg)
	clock := services.NewClock(cfg.Location())

	store := services.NewEventStore(kv, cfg.Storage.Key, logger, m, clock)
	store.Load(ctx)

	users := services.NewStaticUserDirectory(map[string]string{cfg.Session.UserID: cfg.Session.UserName}, "")

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:       cfg.Email.Provider,
		FromAddress:    cfg.Email.FromAddress,
		FromName:       cfg.Email.FromName,
		SimulatedDelay: cfg.Email.SimulatedDelay,
		SES: email.SESConfig{
			Region:          cfg.Email.AWSRegion,
			AccessKeyID:     cfg.Email.AWSAccessKeyID,
			SecretAccessKey: cfg.Email.AWSSecretAccessKey,
		},
	}, logger)
	if err != nil {
		_ = closeKV()
		return nil, fmt.Errorf("mailer: %w", err)
	}
	inviter := users.DisplayName(ctx, cfg.Session.UserID)

	a := &App{
		Config:      cfg,
		Logger:      logger,
		Registry:    reg,
		Metrics:     m,
		Clock:       clock,
		Store:       store,
		Users:       users,
		RSVP:        services.NewRSVPService(store, users, clock, logger, m),
		Invitations: services.NewInvitationService(store, mailer, email.NewTemplateRenderer(), inviter, logger, m, cfg.ContextTimeout),
		closeKV:     closeKV,
	}
	if cfg.JWTSecret != "" {
		a.Verifier = auth.NewJWTVerifier(cfg.JWTSecret)
		a.Issuer = auth.NewJWTIssuer(cfg.JWTSecret)
	}
	return a, nil
}

// Close releases the storage backend.
func (a *App) Close() error {
	if a.closeKV == nil {
		return nil
	}
	return a.closeKV()
}

// OpenKV opens the configured key/value backend. The returned func closes it.
func OpenKV(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (domain.KVStore, func() error, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		logger.Warn("using in-memory storage, events will not survive a restart")
		return memory.NewKVRepository(), func() error { return nil }, nil
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("storage ready", "driver", cfg.Driver, "path", cfg.SQLitePath)
		return sqlite.NewKVRepository(db), db.Close, nil
	case config.DriverPostgres:
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("ping postgres: %w", err)
		}
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		logger.Info("storage ready", "driver", cfg.Driver)
		return postgres.NewKVRepository(db), db.Close, nil
	}
	return nil, nil, errors.New("unknown storage driver " + cfg.Driver)
}
