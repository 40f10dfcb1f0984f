package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql migrations
	"github.com/pressly/goose/v3"

	"github.com/medikeep/cabinet-backend/internal/adapter/postgres"
	activityrepo "github.com/medikeep/cabinet-backend/internal/adapter/postgres/activity"
	medicinerepo "github.com/medikeep/cabinet-backend/internal/adapter/postgres/medicine"
	"github.com/medikeep/cabinet-backend/internal/alert"
	"github.com/medikeep/cabinet-backend/internal/config"
	"github.com/medikeep/cabinet-backend/internal/fuzzy"
	"github.com/medikeep/cabinet-backend/internal/parser"
	"github.com/medikeep/cabinet-backend/internal/service/inventory"
	"github.com/medikeep/cabinet-backend/internal/transport/middleware"
	"github.com/medikeep/cabinet-backend/internal/transport/rest"
	"github.com/medikeep/cabinet-backend/migrations"
)

// Run is the application entry point. It loads configuration, applies
// migrations, wires the service graph, and serves HTTP until the context
// is cancelled or a termination signal arrives.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := migrate(ctx, cfg.Database.DSN); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	medicines := medicinerepo.New(pool)
	activity := activityrepo.New(pool)
	tx := postgres.NewTxManager(pool)
	alerts := alert.New(cfg.Cabinet.LowStockThreshold, cfg.Cabinet.ExpiryWarningDays)

	svc := inventory.NewService(
		logger,
		medicines,
		activity,
		tx,
		fuzzy.NewResolver(cfg.Cabinet.FuzzyMatchThreshold),
		alerts,
		parser.New(),
		cfg.Cabinet,
	)

	mux := rest.NewRouter(rest.Handlers{
		Messages: rest.NewMessagesHandler(svc, logger),
		Cabinet:  rest.NewCabinetHandler(svc, alerts, cfg.Cabinet, logger),
		Health:   rest.NewHealthHandler(pool, BuildVersion()),
	})

	limiter := middleware.NewRateLimiter(5 * time.Minute)
	defer limiter.Stop()

	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.Actor(),
		middleware.Logger(logger),
		limiter.Limit(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst),
	)(mux)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}

// migrate applies embedded goose migrations. Goose requires database/sql,
// so a short-lived stdlib connection is used instead of the pgx pool.
func migrate(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return err
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return err
	}

	for _, r := range results {
		slog.Info("applied migration", slog.String("source", r.Source.Path))
	}
	return nil
}
