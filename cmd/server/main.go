package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/grantdozier/dtg-fabrication-automations/internal/config"
	"github.com/grantdozier/dtg-fabrication-automations/internal/db"
	"github.com/grantdozier/dtg-fabrication-automations/internal/httpapi"
	"github.com/grantdozier/dtg-fabrication-automations/internal/logger"
	"github.com/grantdozier/dtg-fabrication-automations/internal/migrations"
	"github.com/grantdozier/dtg-fabrication-automations/internal/quoting"
	"github.com/grantdozier/dtg-fabrication-automations/internal/seed"
	"github.com/grantdozier/dtg-fabrication-automations/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Env, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg config.Config, log zerolog.Logger) error {
	database, err := db.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer database.Close()

	handler, err := setup(ctx, cfg, database, log)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	log.Info().Dur("timeout", cfg.ShutdownTimeout).Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// setup migrates and optionally seeds database, then wires the store, quoting service and router.
func setup(ctx context.Context, cfg config.Config, database *sql.DB, log zerolog.Logger) (http.Handler, error) {
	if err := migrations.Up(database); err != nil {
		return nil, fmt.Errorf("run database migrations: %w", err)
	}

	if cfg.SeedDemo {
		stats, err := seed.Run(ctx, database)
		if err != nil {
			return nil, fmt.Errorf("seed demo catalog: %w", err)
		}
		log.Info().Int("inserts", stats.Inserts).Int("skipped", stats.Skipped).Msg("demo catalog seeded")
	}

	st := store.New(database)
	svc := quoting.New(st, st, log, cfg.DefaultMarginPct)
	api := httpapi.New(st, svc, log, httpapi.WithHealthCheck(database.PingContext))
	return api.Routes(), nil
}
