// Package app wires configuration, storage, services, and transport
// into a runnable server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/kmorley/bizenglish/internal/adapter/postgres"
	"github.com/kmorley/bizenglish/internal/adapter/postgres/user"
	"github.com/kmorley/bizenglish/internal/config"
	"github.com/kmorley/bizenglish/internal/lessons"
	"github.com/kmorley/bizenglish/internal/service/progress"
	"github.com/kmorley/bizenglish/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects
// to the database, builds the service stack, and serves HTTP until the
// context is cancelled or a termination signal arrives.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting server",
		slog.String("env", cfg.Env),
		slog.String("log_level", cfg.Log.Level),
		slog.Int("lessons", lessons.Count()),
	)

	if cfg.Database.Migrate {
		if err := postgres.Migrate(cfg.Database.DSN); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	users := user.New(pool)
	svc := progress.NewService(logger, users, cfg.Course)
	router := rest.NewRouter(logger, cfg.CORS, svc, pool)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
