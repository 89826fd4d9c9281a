package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aadb-project/aadb/internal/domain/search/request"
	"github.com/aadb-project/aadb/internal/metrics"
	chiTransport "github.com/aadb-project/aadb/internal/transport/chi"
	"github.com/aadb-project/aadb/internal/version"
)

// backupRunTimeout bounds one scheduled snapshot upload.
const backupRunTimeout = 10 * time.Minute

func newServeCmd(env *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), *env)
		},
	}
}

func runServe(ctx context.Context, env string) error {
	a, err := newApp(ctx, env)
	if err != nil {
		return err
	}
	defer a.close()
	logger := a.log

	logger.Info("Starting aadb API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", a.cfg.HTTP.Port),
		zap.String("db_driver", a.cfg.Database.Driver),
		zap.Strings("db_addrs", a.cfg.Database.Addrs),
		zap.Int("auth_keys", len(a.cfg.Auth.Keys)),
	)
	if len(a.cfg.Auth.Keys) == 0 {
		logger.Warn("No auth keys configured, every caller acts as the local admin")
	}

	// Register domain metrics explicitly (no init())
	metrics.RegisterDomainMetrics()

	if a.services.Backup != nil {
		scheduler := cron.New()
		if _, err := scheduler.AddFunc(a.cfg.Backup.Schedule, func() {
			runCtx, cancel := context.WithTimeout(context.Background(), backupRunTimeout)
			defer cancel()
			// Run logs its own outcome.
			_, _ = a.services.Backup.Run(runCtx)
		}); err != nil {
			return fmt.Errorf("schedule backup: %w", err)
		}
		scheduler.Start()
		defer func() { <-scheduler.Stop().Done() }()
	}

	sc := a.cfg.Search
	server := chiTransport.NewServer(a.services).
		WithLimits(
			request.Limits{Default: sc.DefaultPageSize, Max: sc.MaxPageSize},
			request.Limits{Default: sc.AdvancedDefaultLimit, Max: sc.AdvancedMaxLimit},
		).
		WithMaxBody(a.cfg.HTTP.MaxBodyBytes)

	addr := fmt.Sprintf(":%d", a.cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      chiTransport.NewRouter(server, logger, a.authKeys()),
		ReadTimeout:  time.Duration(a.cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(a.cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-quit:
		logger.Info("Received shutdown signal")
	case err := <-serveErr:
		if err != nil {
			logger.Error("HTTP server error", zap.Error(err))
			return fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(a.cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
	return nil
}
