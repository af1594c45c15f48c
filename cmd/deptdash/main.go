package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/target/deptdash/config"
	"github.com/target/deptdash/internal/bootstrap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := bootstrap.InitLogger(slog.LevelInfo)
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		stop()
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}
	logger = bootstrap.InitLogger(cfg.Observability.Level())
	logStartupInfo(ctx, logger, &cfg)

	backend, err := bootstrap.NewTokenBackend(ctx, bootstrap.TokenBackendDeps{Config: &cfg, Logger: logger})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := backend.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close token backend failed", "error", cerr)
		}
	}()

	services, err := bootstrap.NewServices(bootstrap.ServiceDeps{Config: &cfg, Backend: backend.Backend, Logger: logger})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := services.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close services failed", "error", cerr)
		}
	}()

	handler, err := bootstrap.BuildHTTPHandler(&bootstrap.HTTPServerConfig{Config: &cfg, Services: services, Logger: logger})
	if err != nil {
		return err
	}
	server, err := bootstrap.StartHTTPServer(logger, handler, cfg.HTTP.Addr)
	if err != nil {
		return err
	}

	<-ctx.Done()
	logger.Info("shutdown signal received")

	if err := bootstrap.ShutdownHTTPServer(bootstrap.ShutdownConfig{
		Context: context.WithoutCancel(ctx),
		Server:  server,
		Logger:  logger,
	}); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}

func logStartupInfo(ctx context.Context, logger *slog.Logger, cfg *config.AppConfig) {
	logger.InfoContext(ctx, "starting deptdash",
		"addr", cfg.HTTP.Addr,
		"api_base_url", cfg.API.BaseURL,
		"auth_scheme", cfg.API.AuthScheme,
		"session_backend", string(cfg.Session.Backend),
		"dev", cfg.IsDev,
		"metrics", cfg.Observability.Metrics.IsEnabled(),
		"statsd", cfg.Observability.Metrics.StatsdEnabled(),
	)
}
