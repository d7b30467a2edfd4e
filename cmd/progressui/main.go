package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/academica/progress-ui-api/config"
	"github.com/academica/progress-ui-api/internal/bootstrap"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}

	logStartupInfo(ctx, logger, &cfg)

	app, err := bootstrap.BuildApp(ctx, cfg, logger)
	if err != nil {
		return err
	}

	return app.Run(ctx)
}

func logStartupInfo(ctx context.Context, logger *slog.Logger, cfg *config.AppConfig) {
	logger.InfoContext(ctx, "starting progress-ui service",
		"addr", cfg.HTTP.Addr,
		"auth_mode", cfg.Auth.Mode,
		"session_backend", cfg.Session.Backend,
		"backend_url", cfg.Backend.URL,
		"demo_mode", cfg.Backend.DemoMode,
		"dev_mode", cfg.IsDev,
	)
}
