package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/adu-coder/nineteen/infra/initializer"
	"github.com/adu-coder/nineteen/pkg/app"
	"github.com/adu-coder/nineteen/pkg/config"
	"github.com/adu-coder/nineteen/webapi"
	log "github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"
)

// @title Nineteen Finance API
// @version 1.0.0
// @description Personal finance backend with friend sharing and budgets
// @host localhost:3000
// @BasePath /
//
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description "Enter your Bearer token in the format: `Bearer {token}`"
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()
	if err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	deps, cleanup, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer func() {
		if err := cleanup(); err != nil {
			deps.Logger.Warn("cleanup failed", "error", err)
		}
	}()

	fiberApp := webapi.SetupApp(app.New(deps, cfg))
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	return serve(ctx, fiberApp, addr, cfg.Server, deps.Logger)
}

// serve listens on addr until ctx is cancelled, then drains in-flight requests for
// at most cfg.ShutdownTimeout.
func serve(
	ctx context.Context,
	fiberApp *fiber.App,
	addr string,
	cfg *config.Server,
	logger *slog.Logger,
) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "address", addr, "scheme", cfg.Scheme)
		errCh <- fiberApp.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server", "timeout", cfg.ShutdownTimeout)
	if err := fiberApp.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("Server stopped")
	return nil
}
