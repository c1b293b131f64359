package initializer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/adu-coder/nineteen/infra"
	infracache "github.com/adu-coder/nineteen/infra/cache"
	infraeventbus "github.com/adu-coder/nineteen/infra/eventbus"
	"github.com/adu-coder/nineteen/infra/identity"
	"github.com/adu-coder/nineteen/pkg/app"
	"github.com/adu-coder/nineteen/pkg/cache"
	"github.com/adu-coder/nineteen/pkg/config"
)

const redisPingTimeout = 2 * time.Second

// InitializeDependencies initializes all the application dependencies. The returned
// cleanup closes the database and cache connections.
func InitializeDependencies(cfg *config.App) (
	deps *app.Deps,
	cleanup func() error,
	err error,
) {
	deps = &app.Deps{}
	logger := setupLogger(cfg.Log)
	deps.Logger = logger

	identity, err := initIdentity(cfg.Auth)
	if err != nil {
		logger.Error("Failed to initialize identity verifier", "error", err)
		return nil, nil, err
	}
	deps.Identity = identity

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		return nil, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}
	closers := []func() error{sqlDB.Close}
	cleanup = func() error {
		var errs []error
		for i := len(closers) - 1; i >= 0; i-- {
			errs = append(errs, closers[i]())
		}
		return errors.Join(errs...)
	}

	if cfg.DB.Migrate {
		if err := infra.Migrate(db); err != nil {
			_ = cleanup()
			return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		logger.Info("Database schema is up to date", "driver", cfg.DB.Driver)
	}

	deps.Uow = infra.NewUoW(db)
	deps.HealthCheck = infra.PingFunc(db)
	deps.EventBus = infraeventbus.NewWithMemory(logger)

	c, closeCache, err := initCache(cfg.Redis, logger)
	if err != nil {
		_ = cleanup()
		return nil, nil, fmt.Errorf("failed to initialize summary cache: %w", err)
	}
	if closeCache != nil {
		closers = append(closers, closeCache)
	}
	deps.Cache = c

	return deps, cleanup, nil
}

func initIdentity(cfg *config.Auth) (*identity.GoogleVerifier, error) {
	var clientID string
	if cfg != nil && cfg.Google != nil {
		clientID = cfg.Google.ClientID
	}
	v, err := identity.NewGoogleVerifier(clientID)
	if err != nil {
		return nil, fmt.Errorf("AUTH_GOOGLE_CLIENT_ID: %w", err)
	}
	return v, nil
}

// initCache selects the summary cache: Redis when a URL is configured and reachable,
// the in-process cache otherwise. A malformed URL is a configuration error.
func initCache(cfg *config.Redis, logger *slog.Logger) (cache.Cache, func() error, error) {
	if cfg == nil || cfg.URL == "" {
		logger.Info("Using in-memory summary cache")
		return infracache.NewMemoryCache(ttlOf(cfg)), nil, nil
	}

	rc, err := infracache.NewRedisCache(cfg.URL, cfg.KeyPrefix, cfg.TTL, logger)
	if err != nil {
		return nil, nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := rc.Ping(ctx); err != nil {
		logger.Warn("Redis unreachable, falling back to in-memory summary cache", "error", err)
		_ = rc.Close()
		return infracache.NewMemoryCache(cfg.TTL), nil, nil
	}
	logger.Info("Using Redis summary cache", "prefix", cfg.KeyPrefix, "ttl", cfg.TTL)
	return rc, rc.Close, nil
}

func ttlOf(cfg *config.Redis) time.Duration {
	if cfg == nil || cfg.TTL <= 0 {
		return 5 * time.Minute
	}
	return cfg.TTL
}
