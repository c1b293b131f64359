package app

import (
	"context"
	"log/slog"

	"github.com/adu-coder/nineteen/pkg/cache"
	"github.com/adu-coder/nineteen/pkg/config"
	"github.com/adu-coder/nineteen/pkg/eventbus"
	"github.com/adu-coder/nineteen/pkg/repository"
	"github.com/adu-coder/nineteen/pkg/service/account"
	"github.com/adu-coder/nineteen/pkg/service/auth"
	"github.com/adu-coder/nineteen/pkg/service/budget"
	"github.com/adu-coder/nineteen/pkg/service/sharing"
	"github.com/adu-coder/nineteen/pkg/service/transaction"
)

// Deps contains the infrastructure the services are built on.
type Deps struct {
	Uow      repository.UnitOfWork
	EventBus eventbus.Bus
	Cache    cache.Cache
	Logger   *slog.Logger
	// Identity verifies sign-in credentials with the identity provider.
	Identity auth.IdentityVerifier
	// HealthCheck pings the database. Nil reports the database as unchecked.
	HealthCheck func(ctx context.Context) error
}

// App holds the configured services of one process.
type App struct {
	Deps               *Deps
	Config             *config.App
	AuthService        *auth.Service
	AccountService     *account.Service
	TransactionService *transaction.Service
	BudgetService      *budget.Service
	SharingService     *sharing.Service
}

// New builds every service on deps and subscribes the cache invalidation handler.
func New(deps *Deps, cfg *config.App) *App {
	app := &App{
		Deps:   deps,
		Config: cfg,
	}
	app.AccountService = account.New(deps.Uow, deps.Logger)
	app.AuthService = auth.New(app.AccountService, deps.Identity, cfg.Auth.Jwt, deps.Logger)
	app.TransactionService = transaction.New(
		deps.Uow,
		deps.EventBus,
		deps.Logger,
		cfg.Sharing.SelfTransactionsLimit,
	)
	app.BudgetService = budget.New(deps.Uow, deps.Logger)
	app.SharingService = sharing.New(
		deps.Uow,
		deps.Cache,
		deps.Logger,
		cfg.Sharing.FriendTransactionsLimit,
	)
	app.setupEventBus()
	return app
}
