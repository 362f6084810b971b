// Package app wires the application services from their shared dependencies.
package app

import (
	"log/slog"

	"github.com/nestfund/ledger/pkg/config"
	"github.com/nestfund/ledger/pkg/repository"
	"github.com/nestfund/ledger/pkg/service/auth"
	ledgersvc "github.com/nestfund/ledger/pkg/service/ledger"
	"github.com/nestfund/ledger/pkg/service/user"
)

// Deps contains the infrastructure dependencies the services are built from.
type Deps struct {
	Uow    repository.UnitOfWork
	Logger *slog.Logger
}

// App bundles the configured services behind one handle for the HTTP layer
// and the CLI.
type App struct {
	Deps          *Deps
	Config        *config.App
	AuthService   *auth.Service
	UserService   *user.Service
	LedgerService *ledgersvc.Service
}

// New builds the application services on top of deps.
func New(deps *Deps, cfg *config.App) *App {
	return &App{
		Deps:          deps,
		Config:        cfg,
		AuthService:   auth.New(deps.Uow, &cfg.Jwt, deps.Logger),
		UserService:   user.New(deps.Uow, deps.Logger),
		LedgerService: ledgersvc.New(deps.Uow, deps.Logger, cfg.Ledger.LockTimeout),
	}
}
