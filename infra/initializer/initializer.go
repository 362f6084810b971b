// Package initializer builds the application dependency graph at startup.
package initializer

import (
	"github.com/nestfund/ledger/infra"
	accountmodel "github.com/nestfund/ledger/infra/repository/account"
	goalmodel "github.com/nestfund/ledger/infra/repository/goal"
	transactionmodel "github.com/nestfund/ledger/infra/repository/transaction"
	usermodel "github.com/nestfund/ledger/infra/repository/user"

	infrarepository "github.com/nestfund/ledger/infra/repository"
	"github.com/nestfund/ledger/pkg/app"
	"github.com/nestfund/ledger/pkg/config"
)

// InitializeDependencies initializes all the application dependencies.
func InitializeDependencies(cfg *config.App) (*app.Deps, error) {
	deps := &app.Deps{}
	logger := setupLogger(cfg.Log)
	deps.Logger = logger

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		return nil, err
	}

	if err := db.AutoMigrate(
		&usermodel.User{},
		&accountmodel.Account{},
		&goalmodel.Goal{},
		&transactionmodel.Transaction{},
	); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		return nil, err
	}

	deps.Uow = infrarepository.NewUoW(db)

	return deps, nil
}
