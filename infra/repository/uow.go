// Package repository provides the GORM-backed unit of work. Repositories
// handed out within one Do call share the same transaction session so a
// ledger operation commits or rolls back as a whole.
package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/nestfund/ledger/infra/repository/account"
	"github.com/nestfund/ledger/infra/repository/goal"
	"github.com/nestfund/ledger/infra/repository/transaction"
	"github.com/nestfund/ledger/infra/repository/user"
	"github.com/nestfund/ledger/pkg/repository"
)

// ErrNoTransaction is returned when a repository is requested outside a Do
// call.
var ErrNoTransaction = errors.New("repository access outside a transaction")

// UoW provides transaction boundary and repository access in one abstraction.
// Repository accessors only work on the UoW passed into Do's callback; on the
// root UoW they return ErrNoTransaction.
type UoW struct {
	db *gorm.DB
	tx *gorm.DB
}

// NewUoW creates a new UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

// Do runs fn in a database transaction, providing a UoW whose repositories
// are bound to that transaction. If fn returns an error the transaction is
// rolled back.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx})
	})
}

// AccountRepository implements repository.UnitOfWork.
func (u *UoW) AccountRepository() (repository.AccountRepository, error) {
	if u.tx == nil {
		return nil, ErrNoTransaction
	}
	return account.New(u.tx), nil
}

// GoalRepository implements repository.UnitOfWork.
func (u *UoW) GoalRepository() (repository.GoalRepository, error) {
	if u.tx == nil {
		return nil, ErrNoTransaction
	}
	return goal.New(u.tx), nil
}

// TransactionRepository implements repository.UnitOfWork.
func (u *UoW) TransactionRepository() (repository.TransactionRepository, error) {
	if u.tx == nil {
		return nil, ErrNoTransaction
	}
	return transaction.New(u.tx), nil
}

// UserRepository implements repository.UnitOfWork.
func (u *UoW) UserRepository() (repository.UserRepository, error) {
	if u.tx == nil {
		return nil, ErrNoTransaction
	}
	return user.New(u.tx), nil
}
