package repository

import "context"

// UnitOfWork defines the contract for transactional work and repository access.
//
// Repository accessors are part of UnitOfWork so that every repository used
// within one Do call shares the same session; a ledger operation either
// commits every store mutation and its transaction-log append, or none.
type UnitOfWork interface {
	// Do executes fn within a transaction boundary. The UnitOfWork passed to
	// fn hands out repositories bound to that transaction. If fn returns an
	// error the transaction is rolled back.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	AccountRepository() (AccountRepository, error)
	GoalRepository() (GoalRepository, error)
	TransactionRepository() (TransactionRepository, error)
	UserRepository() (UserRepository, error)
}
