// Package repository defines the data-access contracts of the ledger: the
// account store, the goal store, the append-only transaction log, and the
// unit-of-work boundary that makes a ledger operation atomic.
package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/nestfund/ledger/pkg/domain/ledger"
	"github.com/nestfund/ledger/pkg/domain/user"
	"github.com/nestfund/ledger/pkg/money"
)

// AccountRepository owns account records. Balances are mutated only through
// Update calls made inside a ledger engine operation.
type AccountRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*ledger.Account, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*ledger.Account, error)
	Create(ctx context.Context, account *ledger.Account) error
	Update(ctx context.Context, account *ledger.Account) error
}

// GoalRepository owns goal records. Each goal holds a non-owning reference to
// its account.
type GoalRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*ledger.Goal, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*ledger.Goal, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*ledger.Goal, error)
	// SumAllocated returns the sum of allocations of all goals under an account.
	SumAllocated(ctx context.Context, accountID uuid.UUID) (money.Money, error)
	Create(ctx context.Context, goal *ledger.Goal) error
	Update(ctx context.Context, goal *ledger.Goal) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TransactionRepository is the append-only transaction log. Records are never
// updated or deleted.
type TransactionRepository interface {
	Create(ctx context.Context, transaction *ledger.Transaction) error
	// ListRecentByOwner returns transactions across all of the owner's
	// accounts, newest first, capped at limit.
	ListRecentByOwner(ctx context.Context, ownerID uuid.UUID, limit int) ([]*ledger.Transaction, error)
}

// UserRepository owns user records.
type UserRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*user.User, error)
	GetByUsername(ctx context.Context, username string) (*user.User, error)
	Create(ctx context.Context, user *user.User) error
}
