// Package ledger implements the ledger engine: it validates and atomically
// applies deposits, withdrawals, transfers, contributions and allocation
// overrides against the account and goal stores, appending a transaction
// record for every applied operation.
//
// Every operation is a single transition evaluated against the current state:
// it acquires exclusive locks on all accounts it will mutate, runs inside one
// unit-of-work transaction, and either commits every mutation together with
// its transaction-log append or none of them.
package ledger

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	domain "github.com/nestfund/ledger/pkg/domain/ledger"
	"github.com/nestfund/ledger/pkg/money"
	"github.com/nestfund/ledger/pkg/repository"
)

// DefaultLockTimeout bounds how long an operation waits for account locks
// before failing with ErrLockTimeout.
const DefaultLockTimeout = 5 * time.Second

// DefaultRecentLimit is the transaction count returned by RecentTransactions
// when the caller does not ask for a specific limit.
const DefaultRecentLimit = 5

// Service provides the ledger engine operations. It is safe for use by
// concurrent request handlers.
type Service struct {
	uow    repository.UnitOfWork
	locks  *accountLocks
	logger *slog.Logger
}

// New creates a ledger Service. A non-positive lockTimeout selects
// DefaultLockTimeout.
func New(uow repository.UnitOfWork, logger *slog.Logger, lockTimeout time.Duration) *Service {
	if lockTimeout <= 0 {
		lockTimeout = DefaultLockTimeout
	}
	return &Service{
		uow:    uow,
		locks:  newAccountLocks(lockTimeout),
		logger: logger,
	}
}

// AccountWithGoals pairs an account with the goals that earmark its balance.
type AccountWithGoals struct {
	Account *domain.Account
	Goals   []*domain.Goal
}

// CreateAccount creates a new account for the owner. The initial balance must
// not be negative.
func (s *Service) CreateAccount(
	ctx context.Context,
	ownerID uuid.UUID,
	name string,
	kind domain.Kind,
	initialBalance money.Money,
) (acct *domain.Account, err error) {
	logger := s.logger.With("ownerID", ownerID, "name", name, "kind", kind)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		acct, err = domain.NewAccount().
			WithOwnerID(ownerID).
			WithName(name).
			WithKind(kind).
			WithBalance(initialBalance).
			Build()
		if err != nil {
			return err
		}
		return repo.Create(ctx, acct)
	})
	if err != nil {
		logger.Error("account creation failed", "error", err)
		return nil, err
	}
	logger.Info("account created", "accountID", acct.ID)
	return acct, nil
}

// Accounts lists the owner's accounts.
func (s *Service) Accounts(ctx context.Context, ownerID uuid.UUID) (accts []*domain.Account, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		accts, err = repo.ListByOwner(ctx, ownerID)
		return err
	})
	return accts, err
}

// AccountsWithGoals lists the owner's accounts together with each account's
// goals, for the enriched listing endpoint.
func (s *Service) AccountsWithGoals(ctx context.Context, ownerID uuid.UUID) (result []AccountWithGoals, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		goals, err := uow.GoalRepository()
		if err != nil {
			return err
		}
		accts, err := accounts.ListByOwner(ctx, ownerID)
		if err != nil {
			return err
		}
		result = make([]AccountWithGoals, 0, len(accts))
		for _, acct := range accts {
			gs, err := goals.ListByAccount(ctx, acct.ID)
			if err != nil {
				return err
			}
			result = append(result, AccountWithGoals{Account: acct, Goals: gs})
		}
		return nil
	})
	return result, err
}

// TotalBalance sums the owner's balances across all accounts.
func (s *Service) TotalBalance(ctx context.Context, ownerID uuid.UUID) (total money.Money, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		accts, err := repo.ListByOwner(ctx, ownerID)
		if err != nil {
			return err
		}
		for _, acct := range accts {
			total, err = total.Add(acct.Balance)
			if err != nil {
				return err
			}
		}
		return nil
	})
	return total, err
}

// CreateGoal creates a goal under one of the owner's accounts with a zero
// allocation. Target amount, category and due date are optional.
func (s *Service) CreateGoal(
	ctx context.Context,
	ownerID, accountID uuid.UUID,
	name, category string,
	targetAmount *money.Money,
	dueDate *time.Time,
) (goal *domain.Goal, err error) {
	logger := s.logger.With("ownerID", ownerID, "accountID", accountID, "name", name)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		goals, err := uow.GoalRepository()
		if err != nil {
			return err
		}
		acct, err := accounts.Get(ctx, accountID)
		if err != nil {
			return err
		}
		if acct.OwnerID != ownerID {
			return domain.ErrNotOwner
		}
		builder := domain.NewGoal().
			WithAccountID(accountID).
			WithName(name).
			WithCategory(category)
		if targetAmount != nil {
			builder = builder.WithTargetAmount(*targetAmount)
		}
		if dueDate != nil {
			builder = builder.WithDueDate(*dueDate)
		}
		goal, err = builder.Build()
		if err != nil {
			return err
		}
		return goals.Create(ctx, goal)
	})
	if err != nil {
		logger.Error("goal creation failed", "error", err)
		return nil, err
	}
	logger.Info("goal created", "goalID", goal.ID)
	return goal, nil
}

// Goals lists every goal under the owner's accounts.
func (s *Service) Goals(ctx context.Context, ownerID uuid.UUID) (goals []*domain.Goal, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.GoalRepository()
		if err != nil {
			return err
		}
		goals, err = repo.ListByOwner(ctx, ownerID)
		return err
	})
	return goals, err
}

// DeleteGoal removes a goal. A positive allocation is released back to the
// account's unallocated pool: the account balance is untouched, only the
// claim disappears. The release is recorded as a transfer transaction so the
// activity feed explains where the earmarked funds went.
func (s *Service) DeleteGoal(ctx context.Context, ownerID, goalID uuid.UUID) (err error) {
	logger := s.logger.With("ownerID", ownerID, "goalID", goalID)

	accountID, err := s.goalAccountID(ctx, goalID)
	if err != nil {
		return err
	}
	release, err := s.locks.Acquire(ctx, accountID)
	if err != nil {
		return err
	}
	defer release()

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		goals, err := uow.GoalRepository()
		if err != nil {
			return err
		}
		txlog, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		goal, err := goals.Get(ctx, goalID)
		if err != nil {
			return err
		}
		acct, err := accounts.Get(ctx, goal.AccountID)
		if err != nil {
			return err
		}
		if acct.OwnerID != ownerID {
			return domain.ErrNotOwner
		}
		if err := goals.Delete(ctx, goalID); err != nil {
			return err
		}
		if !goal.Allocated.IsPositive() {
			return nil
		}
		tx := domain.NewTransaction(acct.ID, domain.TransactionTransfer, goal.Allocated).
			WithGoal(goal.ID)
		return txlog.Create(ctx, tx)
	})
	if err != nil {
		logger.Error("goal deletion failed", "error", err)
		return err
	}
	logger.Info("goal deleted")
	return nil
}

// RecentTransactions returns the owner's newest transactions across all
// accounts, newest first. A non-positive limit selects DefaultRecentLimit.
func (s *Service) RecentTransactions(
	ctx context.Context,
	ownerID uuid.UUID,
	limit int,
) (txs []*domain.Transaction, err error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		txs, err = repo.ListRecentByOwner(ctx, ownerID, limit)
		return err
	})
	return txs, err
}

// goalAccountID resolves a goal's owning account outside any lock. The
// account reference is immutable, so the resolved id stays valid when the
// lock is taken afterwards.
func (s *Service) goalAccountID(ctx context.Context, goalID uuid.UUID) (accountID uuid.UUID, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.GoalRepository()
		if err != nil {
			return err
		}
		goal, err := repo.Get(ctx, goalID)
		if err != nil {
			return err
		}
		accountID = goal.AccountID
		return nil
	})
	return accountID, err
}
