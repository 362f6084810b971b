package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/nestfund/ledger/pkg/domain/ledger"
	"github.com/nestfund/ledger/pkg/money"
	"github.com/nestfund/ledger/pkg/repository"
)

// MutationResult carries the updated state of a single-account operation so
// callers never need a second round-trip to stay consistent.
type MutationResult struct {
	Account     *domain.Account
	Goal        *domain.Goal
	Transaction *domain.Transaction
}

// TransferResult carries the updated state of both sides of a transfer.
type TransferResult struct {
	From        *domain.Account
	To          *domain.Account
	FromGoal    *domain.Goal
	ToGoal      *domain.Goal
	Transaction *domain.Transaction
}

// Deposit increases the account balance by amount. With a goal id the amount
// enters already earmarked: the goal's allocation grows by the same amount.
// This is the only operation where one call moves two balances in the same
// direction.
func (s *Service) Deposit(
	ctx context.Context,
	ownerID, accountID uuid.UUID,
	amount money.Money,
	goalID *uuid.UUID,
) (*MutationResult, error) {
	logger := s.logger.With("op", "deposit", "ownerID", ownerID, "accountID", accountID, "amount", amount)

	release, err := s.locks.Acquire(ctx, accountID)
	if err != nil {
		return nil, err
	}
	defer release()

	var res MutationResult
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, goals, txlog, err := stores(uow)
		if err != nil {
			return err
		}
		acct, err := accounts.Get(ctx, accountID)
		if err != nil {
			return err
		}
		if err := acct.ValidateDeposit(ownerID, amount); err != nil {
			return err
		}
		var goal *domain.Goal
		if goalID != nil {
			if goal, err = goals.Get(ctx, *goalID); err != nil {
				return err
			}
			if err := goal.BelongsTo(accountID); err != nil {
				return err
			}
		}
		if acct.Balance, err = acct.Credit(amount); err != nil {
			return err
		}
		acct.UpdatedAt = time.Now()
		if err := accounts.Update(ctx, acct); err != nil {
			return err
		}
		if goal != nil {
			if goal.Allocated, err = goal.CreditAllocation(amount); err != nil {
				return err
			}
			goal.UpdatedAt = acct.UpdatedAt
			if err := goals.Update(ctx, goal); err != nil {
				return err
			}
		}
		tx := domain.NewTransaction(accountID, domain.TransactionDeposit, amount)
		if goal != nil {
			tx = tx.WithGoal(goal.ID)
		}
		if err := txlog.Create(ctx, tx); err != nil {
			return err
		}
		res = MutationResult{Account: acct, Goal: goal, Transaction: tx}
		return nil
	})
	if err != nil {
		logger.Error("deposit failed", "error", err)
		return nil, err
	}
	logger.Info("deposit applied", "balance", res.Account.Balance)
	return &res, nil
}

// Withdraw decreases the account balance by amount. With a goal id the amount
// is taken from that goal's allocation; without one it is taken from the
// account's unallocated pool, never dipping into goal reservations. The
// boundary is inclusive: withdrawing exactly the available amount succeeds.
func (s *Service) Withdraw(
	ctx context.Context,
	ownerID, accountID uuid.UUID,
	amount money.Money,
	goalID *uuid.UUID,
) (*MutationResult, error) {
	logger := s.logger.With("op", "withdraw", "ownerID", ownerID, "accountID", accountID, "amount", amount)

	release, err := s.locks.Acquire(ctx, accountID)
	if err != nil {
		return nil, err
	}
	defer release()

	var res MutationResult
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, goals, txlog, err := stores(uow)
		if err != nil {
			return err
		}
		acct, err := accounts.Get(ctx, accountID)
		if err != nil {
			return err
		}
		var goal *domain.Goal
		if goalID != nil {
			if goal, err = goals.Get(ctx, *goalID); err != nil {
				return err
			}
			if err := goal.BelongsTo(accountID); err != nil {
				return err
			}
			if err := acct.ValidateOwner(ownerID); err != nil {
				return err
			}
			if !amount.IsPositive() {
				return domain.ErrAmountNotPositive
			}
			if goal.Allocated, err = goal.DebitAllocation(amount); err != nil {
				return err
			}
		} else {
			allocated, err := goals.SumAllocated(ctx, accountID)
			if err != nil {
				return err
			}
			if err := acct.ValidateWithdraw(ownerID, amount, allocated); err != nil {
				return err
			}
		}
		if acct.Balance, err = acct.Debit(amount); err != nil {
			return err
		}
		acct.UpdatedAt = time.Now()
		if err := accounts.Update(ctx, acct); err != nil {
			return err
		}
		if goal != nil {
			goal.UpdatedAt = acct.UpdatedAt
			if err := goals.Update(ctx, goal); err != nil {
				return err
			}
		}
		tx := domain.NewTransaction(accountID, domain.TransactionWithdraw, amount)
		if goal != nil {
			tx = tx.WithGoal(goal.ID)
		}
		if err := txlog.Create(ctx, tx); err != nil {
			return err
		}
		res = MutationResult{Account: acct, Goal: goal, Transaction: tx}
		return nil
	})
	if err != nil {
		logger.Error("withdraw failed", "error", err)
		return nil, err
	}
	logger.Info("withdraw applied", "balance", res.Account.Balance)
	return &res, nil
}

// AccountTransfer moves amount from one account to another: a withdrawal from
// the source (optionally from a source goal's allocation) followed by a
// deposit to the destination (optionally into a destination goal), applied
// atomically. Naming the same account on both sides is valid only when the
// goal pair differs, which moves an allocation within the account.
func (s *Service) AccountTransfer(
	ctx context.Context,
	ownerID, fromAccountID, toAccountID uuid.UUID,
	amount money.Money,
	fromGoalID, toGoalID *uuid.UUID,
) (*TransferResult, error) {
	logger := s.logger.With(
		"op", "account_transfer",
		"ownerID", ownerID,
		"from", fromAccountID,
		"to", toAccountID,
		"amount", amount,
	)
	if !amount.IsPositive() {
		return nil, domain.ErrAmountNotPositive
	}
	if fromAccountID == toAccountID && equalGoalRefs(fromGoalID, toGoalID) {
		return nil, domain.ErrSelfTransfer
	}

	release, err := s.locks.Acquire(ctx, fromAccountID, toAccountID)
	if err != nil {
		return nil, err
	}
	defer release()

	var res TransferResult
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, goals, txlog, err := stores(uow)
		if err != nil {
			return err
		}
		from, err := accounts.Get(ctx, fromAccountID)
		if err != nil {
			return err
		}
		to := from
		if toAccountID != fromAccountID {
			if to, err = accounts.Get(ctx, toAccountID); err != nil {
				return err
			}
		}
		if from.OwnerID != ownerID || to.OwnerID != ownerID {
			return domain.ErrNotOwner
		}

		// Source side: debit a goal allocation, or check the unallocated pool.
		var fromGoal *domain.Goal
		if fromGoalID != nil {
			if fromGoal, err = goals.Get(ctx, *fromGoalID); err != nil {
				return err
			}
			if err := fromGoal.BelongsTo(fromAccountID); err != nil {
				return err
			}
			if fromGoal.Allocated, err = fromGoal.DebitAllocation(amount); err != nil {
				return err
			}
		} else {
			allocated, err := goals.SumAllocated(ctx, fromAccountID)
			if err != nil {
				return err
			}
			if err := from.ValidateWithdraw(ownerID, amount, allocated); err != nil {
				return err
			}
		}
		if from.Balance, err = from.Debit(amount); err != nil {
			return err
		}

		// Destination side.
		if to.Balance, err = to.Credit(amount); err != nil {
			return err
		}
		var toGoal *domain.Goal
		if toGoalID != nil {
			if toGoal, err = goals.Get(ctx, *toGoalID); err != nil {
				return err
			}
			if err := toGoal.BelongsTo(toAccountID); err != nil {
				return err
			}
			if toGoal.Allocated, err = toGoal.CreditAllocation(amount); err != nil {
				return err
			}
		}

		now := time.Now()
		from.UpdatedAt = now
		if err := accounts.Update(ctx, from); err != nil {
			return err
		}
		if to != from {
			to.UpdatedAt = now
			if err := accounts.Update(ctx, to); err != nil {
				return err
			}
		}
		for _, goal := range []*domain.Goal{fromGoal, toGoal} {
			if goal == nil {
				continue
			}
			goal.UpdatedAt = now
			if err := goals.Update(ctx, goal); err != nil {
				return err
			}
		}

		tx := domain.NewTransaction(fromAccountID, domain.TransactionTransfer, amount).
			WithCounterparty(toAccountID)
		if fromGoal != nil {
			tx = tx.WithGoal(fromGoal.ID)
		}
		if err := txlog.Create(ctx, tx); err != nil {
			return err
		}
		res = TransferResult{From: from, To: to, FromGoal: fromGoal, ToGoal: toGoal, Transaction: tx}
		return nil
	})
	if err != nil {
		logger.Error("transfer failed", "error", err)
		return nil, err
	}
	logger.Info("transfer applied")
	return &res, nil
}

// GoalTransfer moves amount between two goals' allocations. When the goals
// live under different accounts the underlying balances move too; within one
// account only the allocations change.
func (s *Service) GoalTransfer(
	ctx context.Context,
	ownerID, fromGoalID, toGoalID uuid.UUID,
	amount money.Money,
) (*TransferResult, error) {
	logger := s.logger.With(
		"op", "goal_transfer",
		"ownerID", ownerID,
		"fromGoal", fromGoalID,
		"toGoal", toGoalID,
		"amount", amount,
	)
	if !amount.IsPositive() {
		return nil, domain.ErrAmountNotPositive
	}
	if fromGoalID == toGoalID {
		return nil, domain.ErrSelfTransfer
	}

	fromAccountID, err := s.goalAccountID(ctx, fromGoalID)
	if err != nil {
		return nil, err
	}
	toAccountID, err := s.goalAccountID(ctx, toGoalID)
	if err != nil {
		return nil, err
	}

	release, err := s.locks.Acquire(ctx, fromAccountID, toAccountID)
	if err != nil {
		return nil, err
	}
	defer release()

	var res TransferResult
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, goals, txlog, err := stores(uow)
		if err != nil {
			return err
		}
		fromGoal, err := goals.Get(ctx, fromGoalID)
		if err != nil {
			return err
		}
		toGoal, err := goals.Get(ctx, toGoalID)
		if err != nil {
			return err
		}
		from, err := accounts.Get(ctx, fromGoal.AccountID)
		if err != nil {
			return err
		}
		to := from
		if toGoal.AccountID != fromGoal.AccountID {
			if to, err = accounts.Get(ctx, toGoal.AccountID); err != nil {
				return err
			}
		}
		if from.OwnerID != ownerID || to.OwnerID != ownerID {
			return domain.ErrNotOwner
		}

		if fromGoal.Allocated, err = fromGoal.DebitAllocation(amount); err != nil {
			return err
		}
		if toGoal.Allocated, err = toGoal.CreditAllocation(amount); err != nil {
			return err
		}

		now := time.Now()
		crossAccount := to != from
		if crossAccount {
			if from.Balance, err = from.Debit(amount); err != nil {
				return err
			}
			if to.Balance, err = to.Credit(amount); err != nil {
				return err
			}
			from.UpdatedAt = now
			to.UpdatedAt = now
			if err := accounts.Update(ctx, from); err != nil {
				return err
			}
			if err := accounts.Update(ctx, to); err != nil {
				return err
			}
		}
		fromGoal.UpdatedAt = now
		toGoal.UpdatedAt = now
		if err := goals.Update(ctx, fromGoal); err != nil {
			return err
		}
		if err := goals.Update(ctx, toGoal); err != nil {
			return err
		}

		tx := domain.NewTransaction(from.ID, domain.TransactionTransfer, amount).
			WithGoal(fromGoal.ID)
		if crossAccount {
			tx = tx.WithCounterparty(to.ID)
		}
		if err := txlog.Create(ctx, tx); err != nil {
			return err
		}
		res = TransferResult{From: from, To: to, FromGoal: fromGoal, ToGoal: toGoal, Transaction: tx}
		return nil
	})
	if err != nil {
		logger.Error("goal transfer failed", "error", err)
		return nil, err
	}
	logger.Info("goal transfer applied")
	return &res, nil
}

// Contribute earmarks amount of the owning account's unallocated balance for
// the goal. The account balance does not change; funds were already in the
// account and are merely reserved. The boundary is inclusive: contributing
// exactly the unallocated balance succeeds.
func (s *Service) Contribute(
	ctx context.Context,
	ownerID, goalID uuid.UUID,
	amount money.Money,
) (*MutationResult, error) {
	logger := s.logger.With("op", "contribute", "ownerID", ownerID, "goalID", goalID, "amount", amount)
	if !amount.IsPositive() {
		return nil, domain.ErrAmountNotPositive
	}

	accountID, err := s.goalAccountID(ctx, goalID)
	if err != nil {
		return nil, err
	}
	release, err := s.locks.Acquire(ctx, accountID)
	if err != nil {
		return nil, err
	}
	defer release()

	var res MutationResult
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, goals, txlog, err := stores(uow)
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
		allocated, err := goals.SumAllocated(ctx, acct.ID)
		if err != nil {
			return err
		}
		free, err := acct.Unallocated(allocated)
		if err != nil {
			return err
		}
		if free.LessThan(amount) {
			return domain.ErrInsufficientFunds
		}
		if goal.Allocated, err = goal.CreditAllocation(amount); err != nil {
			return err
		}
		goal.UpdatedAt = time.Now()
		if err := goals.Update(ctx, goal); err != nil {
			return err
		}
		tx := domain.NewTransaction(acct.ID, domain.TransactionTransfer, amount).
			WithGoal(goal.ID)
		if err := txlog.Create(ctx, tx); err != nil {
			return err
		}
		res = MutationResult{Account: acct, Goal: goal, Transaction: tx}
		return nil
	})
	if err != nil {
		logger.Error("contribution failed", "error", err)
		return nil, err
	}
	logger.Info("contribution applied", "allocated", res.Goal.Allocated)
	return &res, nil
}

// SetAllocation overrides a goal's allocation to an absolute amount. With
// enforceBalance the new amount may not exceed the owning account's balance
// minus the other goals' allocations; without it the check is skipped, which
// exists only to repair legacy data.
func (s *Service) SetAllocation(
	ctx context.Context,
	ownerID, goalID uuid.UUID,
	newAmount money.Money,
	enforceBalance bool,
) (*MutationResult, error) {
	logger := s.logger.With("op", "set_allocation", "ownerID", ownerID, "goalID", goalID, "amount", newAmount)
	if newAmount.IsNegative() {
		return nil, domain.ErrInvalidArgument
	}

	accountID, err := s.goalAccountID(ctx, goalID)
	if err != nil {
		return nil, err
	}
	release, err := s.locks.Acquire(ctx, accountID)
	if err != nil {
		return nil, err
	}
	defer release()

	var res MutationResult
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, goals, txlog, err := stores(uow)
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
		if enforceBalance {
			allocated, err := goals.SumAllocated(ctx, acct.ID)
			if err != nil {
				return err
			}
			others, err := allocated.Sub(goal.Allocated)
			if err != nil {
				return err
			}
			free, err := acct.Unallocated(others)
			if err != nil {
				return err
			}
			if free.LessThan(newAmount) {
				return domain.ErrAllocationExceedsBalance
			}
		}
		delta, err := newAmount.Sub(goal.Allocated)
		if err != nil {
			return err
		}
		goal.Allocated = newAmount
		goal.UpdatedAt = time.Now()
		if err := goals.Update(ctx, goal); err != nil {
			return err
		}
		res = MutationResult{Account: acct, Goal: goal}
		if delta.IsZero() {
			return nil
		}
		tx := domain.NewTransaction(acct.ID, domain.TransactionTransfer, absMoney(delta)).
			WithGoal(goal.ID)
		if err := txlog.Create(ctx, tx); err != nil {
			return err
		}
		res.Transaction = tx
		return nil
	})
	if err != nil {
		logger.Error("allocation override failed", "error", err)
		return nil, err
	}
	logger.Info("allocation overridden", "allocated", res.Goal.Allocated)
	return &res, nil
}

// stores fetches the three repositories a ledger mutation touches.
func stores(uow repository.UnitOfWork) (
	repository.AccountRepository,
	repository.GoalRepository,
	repository.TransactionRepository,
	error,
) {
	accounts, err := uow.AccountRepository()
	if err != nil {
		return nil, nil, nil, err
	}
	goals, err := uow.GoalRepository()
	if err != nil {
		return nil, nil, nil, err
	}
	txlog, err := uow.TransactionRepository()
	if err != nil {
		return nil, nil, nil, err
	}
	return accounts, goals, txlog, nil
}

func equalGoalRefs(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func absMoney(m money.Money) money.Money {
	if m.IsNegative() {
		return m.Negate()
	}
	return m
}
