// Package testutils provides an in-memory unit of work backed by map stores,
// used by service and handler tests that need real repository semantics
// without a database.
package testutils

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/nestfund/ledger/pkg/domain/ledger"
	"github.com/nestfund/ledger/pkg/domain/user"
	"github.com/nestfund/ledger/pkg/money"
	"github.com/nestfund/ledger/pkg/repository"
)

// MemoryUoW is an in-memory repository.UnitOfWork. Mutations made inside a Do
// call are applied to a copy of the stores and swapped in only when the
// function succeeds, mirroring the rollback behavior of a database
// transaction. A single mutex serializes transactions, so commits are atomic
// with respect to each other.
type MemoryUoW struct {
	mu sync.Mutex

	accounts     map[uuid.UUID]*ledger.Account
	goals        map[uuid.UUID]*ledger.Goal
	transactions []*ledger.Transaction
	users        map[uuid.UUID]*user.User
}

// NewMemoryUoW creates an empty in-memory unit of work.
func NewMemoryUoW() *MemoryUoW {
	return &MemoryUoW{
		accounts: make(map[uuid.UUID]*ledger.Account),
		goals:    make(map[uuid.UUID]*ledger.Goal),
		users:    make(map[uuid.UUID]*user.User),
	}
}

// Do implements repository.UnitOfWork.
func (m *MemoryUoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	staging := m.snapshot()
	if err := fn(staging); err != nil {
		return err
	}
	m.accounts = staging.accounts
	m.goals = staging.goals
	m.transactions = staging.transactions
	m.users = staging.users
	return nil
}

func (m *MemoryUoW) snapshot() *MemoryUoW {
	s := &MemoryUoW{
		accounts:     make(map[uuid.UUID]*ledger.Account, len(m.accounts)),
		goals:        make(map[uuid.UUID]*ledger.Goal, len(m.goals)),
		transactions: make([]*ledger.Transaction, len(m.transactions)),
		users:        make(map[uuid.UUID]*user.User, len(m.users)),
	}
	for id, a := range m.accounts {
		cp := *a
		s.accounts[id] = &cp
	}
	for id, g := range m.goals {
		cp := *g
		s.goals[id] = &cp
	}
	copy(s.transactions, m.transactions)
	for id, u := range m.users {
		cp := *u
		s.users[id] = &cp
	}
	return s
}

// AccountRepository implements repository.UnitOfWork.
func (m *MemoryUoW) AccountRepository() (repository.AccountRepository, error) {
	return &memoryAccounts{uow: m}, nil
}

// GoalRepository implements repository.UnitOfWork.
func (m *MemoryUoW) GoalRepository() (repository.GoalRepository, error) {
	return &memoryGoals{uow: m}, nil
}

// TransactionRepository implements repository.UnitOfWork.
func (m *MemoryUoW) TransactionRepository() (repository.TransactionRepository, error) {
	return &memoryTransactions{uow: m}, nil
}

// UserRepository implements repository.UnitOfWork.
func (m *MemoryUoW) UserRepository() (repository.UserRepository, error) {
	return &memoryUsers{uow: m}, nil
}

type memoryAccounts struct {
	uow *MemoryUoW
}

func (r *memoryAccounts) Get(_ context.Context, id uuid.UUID) (*ledger.Account, error) {
	acct, ok := r.uow.accounts[id]
	if !ok {
		return nil, ledger.ErrAccountNotFound
	}
	cp := *acct
	return &cp, nil
}

func (r *memoryAccounts) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]*ledger.Account, error) {
	var out []*ledger.Account
	for _, acct := range r.uow.accounts {
		if acct.OwnerID == ownerID {
			cp := *acct
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *memoryAccounts) Create(_ context.Context, account *ledger.Account) error {
	cp := *account
	r.uow.accounts[account.ID] = &cp
	return nil
}

func (r *memoryAccounts) Update(_ context.Context, account *ledger.Account) error {
	if _, ok := r.uow.accounts[account.ID]; !ok {
		return ledger.ErrAccountNotFound
	}
	cp := *account
	r.uow.accounts[account.ID] = &cp
	return nil
}

type memoryGoals struct {
	uow *MemoryUoW
}

func (r *memoryGoals) Get(_ context.Context, id uuid.UUID) (*ledger.Goal, error) {
	goal, ok := r.uow.goals[id]
	if !ok {
		return nil, ledger.ErrGoalNotFound
	}
	cp := *goal
	return &cp, nil
}

func (r *memoryGoals) ListByAccount(_ context.Context, accountID uuid.UUID) ([]*ledger.Goal, error) {
	var out []*ledger.Goal
	for _, goal := range r.uow.goals {
		if goal.AccountID == accountID {
			cp := *goal
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *memoryGoals) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*ledger.Goal, error) {
	var out []*ledger.Goal
	for _, goal := range r.uow.goals {
		acct, ok := r.uow.accounts[goal.AccountID]
		if ok && acct.OwnerID == ownerID {
			cp := *goal
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *memoryGoals) SumAllocated(_ context.Context, accountID uuid.UUID) (money.Money, error) {
	total := money.Zero
	var err error
	for _, goal := range r.uow.goals {
		if goal.AccountID != accountID {
			continue
		}
		if total, err = total.Add(goal.Allocated); err != nil {
			return money.Zero, err
		}
	}
	return total, nil
}

func (r *memoryGoals) Create(_ context.Context, goal *ledger.Goal) error {
	cp := *goal
	r.uow.goals[goal.ID] = &cp
	return nil
}

func (r *memoryGoals) Update(_ context.Context, goal *ledger.Goal) error {
	if _, ok := r.uow.goals[goal.ID]; !ok {
		return ledger.ErrGoalNotFound
	}
	cp := *goal
	r.uow.goals[goal.ID] = &cp
	return nil
}

func (r *memoryGoals) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.uow.goals[id]; !ok {
		return ledger.ErrGoalNotFound
	}
	delete(r.uow.goals, id)
	return nil
}

type memoryTransactions struct {
	uow *MemoryUoW
}

func (r *memoryTransactions) Create(_ context.Context, transaction *ledger.Transaction) error {
	cp := *transaction
	r.uow.transactions = append(r.uow.transactions, &cp)
	return nil
}

func (r *memoryTransactions) ListRecentByOwner(
	_ context.Context,
	ownerID uuid.UUID,
	limit int,
) ([]*ledger.Transaction, error) {
	var out []*ledger.Transaction
	for i := len(r.uow.transactions) - 1; i >= 0 && len(out) < limit; i-- {
		tx := r.uow.transactions[i]
		acct, ok := r.uow.accounts[tx.AccountID]
		if ok && acct.OwnerID == ownerID {
			cp := *tx
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memoryUsers struct {
	uow *MemoryUoW
}

func (r *memoryUsers) Get(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := r.uow.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memoryUsers) GetByUsername(_ context.Context, username string) (*user.User, error) {
	for _, u := range r.uow.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *memoryUsers) Create(_ context.Context, u *user.User) error {
	for _, existing := range r.uow.users {
		if existing.Username == u.Username {
			return user.ErrUsernameTaken
		}
	}
	cp := *u
	r.uow.users[u.ID] = &cp
	return nil
}
