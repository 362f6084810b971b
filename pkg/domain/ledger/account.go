// Package ledger holds the domain entities of the goal-allocation ledger:
// accounts, the goals that earmark portions of an account's balance, and the
// append-only transactions recorded for every applied operation.
//
// Invariants:
//   - An account balance is never negative.
//   - An account balance is never below the sum of its goals' allocations.
//   - A goal allocation is never negative.
package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nestfund/ledger/pkg/money"
)

// Kind classifies an account.
type Kind string

const (
	// KindSpending is a day-to-day spending account.
	KindSpending Kind = "spending"
	// KindSavings is a savings account.
	KindSavings Kind = "savings"
)

// IsValid reports whether the kind is one of the known account kinds.
func (k Kind) IsValid() bool {
	return k == KindSpending || k == KindSavings
}

// Account represents a user's financial account. Its balance is the single
// source of truth for total funds; goals merely earmark portions of it.
type Account struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Name      string
	Kind      Kind
	Balance   money.Money
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AccountBuilder provides a fluent API for constructing Account instances so
// that only valid accounts can be built.
type AccountBuilder struct {
	id        uuid.UUID
	ownerID   uuid.UUID
	name      string
	kind      Kind
	balance   money.Money
	createdAt time.Time
	updatedAt time.Time
}

// NewAccount creates a builder with sensible defaults: a fresh UUID, the
// spending kind and a zero balance.
func NewAccount() *AccountBuilder {
	return &AccountBuilder{
		id:        uuid.New(),
		kind:      KindSpending,
		createdAt: time.Now(),
	}
}

// WithID sets the ID for the account being built.
func (b *AccountBuilder) WithID(id uuid.UUID) *AccountBuilder {
	b.id = id
	return b
}

// WithOwnerID sets the owning user. This is a mandatory field.
func (b *AccountBuilder) WithOwnerID(ownerID uuid.UUID) *AccountBuilder {
	b.ownerID = ownerID
	return b
}

// WithName sets the display label. This is a mandatory field.
func (b *AccountBuilder) WithName(name string) *AccountBuilder {
	b.name = name
	return b
}

// WithKind sets the account kind. Defaults to spending.
func (b *AccountBuilder) WithKind(kind Kind) *AccountBuilder {
	b.kind = kind
	return b
}

// WithBalance sets the balance. Used for the initial balance at creation and
// for hydrating an existing account from a data store.
func (b *AccountBuilder) WithBalance(balance money.Money) *AccountBuilder {
	b.balance = balance
	return b
}

// WithCreatedAt sets the creation timestamp, primarily for hydration.
func (b *AccountBuilder) WithCreatedAt(t time.Time) *AccountBuilder {
	b.createdAt = t
	return b
}

// WithUpdatedAt sets the last-updated timestamp, primarily for hydration.
func (b *AccountBuilder) WithUpdatedAt(t time.Time) *AccountBuilder {
	b.updatedAt = t
	return b
}

// Build validates all invariants and returns the new Account.
func (b *AccountBuilder) Build() (*Account, error) {
	if b.ownerID == uuid.Nil {
		return nil, fmt.Errorf("%w: ownerID is required", ErrInvalidArgument)
	}
	if b.name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidArgument)
	}
	if !b.kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown account kind %q", ErrInvalidArgument, b.kind)
	}
	if b.balance.IsNegative() {
		return nil, fmt.Errorf("%w: initial balance must not be negative", ErrInvalidArgument)
	}
	return &Account{
		ID:        b.id,
		OwnerID:   b.ownerID,
		Name:      b.name,
		Kind:      b.kind,
		Balance:   b.balance,
		CreatedAt: b.createdAt,
		UpdatedAt: b.updatedAt,
	}, nil
}

// ValidateOwner checks that the caller owns this account.
func (a *Account) ValidateOwner(ownerID uuid.UUID) error {
	if a.OwnerID != ownerID {
		return ErrNotOwner
	}
	return nil
}

// Unallocated returns the portion of the balance not earmarked by any goal,
// given the sum of this account's goal allocations.
func (a *Account) Unallocated(allocated money.Money) (money.Money, error) {
	return a.Balance.Sub(allocated)
}

// ValidateDeposit checks the business invariants for a deposit.
func (a *Account) ValidateDeposit(ownerID uuid.UUID, amount money.Money) error {
	if err := a.ValidateOwner(ownerID); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return ErrAmountNotPositive
	}
	return nil
}

// ValidateWithdraw checks the business invariants for a withdrawal that draws
// on the unallocated pool. allocated is the sum of this account's goal
// allocations. The boundary is inclusive: withdrawing exactly the unallocated
// balance succeeds.
func (a *Account) ValidateWithdraw(ownerID uuid.UUID, amount, allocated money.Money) error {
	if err := a.ValidateOwner(ownerID); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return ErrAmountNotPositive
	}
	free, err := a.Unallocated(allocated)
	if err != nil {
		return err
	}
	if free.LessThan(amount) {
		return ErrInsufficientFunds
	}
	return nil
}

// Credit returns the balance after adding amount.
func (a *Account) Credit(amount money.Money) (money.Money, error) {
	return a.Balance.Add(amount)
}

// Debit returns the balance after subtracting amount. The caller must have
// validated available funds first; a negative result is rejected here as a
// final guard.
func (a *Account) Debit(amount money.Money) (money.Money, error) {
	next, err := a.Balance.Sub(amount)
	if err != nil {
		return money.Zero, err
	}
	if next.IsNegative() {
		return money.Zero, ErrInsufficientFunds
	}
	return next, nil
}
