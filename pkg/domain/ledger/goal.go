package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nestfund/ledger/pkg/money"
)

// Goal earmarks a portion of its owning account's balance for a purpose.
// The allocated amount is a claim against the account balance, never a
// separate pool of funds.
type Goal struct {
	ID           uuid.UUID
	AccountID    uuid.UUID
	Name         string
	Category     string
	TargetAmount *money.Money
	DueDate      *time.Time
	Allocated    money.Money
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// GoalBuilder constructs Goal instances. New goals always start with a zero
// allocation; funds are earmarked afterwards through ledger operations.
type GoalBuilder struct {
	id           uuid.UUID
	accountID    uuid.UUID
	name         string
	category     string
	targetAmount *money.Money
	dueDate      *time.Time
	allocated    money.Money
	createdAt    time.Time
	updatedAt    time.Time
}

// NewGoal creates a builder with a fresh UUID and a zero allocation.
func NewGoal() *GoalBuilder {
	return &GoalBuilder{
		id:        uuid.New(),
		createdAt: time.Now(),
	}
}

// WithID sets the ID for the goal being built.
func (b *GoalBuilder) WithID(id uuid.UUID) *GoalBuilder {
	b.id = id
	return b
}

// WithAccountID sets the owning account. This is a mandatory field.
func (b *GoalBuilder) WithAccountID(accountID uuid.UUID) *GoalBuilder {
	b.accountID = accountID
	return b
}

// WithName sets the display label. This is a mandatory field.
func (b *GoalBuilder) WithName(name string) *GoalBuilder {
	b.name = name
	return b
}

// WithCategory sets the optional spending category.
func (b *GoalBuilder) WithCategory(category string) *GoalBuilder {
	b.category = category
	return b
}

// WithTargetAmount sets the optional target amount.
func (b *GoalBuilder) WithTargetAmount(target money.Money) *GoalBuilder {
	b.targetAmount = &target
	return b
}

// WithDueDate sets the optional due date.
func (b *GoalBuilder) WithDueDate(due time.Time) *GoalBuilder {
	b.dueDate = &due
	return b
}

// WithAllocated sets the allocation, for hydrating an existing goal from a
// data store.
func (b *GoalBuilder) WithAllocated(allocated money.Money) *GoalBuilder {
	b.allocated = allocated
	return b
}

// WithCreatedAt sets the creation timestamp, primarily for hydration.
func (b *GoalBuilder) WithCreatedAt(t time.Time) *GoalBuilder {
	b.createdAt = t
	return b
}

// WithUpdatedAt sets the last-updated timestamp, primarily for hydration.
func (b *GoalBuilder) WithUpdatedAt(t time.Time) *GoalBuilder {
	b.updatedAt = t
	return b
}

// Build validates all invariants and returns the new Goal.
func (b *GoalBuilder) Build() (*Goal, error) {
	if b.accountID == uuid.Nil {
		return nil, fmt.Errorf("%w: accountID is required", ErrInvalidArgument)
	}
	if b.name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidArgument)
	}
	if b.allocated.IsNegative() {
		return nil, fmt.Errorf("%w: allocation must not be negative", ErrInvalidArgument)
	}
	if b.targetAmount != nil && b.targetAmount.IsNegative() {
		return nil, fmt.Errorf("%w: target amount must not be negative", ErrInvalidArgument)
	}
	return &Goal{
		ID:           b.id,
		AccountID:    b.accountID,
		Name:         b.name,
		Category:     b.category,
		TargetAmount: b.targetAmount,
		DueDate:      b.dueDate,
		Allocated:    b.allocated,
		CreatedAt:    b.createdAt,
		UpdatedAt:    b.updatedAt,
	}, nil
}

// BelongsTo checks that the goal is owned by the given account.
func (g *Goal) BelongsTo(accountID uuid.UUID) error {
	if g.AccountID != accountID {
		return ErrGoalAccountMismatch
	}
	return nil
}

// CreditAllocation returns the allocation after adding amount.
func (g *Goal) CreditAllocation(amount money.Money) (money.Money, error) {
	return g.Allocated.Add(amount)
}

// DebitAllocation returns the allocation after subtracting amount. The
// boundary is inclusive: debiting exactly the current allocation succeeds.
func (g *Goal) DebitAllocation(amount money.Money) (money.Money, error) {
	if g.Allocated.LessThan(amount) {
		return money.Zero, ErrInsufficientAllocation
	}
	return g.Allocated.Sub(amount)
}
