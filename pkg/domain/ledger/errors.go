package ledger

import "errors"

var (
	// ErrInvalidArgument is returned when an operation receives malformed or
	// out-of-range input.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrAmountNotPositive is returned when an operation amount is zero or negative.
	ErrAmountNotPositive = errors.New("amount must be positive")

	// ErrAccountNotFound is returned when an account cannot be found.
	ErrAccountNotFound = errors.New("account not found")

	// ErrGoalNotFound is returned when a goal cannot be found.
	ErrGoalNotFound = errors.New("goal not found")

	// ErrNotOwner is returned when a caller acts on a resource they do not own.
	ErrNotOwner = errors.New("not owner")

	// ErrGoalAccountMismatch is returned when a goal does not belong to the
	// account named in the same request.
	ErrGoalAccountMismatch = errors.New("goal does not belong to account")

	// ErrInsufficientFunds is returned when an account's unallocated balance is
	// too low for a withdrawal, transfer or contribution.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInsufficientAllocation is returned when a goal's allocation is too low
	// for the requested debit.
	ErrInsufficientAllocation = errors.New("insufficient allocation")

	// ErrAllocationExceedsBalance is returned when a mutation would leave an
	// account balance below the sum of its goal allocations.
	ErrAllocationExceedsBalance = errors.New("allocation exceeds account balance")

	// ErrGoalNotEmpty is returned when a goal with a positive allocation cannot
	// be deleted under the active deletion policy.
	ErrGoalNotEmpty = errors.New("goal still holds an allocation")

	// ErrSelfTransfer is returned when a transfer names the same account on
	// both sides without moving an allocation.
	ErrSelfTransfer = errors.New("cannot transfer to same account")

	// ErrLockTimeout is returned when an operation gives up waiting for
	// exclusive access to the accounts it must mutate.
	ErrLockTimeout = errors.New("timed out waiting for account lock")
)
