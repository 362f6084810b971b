package ledger_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nestfund/ledger/pkg/domain/ledger"
	"github.com/nestfund/ledger/pkg/money"
)

func newTestAccount(t *testing.T, ownerID uuid.UUID, cents int64) *ledger.Account {
	t.Helper()
	acct, err := ledger.NewAccount().
		WithOwnerID(ownerID).
		WithName("Checking").
		WithKind(ledger.KindSpending).
		WithBalance(money.FromCents(cents)).
		Build()
	require.NoError(t, err)
	return acct
}

func TestAccountBuilder(t *testing.T) {
	t.Parallel()
	ownerID := uuid.New()

	t.Run("valid account", func(t *testing.T) {
		t.Parallel()
		acct := newTestAccount(t, ownerID, 10000)
		assert.NotEqual(t, uuid.Nil, acct.ID)
		assert.Equal(t, ownerID, acct.OwnerID)
		assert.Equal(t, ledger.KindSpending, acct.Kind)
		assert.Equal(t, int64(10000), acct.Balance.Cents())
	})

	t.Run("defaults to spending kind and zero balance", func(t *testing.T) {
		t.Parallel()
		acct, err := ledger.NewAccount().
			WithOwnerID(ownerID).
			WithName("Default").
			Build()
		require.NoError(t, err)
		assert.Equal(t, ledger.KindSpending, acct.Kind)
		assert.True(t, acct.Balance.IsZero())
	})

	t.Run("missing owner", func(t *testing.T) {
		t.Parallel()
		_, err := ledger.NewAccount().WithName("No Owner").Build()
		assert.ErrorIs(t, err, ledger.ErrInvalidArgument)
	})

	t.Run("missing name", func(t *testing.T) {
		t.Parallel()
		_, err := ledger.NewAccount().WithOwnerID(ownerID).Build()
		assert.ErrorIs(t, err, ledger.ErrInvalidArgument)
	})

	t.Run("unknown kind", func(t *testing.T) {
		t.Parallel()
		_, err := ledger.NewAccount().
			WithOwnerID(ownerID).
			WithName("Weird").
			WithKind(ledger.Kind("credit")).
			Build()
		assert.ErrorIs(t, err, ledger.ErrInvalidArgument)
	})

	t.Run("negative initial balance", func(t *testing.T) {
		t.Parallel()
		_, err := ledger.NewAccount().
			WithOwnerID(ownerID).
			WithName("Broke").
			WithBalance(money.FromCents(-1)).
			Build()
		assert.ErrorIs(t, err, ledger.ErrInvalidArgument)
	})
}

func TestAccount_ValidateDeposit(t *testing.T) {
	t.Parallel()
	ownerID := uuid.New()
	acct := newTestAccount(t, ownerID, 0)

	assert.NoError(t, acct.ValidateDeposit(ownerID, money.FromCents(100)))
	assert.ErrorIs(t, acct.ValidateDeposit(uuid.New(), money.FromCents(100)), ledger.ErrNotOwner)
	assert.ErrorIs(t, acct.ValidateDeposit(ownerID, money.Zero), ledger.ErrAmountNotPositive)
	assert.ErrorIs(t, acct.ValidateDeposit(ownerID, money.FromCents(-100)), ledger.ErrAmountNotPositive)
}

func TestAccount_ValidateWithdraw(t *testing.T) {
	t.Parallel()
	ownerID := uuid.New()
	acct := newTestAccount(t, ownerID, 10000)
	allocated := money.FromCents(4000)

	t.Run("within unallocated pool", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, acct.ValidateWithdraw(ownerID, money.FromCents(5000), allocated))
	})

	t.Run("exactly the unallocated pool succeeds", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, acct.ValidateWithdraw(ownerID, money.FromCents(6000), allocated))
	})

	t.Run("one cent over fails", func(t *testing.T) {
		t.Parallel()
		err := acct.ValidateWithdraw(ownerID, money.FromCents(6001), allocated)
		assert.ErrorIs(t, err, ledger.ErrInsufficientFunds)
	})

	t.Run("goal reservations are untouchable", func(t *testing.T) {
		t.Parallel()
		err := acct.ValidateWithdraw(ownerID, money.FromCents(10000), allocated)
		assert.ErrorIs(t, err, ledger.ErrInsufficientFunds)
	})

	t.Run("not the owner", func(t *testing.T) {
		t.Parallel()
		err := acct.ValidateWithdraw(uuid.New(), money.FromCents(100), allocated)
		assert.ErrorIs(t, err, ledger.ErrNotOwner)
	})

	t.Run("non-positive amount", func(t *testing.T) {
		t.Parallel()
		err := acct.ValidateWithdraw(ownerID, money.Zero, allocated)
		assert.ErrorIs(t, err, ledger.ErrAmountNotPositive)
	})
}

func TestAccount_CreditDebit(t *testing.T) {
	t.Parallel()
	acct := newTestAccount(t, uuid.New(), 10000)

	next, err := acct.Credit(money.FromCents(500))
	require.NoError(t, err)
	assert.Equal(t, int64(10500), next.Cents())

	next, err = acct.Debit(money.FromCents(10000))
	require.NoError(t, err)
	assert.True(t, next.IsZero())

	_, err = acct.Debit(money.FromCents(10001))
	assert.ErrorIs(t, err, ledger.ErrInsufficientFunds)
}

func TestAccount_Unallocated(t *testing.T) {
	t.Parallel()
	acct := newTestAccount(t, uuid.New(), 10000)

	free, err := acct.Unallocated(money.FromCents(2500))
	require.NoError(t, err)
	assert.Equal(t, int64(7500), free.Cents())
}
