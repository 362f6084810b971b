package ledger_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/nestfund/ledger/pkg/domain/ledger"
	"github.com/nestfund/ledger/pkg/money"
	ledgersvc "github.com/nestfund/ledger/pkg/service/ledger"
	"github.com/nestfund/ledger/pkg/testutils"
)

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	os.Exit(m.Run())
}

type fixture struct {
	svc     *ledgersvc.Service
	ownerID uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return &fixture{
		svc:     ledgersvc.New(testutils.NewMemoryUoW(), slog.Default(), 0),
		ownerID: uuid.New(),
	}
}

// account creates an account with the given balance in cents.
func (f *fixture) account(t *testing.T, name string, cents int64) *domain.Account {
	t.Helper()
	acct, err := f.svc.CreateAccount(
		context.Background(),
		f.ownerID,
		name,
		domain.KindSpending,
		money.FromCents(cents),
	)
	require.NoError(t, err)
	return acct
}

// goal creates a goal and optionally contributes an initial allocation.
func (f *fixture) goal(t *testing.T, accountID uuid.UUID, name string, allocatedCents int64) *domain.Goal {
	t.Helper()
	g, err := f.svc.CreateGoal(context.Background(), f.ownerID, accountID, name, "", nil, nil)
	require.NoError(t, err)
	if allocatedCents > 0 {
		res, err := f.svc.Contribute(context.Background(), f.ownerID, g.ID, money.FromCents(allocatedCents))
		require.NoError(t, err)
		return res.Goal
	}
	return g
}

func TestService_CreateAccount(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	acct := f.account(t, "Checking", 10000)
	assert.Equal(t, f.ownerID, acct.OwnerID)
	assert.Equal(t, int64(10000), acct.Balance.Cents())

	_, err := f.svc.CreateAccount(
		context.Background(),
		f.ownerID,
		"Broke",
		domain.KindSavings,
		money.FromCents(-1),
	)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestService_Accounts(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.account(t, "Checking", 10000)
	f.account(t, "Savings", 20000)

	accts, err := f.svc.Accounts(context.Background(), f.ownerID)
	require.NoError(t, err)
	assert.Len(t, accts, 2)

	accts, err = f.svc.Accounts(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, accts)
}

func TestService_AccountsWithGoals(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	acct := f.account(t, "Checking", 10000)
	f.goal(t, acct.ID, "Vacation", 2500)
	f.goal(t, acct.ID, "Car", 0)

	pairs, err := f.svc.AccountsWithGoals(context.Background(), f.ownerID)
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, acct.ID, pairs[0].Account.ID)
	assert.Len(t, pairs[0].Goals, 2)
}

func TestService_TotalBalance(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.account(t, "Checking", 10000)
	f.account(t, "Savings", 25050)

	total, err := f.svc.TotalBalance(context.Background(), f.ownerID)
	require.NoError(t, err)
	assert.Equal(t, int64(35050), total.Cents())
}

func TestService_CreateGoal(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	acct := f.account(t, "Checking", 10000)

	t.Run("with target and due date", func(t *testing.T) {
		target := money.FromCents(500000)
		due := time.Now().AddDate(1, 0, 0)
		g, err := f.svc.CreateGoal(
			context.Background(),
			f.ownerID,
			acct.ID,
			"House",
			"housing",
			&target,
			&due,
		)
		require.NoError(t, err)
		assert.True(t, g.Allocated.IsZero())
		require.NotNil(t, g.TargetAmount)
		assert.Equal(t, int64(500000), g.TargetAmount.Cents())
	})

	t.Run("foreign account is rejected", func(t *testing.T) {
		_, err := f.svc.CreateGoal(
			context.Background(),
			uuid.New(),
			acct.ID,
			"Sneaky",
			"",
			nil,
			nil,
		)
		assert.ErrorIs(t, err, domain.ErrNotOwner)
	})

	t.Run("unknown account", func(t *testing.T) {
		_, err := f.svc.CreateGoal(
			context.Background(),
			f.ownerID,
			uuid.New(),
			"Nowhere",
			"",
			nil,
			nil,
		)
		assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	})
}

func TestService_DeleteGoal(t *testing.T) {
	t.Parallel()

	t.Run("releases the allocation and records a transfer", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		acct := f.account(t, "Checking", 10000)
		g := f.goal(t, acct.ID, "Vacation", 4000)

		require.NoError(t, f.svc.DeleteGoal(context.Background(), f.ownerID, g.ID))

		goals, err := f.svc.Goals(context.Background(), f.ownerID)
		require.NoError(t, err)
		assert.Empty(t, goals)

		// Balance is untouched; the allocation simply returns to the pool.
		accts, err := f.svc.Accounts(context.Background(), f.ownerID)
		require.NoError(t, err)
		assert.Equal(t, int64(10000), accts[0].Balance.Cents())

		txs, err := f.svc.RecentTransactions(context.Background(), f.ownerID, 10)
		require.NoError(t, err)
		require.NotEmpty(t, txs)
		assert.Equal(t, domain.TransactionTransfer, txs[0].Type)
		assert.Equal(t, int64(4000), txs[0].Amount.Cents())
	})

	t.Run("empty goal records nothing", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		acct := f.account(t, "Checking", 10000)
		g := f.goal(t, acct.ID, "Empty", 0)

		require.NoError(t, f.svc.DeleteGoal(context.Background(), f.ownerID, g.ID))
		txs, err := f.svc.RecentTransactions(context.Background(), f.ownerID, 10)
		require.NoError(t, err)
		assert.Empty(t, txs)
	})

	t.Run("not the owner", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		acct := f.account(t, "Checking", 10000)
		g := f.goal(t, acct.ID, "Vacation", 0)

		err := f.svc.DeleteGoal(context.Background(), uuid.New(), g.ID)
		assert.ErrorIs(t, err, domain.ErrNotOwner)
	})
}

func TestService_RecentTransactions(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	acct := f.account(t, "Checking", 0)

	for i := 0; i < 8; i++ {
		_, err := f.svc.Deposit(
			context.Background(),
			f.ownerID,
			acct.ID,
			money.FromCents(int64(100+i)),
			nil,
		)
		require.NoError(t, err)
	}

	t.Run("defaults to five, newest first", func(t *testing.T) {
		txs, err := f.svc.RecentTransactions(context.Background(), f.ownerID, 0)
		require.NoError(t, err)
		require.Len(t, txs, ledgersvc.DefaultRecentLimit)
		assert.Equal(t, int64(107), txs[0].Amount.Cents())
		for i := 1; i < len(txs); i++ {
			assert.False(t, txs[i-1].CreatedAt.Before(txs[i].CreatedAt))
		}
	})

	t.Run("explicit limit", func(t *testing.T) {
		txs, err := f.svc.RecentTransactions(context.Background(), f.ownerID, 3)
		require.NoError(t, err)
		assert.Len(t, txs, 3)
	})
}
