package account

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nestfund/ledger/pkg/domain/ledger"
	"github.com/nestfund/ledger/pkg/money"
)

func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func testAccount(t *testing.T) *ledger.Account {
	t.Helper()
	acct, err := ledger.NewAccount().
		WithID(uuid.New()).
		WithOwnerID(uuid.New()).
		WithName("Checking").
		WithKind(ledger.KindSpending).
		WithBalance(money.FromCents(10000)).
		Build()
	require.NoError(t, err)
	return acct
}

func TestAccountRepository_Get(t *testing.T) {
	require := require.New(t)
	db, mock := newTestDB(t)
	r := repo{db: db}

	accountID := uuid.New()
	ownerID := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "owner_id", "name", "kind", "balance", "created_at", "updated_at"}).
		AddRow(accountID, ownerID, "Checking", "spending", 10000, time.Now().UTC(), time.Now().UTC())
	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE id = \$1 ORDER BY "accounts"\."id" LIMIT \$2`).
		WithArgs(accountID, 1).WillReturnRows(rows)

	acct, err := r.Get(context.Background(), accountID)
	require.NoError(err)
	require.Equal(accountID, acct.ID)
	require.Equal(ownerID, acct.OwnerID)
	require.Equal(int64(10000), acct.Balance.Cents())

	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE id = \$1 ORDER BY "accounts"\."id" LIMIT \$2`).
		WithArgs(sqlmock.AnyArg(), 1).WillReturnError(gorm.ErrRecordNotFound)

	_, err = r.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ledger.ErrAccountNotFound)
}

func TestAccountRepository_Create(t *testing.T) {
	require := require.New(t)
	db, mock := newTestDB(t)
	r := repo{db: db}
	acct := testAccount(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "accounts" (.+) VALUES (.+)`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(r.Create(context.Background(), acct))

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "accounts" (.+) VALUES (.+)`).
		WillReturnError(errors.New("create error"))
	mock.ExpectRollback()

	require.Error(r.Create(context.Background(), acct))
}

func TestAccountRepository_Update(t *testing.T) {
	require := require.New(t)
	db, mock := newTestDB(t)
	r := repo{db: db}
	acct := testAccount(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "accounts" SET (.+) WHERE id = \$\d`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(r.Update(context.Background(), acct))

	// No matching row means the account is gone.
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "accounts" SET (.+) WHERE id = \$\d`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := r.Update(context.Background(), acct)
	assert.ErrorIs(t, err, ledger.ErrAccountNotFound)
}

func TestAccountRepository_ListByOwner(t *testing.T) {
	require := require.New(t)
	db, mock := newTestDB(t)
	r := repo{db: db}

	ownerID := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "owner_id", "name", "kind", "balance", "created_at", "updated_at"}).
		AddRow(uuid.New(), ownerID, "Checking", "spending", 10000, time.Now().UTC(), time.Now().UTC()).
		AddRow(uuid.New(), ownerID, "Savings", "savings", 25000, time.Now().UTC(), time.Now().UTC())
	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE owner_id = \$1 ORDER BY created_at`).
		WithArgs(ownerID).WillReturnRows(rows)

	accounts, err := r.ListByOwner(context.Background(), ownerID)
	require.NoError(err)
	require.Len(accounts, 2)
	require.Equal("Checking", accounts[0].Name)
	require.Equal("Savings", accounts[1].Name)
}
