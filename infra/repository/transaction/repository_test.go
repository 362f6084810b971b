package transaction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
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

func TestTransactionRepository_Create(t *testing.T) {
	require := require.New(t)
	db, mock := newTestDB(t)
	r := repo{db: db}

	tx := ledger.NewTransaction(uuid.New(), ledger.TransactionDeposit, money.FromCents(5000))

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "transactions" (.+) VALUES (.+)`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(r.Create(context.Background(), tx))

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "transactions" (.+) VALUES (.+)`).
		WillReturnError(errors.New("create error"))
	mock.ExpectRollback()

	require.Error(r.Create(context.Background(), tx))
}

func TestTransactionRepository_ListRecentByOwner(t *testing.T) {
	require := require.New(t)
	db, mock := newTestDB(t)
	r := repo{db: db}

	ownerID := uuid.New()
	accountID := uuid.New()
	goalID := uuid.New()
	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "account_id", "goal_id", "counterparty_id", "type", "amount", "created_at",
	}).
		AddRow(uuid.New(), accountID, nil, nil, "withdraw", 2000, now).
		AddRow(uuid.New(), accountID, goalID, nil, "deposit", 5000, now.Add(-time.Minute))
	mock.ExpectQuery(`SELECT (.+) FROM "transactions" JOIN accounts ON accounts\.id = transactions\.account_id WHERE accounts\.owner_id = \$1 ORDER BY transactions\.created_at DESC LIMIT \$2`).
		WithArgs(ownerID, 2).WillReturnRows(rows)

	txs, err := r.ListRecentByOwner(context.Background(), ownerID, 2)
	require.NoError(err)
	require.Len(txs, 2)
	require.Equal(ledger.TransactionWithdraw, txs[0].Type)
	require.Equal(int64(2000), txs[0].Amount.Cents())
	require.Nil(txs[0].GoalID)
	require.NotNil(txs[1].GoalID)
	require.Equal(goalID, *txs[1].GoalID)
}
