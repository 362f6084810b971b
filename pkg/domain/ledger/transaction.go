package ledger

import (
	"time"

	"github.com/google/uuid"

	"github.com/nestfund/ledger/pkg/money"
)

// TransactionType classifies an applied ledger operation.
type TransactionType string

const (
	// TransactionDeposit records funds entering an account.
	TransactionDeposit TransactionType = "deposit"
	// TransactionWithdraw records funds leaving an account.
	TransactionWithdraw TransactionType = "withdraw"
	// TransactionTransfer records funds moving between accounts or goals.
	TransactionTransfer TransactionType = "transfer"
)

// Transaction is the immutable record of one successfully applied operation.
// Amount is an unsigned magnitude; consumers sign it from the type. GoalID and
// CounterpartyID are non-owning references and may be nil for account-level
// operations.
type Transaction struct {
	ID             uuid.UUID
	AccountID      uuid.UUID
	GoalID         *uuid.UUID
	CounterpartyID *uuid.UUID
	Type           TransactionType
	Amount         money.Money
	CreatedAt      time.Time
}

// NewTransaction creates a transaction record for an applied operation.
func NewTransaction(
	accountID uuid.UUID,
	txType TransactionType,
	amount money.Money,
) *Transaction {
	return &Transaction{
		ID:        uuid.New(),
		AccountID: accountID,
		Type:      txType,
		Amount:    amount,
		CreatedAt: time.Now(),
	}
}

// WithGoal attaches the goal the operation touched.
func (t *Transaction) WithGoal(goalID uuid.UUID) *Transaction {
	t.GoalID = &goalID
	return t
}

// WithCounterparty attaches the other account of a transfer.
func (t *Transaction) WithCounterparty(accountID uuid.UUID) *Transaction {
	t.CounterpartyID = &accountID
	return t
}
