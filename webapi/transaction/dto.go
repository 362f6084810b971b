package transaction

import (
	"time"

	"github.com/google/uuid"

	"github.com/nestfund/ledger/pkg/domain/ledger"
	"github.com/nestfund/ledger/pkg/money"
)

// DepositRequest is the body of POST /createDeposit. A goal id deposits the
// funds already earmarked.
type DepositRequest struct {
	AccountID uuid.UUID   `json:"accountId" validate:"required"`
	Amount    money.Money `json:"amount" validate:"required"`
	GoalID    *uuid.UUID  `json:"goalId"`
}

// WithdrawRequest is the body of POST /withdraw. A goal id withdraws from
// that goal's allocation instead of the unallocated pool.
type WithdrawRequest struct {
	AccountID uuid.UUID   `json:"accountId" validate:"required"`
	Amount    money.Money `json:"amount" validate:"required"`
	GoalID    *uuid.UUID  `json:"goalId"`
}

// Response is the wire representation of a transaction log record.
type Response struct {
	ID        uuid.UUID   `json:"id"`
	AccountID uuid.UUID   `json:"accountId"`
	ToID      *uuid.UUID  `json:"toId,omitempty"`
	GoalID    *uuid.UUID  `json:"goalId,omitempty"`
	Type      string      `json:"type"`
	Amount    money.Money `json:"amount"`
	CreatedAt time.Time   `json:"created"`
}

// ToResponse maps a domain transaction to its wire representation.
func ToResponse(t *ledger.Transaction) Response {
	return Response{
		ID:        t.ID,
		AccountID: t.AccountID,
		ToID:      t.CounterpartyID,
		GoalID:    t.GoalID,
		Type:      string(t.Type),
		Amount:    t.Amount,
		CreatedAt: t.CreatedAt,
	}
}
