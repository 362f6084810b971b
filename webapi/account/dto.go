package account

import (
	"time"

	"github.com/google/uuid"

	"github.com/nestfund/ledger/pkg/domain/ledger"
	"github.com/nestfund/ledger/pkg/money"
	goalweb "github.com/nestfund/ledger/webapi/goal"
)

// CreateRequest is the body of POST /accounts/create. Amounts arrive as a
// decimal string or a JSON number; money.Money accepts both.
type CreateRequest struct {
	Name           string      `json:"name" validate:"required,max=255"`
	Type           string      `json:"type" validate:"required,oneof=spending savings"`
	InitialBalance money.Money `json:"initialBalance"`
}

// TransferRequest is the body of POST /accounts/transfer. The goal ids are
// optional; either side of the transfer may touch a goal allocation.
type TransferRequest struct {
	FromAccountID uuid.UUID   `json:"fromAccountId" validate:"required"`
	ToAccountID   uuid.UUID   `json:"toAccountId" validate:"required"`
	Amount        money.Money `json:"amount" validate:"required"`
	FromGoalID    *uuid.UUID  `json:"fromGoalId"`
	ToGoalID      *uuid.UUID  `json:"toGoalId"`
}

// Response is the wire representation of an account.
type Response struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	Type      string      `json:"type"`
	Balance   money.Money `json:"balance"`
	CreatedAt time.Time   `json:"created"`
}

// WithAllocationsResponse is an account enriched with its goals.
type WithAllocationsResponse struct {
	Response
	Allocations []goalweb.Response `json:"allocations"`
}

// ToResponse maps a domain account to its wire representation.
func ToResponse(a *ledger.Account) Response {
	return Response{
		ID:        a.ID,
		Name:      a.Name,
		Type:      string(a.Kind),
		Balance:   a.Balance,
		CreatedAt: a.CreatedAt,
	}
}
