package goal

import (
	"time"

	"github.com/google/uuid"

	"github.com/nestfund/ledger/pkg/domain/ledger"
	"github.com/nestfund/ledger/pkg/money"
)

// CreateRequest is the body of POST /goals/create.
type CreateRequest struct {
	AccountID     uuid.UUID    `json:"accountId" validate:"required"`
	Name          string       `json:"name" validate:"required,max=255"`
	TargetAmount  *money.Money `json:"targetAmount"`
	Category      string       `json:"category" validate:"max=255"`
	DueDateMillis *int64       `json:"dueDateMillis"`
}

// ContributeRequest is the body of POST /goals/contribute.
type ContributeRequest struct {
	GoalID uuid.UUID   `json:"goalId" validate:"required"`
	Amount money.Money `json:"amount" validate:"required"`
}

// SetAllocationRequest is the body of POST /goals/setAllocation.
// EnforceBalance defaults to true when omitted.
type SetAllocationRequest struct {
	GoalID          uuid.UUID    `json:"goalId" validate:"required"`
	AllocatedAmount *money.Money `json:"allocatedAmount" validate:"required"`
	EnforceBalance  *bool        `json:"enforceBalance"`
}

// TransferRequest is the body of POST /goals/transfer.
type TransferRequest struct {
	FromGoalID uuid.UUID   `json:"fromGoalId" validate:"required"`
	ToGoalID   uuid.UUID   `json:"toGoalId" validate:"required"`
	Amount     money.Money `json:"amount" validate:"required"`
}

// DeleteRequest is the body of POST /goals/delete.
type DeleteRequest struct {
	GoalID uuid.UUID `json:"goalId" validate:"required"`
}

// Response is the wire representation of a goal.
type Response struct {
	ID              uuid.UUID    `json:"id"`
	AccountID       uuid.UUID    `json:"accountId"`
	Name            string       `json:"name"`
	Category        string       `json:"category,omitempty"`
	TargetAmount    *money.Money `json:"targetAmount,omitempty"`
	DueDate         *time.Time   `json:"dueDate,omitempty"`
	AllocatedAmount money.Money  `json:"allocatedAmount"`
	CreatedAt       time.Time    `json:"created"`
}

// ToResponse maps a domain goal to its wire representation.
func ToResponse(g *ledger.Goal) Response {
	return Response{
		ID:              g.ID,
		AccountID:       g.AccountID,
		Name:            g.Name,
		Category:        g.Category,
		TargetAmount:    g.TargetAmount,
		DueDate:         g.DueDate,
		AllocatedAmount: g.Allocated,
		CreatedAt:       g.CreatedAt,
	}
}

// ToResponses maps a slice of domain goals.
func ToResponses(goals []*ledger.Goal) []Response {
	out := make([]Response, 0, len(goals))
	for _, g := range goals {
		out = append(out, ToResponse(g))
	}
	return out
}
