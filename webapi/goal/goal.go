// Package goal exposes the goal endpoints.
package goal

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/nestfund/ledger/pkg/config"
	"github.com/nestfund/ledger/pkg/middleware"
	authsvc "github.com/nestfund/ledger/pkg/service/auth"
	ledgersvc "github.com/nestfund/ledger/pkg/service/ledger"
	"github.com/nestfund/ledger/webapi/common"
)

// Routes registers the goal endpoints:
//   - GET  /goals/list          : list the caller's goals across accounts.
//   - POST /goals/create        : create a goal under an account.
//   - POST /goals/contribute    : earmark unallocated funds for a goal.
//   - POST /goals/setAllocation : override a goal's allocation.
//   - POST /goals/transfer      : move funds between two goals.
//   - POST /goals/delete        : delete a goal, releasing its allocation.
func Routes(
	app *fiber.App,
	ledgerSvc *ledgersvc.Service,
	authSvc *authsvc.Service,
	cfg *config.App,
) {
	protected := middleware.JwtProtected(cfg.Jwt)
	app.Get("/goals/list", protected, List(ledgerSvc, authSvc))
	app.Post("/goals/create", protected, Create(ledgerSvc, authSvc))
	app.Post("/goals/contribute", protected, Contribute(ledgerSvc, authSvc))
	app.Post("/goals/setAllocation", protected, SetAllocation(ledgerSvc, authSvc))
	app.Post("/goals/transfer", protected, Transfer(ledgerSvc, authSvc))
	app.Post("/goals/delete", protected, Delete(ledgerSvc, authSvc))
}

// List returns a handler listing every goal under the caller's accounts.
func List(ledgerSvc *ledgersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ownerID, err := common.CurrentUserID(c, authSvc)
		if ownerID == uuid.Nil {
			return err
		}
		goals, err := ledgerSvc.Goals(c.UserContext(), ownerID)
		if err != nil {
			return common.ErrorResponseJSON(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, ToResponses(goals))
	}
}

// Create returns a handler creating a goal with a zero allocation.
func Create(ledgerSvc *ledgersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ownerID, err := common.CurrentUserID(c, authSvc)
		if ownerID == uuid.Nil {
			return err
		}
		input, err := common.BindAndValidate[CreateRequest](c)
		if input == nil {
			return err
		}
		var due *time.Time
		if input.DueDateMillis != nil {
			t := time.UnixMilli(*input.DueDateMillis)
			due = &t
		}
		goal, err := ledgerSvc.CreateGoal(
			c.UserContext(),
			ownerID,
			input.AccountID,
			input.Name,
			input.Category,
			input.TargetAmount,
			due,
		)
		if err != nil {
			return common.ErrorResponseJSON(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, ToResponse(goal))
	}
}

// Contribute returns a handler earmarking unallocated account funds for a
// goal.
func Contribute(ledgerSvc *ledgersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ownerID, err := common.CurrentUserID(c, authSvc)
		if ownerID == uuid.Nil {
			return err
		}
		input, err := common.BindAndValidate[ContributeRequest](c)
		if input == nil {
			return err
		}
		res, err := ledgerSvc.Contribute(c.UserContext(), ownerID, input.GoalID, input.Amount)
		if err != nil {
			return common.ErrorResponseJSON(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, ToResponse(res.Goal))
	}
}

// SetAllocation returns a handler overriding a goal's allocation to an
// absolute amount. The balance check is skipped only when the request names
// enforceBalance false.
func SetAllocation(ledgerSvc *ledgersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ownerID, err := common.CurrentUserID(c, authSvc)
		if ownerID == uuid.Nil {
			return err
		}
		input, err := common.BindAndValidate[SetAllocationRequest](c)
		if input == nil {
			return err
		}
		enforce := true
		if input.EnforceBalance != nil {
			enforce = *input.EnforceBalance
		}
		res, err := ledgerSvc.SetAllocation(c.UserContext(), ownerID, input.GoalID, *input.AllocatedAmount, enforce)
		if err != nil {
			return common.ErrorResponseJSON(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, ToResponse(res.Goal))
	}
}

// Transfer returns a handler moving funds between two goals.
func Transfer(ledgerSvc *ledgersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ownerID, err := common.CurrentUserID(c, authSvc)
		if ownerID == uuid.Nil {
			return err
		}
		input, err := common.BindAndValidate[TransferRequest](c)
		if input == nil {
			return err
		}
		res, err := ledgerSvc.GoalTransfer(
			c.UserContext(),
			ownerID,
			input.FromGoalID,
			input.ToGoalID,
			input.Amount,
		)
		if err != nil {
			return common.ErrorResponseJSON(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, fiber.Map{
			"fromGoal": ToResponse(res.FromGoal),
			"toGoal":   ToResponse(res.ToGoal),
		})
	}
}

// Delete returns a handler deleting a goal. Any remaining allocation is
// released back to the account's unallocated pool.
func Delete(ledgerSvc *ledgersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ownerID, err := common.CurrentUserID(c, authSvc)
		if ownerID == uuid.Nil {
			return err
		}
		input, err := common.BindAndValidate[DeleteRequest](c)
		if input == nil {
			return err
		}
		if err := ledgerSvc.DeleteGoal(c.UserContext(), ownerID, input.GoalID); err != nil {
			return common.ErrorResponseJSON(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, nil)
	}
}
