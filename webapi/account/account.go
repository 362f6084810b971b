// Package account exposes the account endpoints.
package account

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/nestfund/ledger/pkg/config"
	"github.com/nestfund/ledger/pkg/domain/ledger"
	"github.com/nestfund/ledger/pkg/middleware"
	authsvc "github.com/nestfund/ledger/pkg/service/auth"
	ledgersvc "github.com/nestfund/ledger/pkg/service/ledger"
	"github.com/nestfund/ledger/webapi/common"
	goalweb "github.com/nestfund/ledger/webapi/goal"
)

// Routes registers the account endpoints:
//   - GET  /accounts/list                : list the caller's accounts.
//   - GET  /accounts/listWithAllocations : accounts enriched with their goals.
//   - POST /accounts/create              : create an account.
//   - POST /accounts/transfer            : move funds between accounts.
func Routes(
	app *fiber.App,
	ledgerSvc *ledgersvc.Service,
	authSvc *authsvc.Service,
	cfg *config.App,
) {
	protected := middleware.JwtProtected(cfg.Jwt)
	app.Get("/accounts/list", protected, List(ledgerSvc, authSvc))
	app.Get("/accounts/listWithAllocations", protected, ListWithAllocations(ledgerSvc, authSvc))
	app.Post("/accounts/create", protected, Create(ledgerSvc, authSvc))
	app.Post("/accounts/transfer", protected, Transfer(ledgerSvc, authSvc))
}

// List returns a handler listing the caller's accounts.
func List(ledgerSvc *ledgersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ownerID, err := common.CurrentUserID(c, authSvc)
		if ownerID == uuid.Nil {
			return err
		}
		accts, err := ledgerSvc.Accounts(c.UserContext(), ownerID)
		if err != nil {
			return common.ErrorResponseJSON(c, err)
		}
		out := make([]Response, 0, len(accts))
		for _, a := range accts {
			out = append(out, ToResponse(a))
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, out)
	}
}

// ListWithAllocations returns a handler listing accounts with their goals.
func ListWithAllocations(
	ledgerSvc *ledgersvc.Service,
	authSvc *authsvc.Service,
) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ownerID, err := common.CurrentUserID(c, authSvc)
		if ownerID == uuid.Nil {
			return err
		}
		pairs, err := ledgerSvc.AccountsWithGoals(c.UserContext(), ownerID)
		if err != nil {
			return common.ErrorResponseJSON(c, err)
		}
		out := make([]WithAllocationsResponse, 0, len(pairs))
		for _, p := range pairs {
			out = append(out, WithAllocationsResponse{
				Response:    ToResponse(p.Account),
				Allocations: goalweb.ToResponses(p.Goals),
			})
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, out)
	}
}

// Create returns a handler creating an account for the caller.
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
		acct, err := ledgerSvc.CreateAccount(
			c.UserContext(),
			ownerID,
			input.Name,
			ledger.Kind(input.Type),
			input.InitialBalance,
		)
		if err != nil {
			return common.ErrorResponseJSON(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, ToResponse(acct))
	}
}

// Transfer returns a handler moving funds between the caller's accounts,
// optionally touching a goal allocation on either side.
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
		res, err := ledgerSvc.AccountTransfer(
			c.UserContext(),
			ownerID,
			input.FromAccountID,
			input.ToAccountID,
			input.Amount,
			input.FromGoalID,
			input.ToGoalID,
		)
		if err != nil {
			return common.ErrorResponseJSON(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, fiber.Map{
			"from": ToResponse(res.From),
			"to":   ToResponse(res.To),
		})
	}
}
