// Package transaction exposes the deposit, withdrawal, balance and activity
// endpoints.
package transaction

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/nestfund/ledger/pkg/config"
	"github.com/nestfund/ledger/pkg/middleware"
	authsvc "github.com/nestfund/ledger/pkg/service/auth"
	ledgersvc "github.com/nestfund/ledger/pkg/service/ledger"
	accountweb "github.com/nestfund/ledger/webapi/account"
	"github.com/nestfund/ledger/webapi/common"
	goalweb "github.com/nestfund/ledger/webapi/goal"
)

// Routes registers the money-movement and activity endpoints:
//   - POST /createDeposit : deposit funds, optionally into a goal.
//   - POST /withdraw      : withdraw funds, optionally from a goal.
//   - GET  /balance       : total balance across the caller's accounts.
//   - GET  /transactions  : recent activity, newest first. /transactions/list
//     and /getTransactions are aliases kept for older clients.
func Routes(
	app *fiber.App,
	ledgerSvc *ledgersvc.Service,
	authSvc *authsvc.Service,
	cfg *config.App,
) {
	protected := middleware.JwtProtected(cfg.Jwt)
	app.Post("/createDeposit", protected, Deposit(ledgerSvc, authSvc))
	app.Post("/withdraw", protected, Withdraw(ledgerSvc, authSvc))
	app.Get("/balance", protected, Balance(ledgerSvc, authSvc))
	list := List(ledgerSvc, authSvc)
	app.Get("/transactions", protected, list)
	app.Get("/transactions/list", protected, list)
	app.Get("/getTransactions", protected, list)
}

// Deposit returns a handler crediting an account, and with a goal id also
// that goal's allocation.
func Deposit(ledgerSvc *ledgersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ownerID, err := common.CurrentUserID(c, authSvc)
		if ownerID == uuid.Nil {
			return err
		}
		input, err := common.BindAndValidate[DepositRequest](c)
		if input == nil {
			return err
		}
		res, err := ledgerSvc.Deposit(c.UserContext(), ownerID, input.AccountID, input.Amount, input.GoalID)
		if err != nil {
			return common.ErrorResponseJSON(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, mutationData(res))
	}
}

// Withdraw returns a handler debiting an account, from a goal's allocation
// when a goal id is given, otherwise from the unallocated pool.
func Withdraw(ledgerSvc *ledgersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ownerID, err := common.CurrentUserID(c, authSvc)
		if ownerID == uuid.Nil {
			return err
		}
		input, err := common.BindAndValidate[WithdrawRequest](c)
		if input == nil {
			return err
		}
		res, err := ledgerSvc.Withdraw(c.UserContext(), ownerID, input.AccountID, input.Amount, input.GoalID)
		if err != nil {
			return common.ErrorResponseJSON(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, mutationData(res))
	}
}

// Balance returns a handler summing the caller's account balances.
func Balance(ledgerSvc *ledgersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ownerID, err := common.CurrentUserID(c, authSvc)
		if ownerID == uuid.Nil {
			return err
		}
		total, err := ledgerSvc.TotalBalance(c.UserContext(), ownerID)
		if err != nil {
			return common.ErrorResponseJSON(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, fiber.Map{"balance": total})
	}
}

// List returns a handler for the caller's recent transactions. The optional
// limit query parameter caps the result; it defaults server-side.
func List(ledgerSvc *ledgersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ownerID, err := common.CurrentUserID(c, authSvc)
		if ownerID == uuid.Nil {
			return err
		}
		limit := c.QueryInt("limit")
		txs, err := ledgerSvc.RecentTransactions(c.UserContext(), ownerID, limit)
		if err != nil {
			return common.ErrorResponseJSON(c, err)
		}
		out := make([]Response, 0, len(txs))
		for _, t := range txs {
			out = append(out, ToResponse(t))
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, out)
	}
}

func mutationData(res *ledgersvc.MutationResult) fiber.Map {
	data := fiber.Map{
		"account":     accountweb.ToResponse(res.Account),
		"transaction": ToResponse(res.Transaction),
	}
	if res.Goal != nil {
		data["goal"] = goalweb.ToResponse(res.Goal)
	}
	return data
}
