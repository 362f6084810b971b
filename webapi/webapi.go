// Package webapi assembles the HTTP surface of the ledger. Handlers live in
// sub-packages per resource:
//   - account: account listing, creation and transfers
//   - goal: goal lifecycle and allocation operations
//   - transaction: deposits, withdrawals, balance and recent activity
//   - auth: login
//   - user: registration
package webapi

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/nestfund/ledger/pkg/app"
	accountweb "github.com/nestfund/ledger/webapi/account"
	authweb "github.com/nestfund/ledger/webapi/auth"
	"github.com/nestfund/ledger/webapi/common"
	goalweb "github.com/nestfund/ledger/webapi/goal"
	transactionweb "github.com/nestfund/ledger/webapi/transaction"
	userweb "github.com/nestfund/ledger/webapi/user"
)

// SetupApp initializes Fiber with the ledger routes and middleware.
func SetupApp(a *app.App) *fiber.App {
	fiberApp := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
			message := "internal server error"
			if status < fiber.StatusInternalServerError {
				message = err.Error()
			}
			return common.FailureResponseJSON(c, status, message)
		},
	})

	// Uses X-Forwarded-For when behind a proxy, falling back to the direct
	// peer address.
	fiberApp.Use(limiter.New(limiter.Config{
		Max:        a.Config.RateLimit.MaxRequests,
		Expiration: a.Config.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
				if commaIndex := strings.Index(forwardedFor, ","); commaIndex != -1 {
					return strings.TrimSpace(forwardedFor[:commaIndex])
				}
				return strings.TrimSpace(forwardedFor)
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.FailureResponseJSON(
				c,
				fiber.StatusTooManyRequests,
				"rate limit exceeded",
			)
		},
	}))
	fiberApp.Use(recover.New())
	fiberApp.Use(logger.New())

	fiberApp.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Ledger API is running")
	})

	authweb.Routes(fiberApp, a.AuthService, a.Config)
	userweb.Routes(fiberApp, a.UserService)
	accountweb.Routes(fiberApp, a.LedgerService, a.AuthService, a.Config)
	goalweb.Routes(fiberApp, a.LedgerService, a.AuthService, a.Config)
	transactionweb.Routes(fiberApp, a.LedgerService, a.AuthService, a.Config)

	return fiberApp
}
