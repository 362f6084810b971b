// Package auth exposes the login endpoint.
package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/nestfund/ledger/pkg/config"
	"github.com/nestfund/ledger/pkg/middleware"
	authsvc "github.com/nestfund/ledger/pkg/service/auth"
	"github.com/nestfund/ledger/webapi/common"
)

// Routes registers POST /login. Login is public; everything else on the API
// requires the token it issues.
func Routes(app *fiber.App, authSvc *authsvc.Service, cfg *config.App) {
	app.Post("/login", Login(authSvc, cfg))
}

// Login authenticates a user. On success it returns the token and also sets
// it as a session cookie for browser clients.
func Login(authSvc *authsvc.Service, cfg *config.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[LoginRequest](c)
		if input == nil {
			return err
		}
		u, err := authSvc.Login(c.UserContext(), input.Username, input.Password)
		if err != nil {
			return common.ErrorResponseJSON(c, err)
		}
		if u == nil {
			return common.FailureResponseJSON(
				c,
				fiber.StatusUnauthorized,
				"invalid username or password",
			)
		}
		token, err := authSvc.GenerateToken(u)
		if err != nil {
			return common.ErrorResponseJSON(c, err)
		}
		c.Cookie(&fiber.Cookie{
			Name:     middleware.SessionCookie,
			Value:    token,
			Expires:  time.Now().Add(cfg.Jwt.Expiry),
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
		return common.SuccessResponseJSON(c, fiber.StatusOK, fiber.Map{
			"token":    token,
			"userId":   u.ID,
			"username": u.Username,
		})
	}
}
