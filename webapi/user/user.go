// Package user exposes the user registration endpoint.
package user

import (
	"github.com/gofiber/fiber/v2"

	usersvc "github.com/nestfund/ledger/pkg/service/user"
	"github.com/nestfund/ledger/webapi/common"
)

// Routes registers POST /createUser. Registration is public.
func Routes(app *fiber.App, userSvc *usersvc.Service) {
	app.Post("/createUser", Create(userSvc))
}

// Create registers a new user with a hashed password.
func Create(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateRequest](c)
		if input == nil {
			return err
		}
		u, err := userSvc.Create(c.UserContext(), input.Username, input.Email, input.Password)
		if err != nil {
			return common.ErrorResponseJSON(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, ToResponse(u))
	}
}
