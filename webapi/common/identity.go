package common

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/nestfund/ledger/pkg/service/auth"
)

// CurrentUserID resolves the authenticated caller from the JWT stored by the
// auth middleware. On failure the error response is already written and
// uuid.Nil is returned.
func CurrentUserID(c *fiber.Ctx, authSvc *auth.Service) (uuid.UUID, error) {
	token, err := TokenFromContext(c)
	if token == nil {
		return uuid.Nil, err
	}
	userID, err := authSvc.GetCurrentUserID(token)
	if err != nil {
		return uuid.Nil, FailureResponseJSON(c, fiber.StatusUnauthorized, "invalid user identity")
	}
	return userID, nil
}
