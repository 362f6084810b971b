// Package middleware provides the session guard applied to protected routes.
package middleware

import (
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"

	"github.com/nestfund/ledger/pkg/config"
)

// SessionCookie is the cookie carrying the session token for browser clients.
const SessionCookie = "session"

// JwtProtected verifies the session token from the Authorization header or
// the session cookie and stores the parsed token in c.Locals("user").
func JwtProtected(cfg config.Jwt) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   jwtware.SigningKey{Key: []byte(cfg.Secret)},
		TokenLookup:  "header:Authorization,cookie:" + SessionCookie,
		AuthScheme:   "Bearer",
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	if err.Error() == "Missing or malformed JWT" {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"success": false, "message": "Missing or malformed session token"})
	}
	return c.Status(fiber.StatusUnauthorized).
		JSON(fiber.Map{"success": false, "message": "Invalid or expired session token"})
}
