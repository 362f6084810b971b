// Package common holds the response envelope, error-to-status mapping and
// request binding shared by all API handlers.
package common

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/nestfund/ledger/pkg/domain/ledger"
	"github.com/nestfund/ledger/pkg/domain/user"
	"github.com/nestfund/ledger/pkg/money"
)

// Response is the standard API envelope. Success is always present; Data is
// set on success, Message on failure.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// SuccessResponseJSON writes a success envelope with the given status code.
func SuccessResponseJSON(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(Response{Success: true, Data: data})
}

// FailureResponseJSON writes a failure envelope with the given status code.
func FailureResponseJSON(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(Response{Success: false, Message: message})
}

// ErrorResponseJSON maps err to an HTTP status via ErrorToStatusCode and
// writes the failure envelope. Internal errors get an opaque message.
func ErrorResponseJSON(c *fiber.Ctx, err error) error {
	status := ErrorToStatusCode(err)
	message := err.Error()
	if status == fiber.StatusInternalServerError {
		message = "internal server error"
	}
	return FailureResponseJSON(c, status, message)
}

// ErrorToStatusCode maps domain errors to HTTP status codes.
func ErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, ledger.ErrAccountNotFound),
		errors.Is(err, ledger.ErrGoalNotFound),
		errors.Is(err, user.ErrUserNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ledger.ErrNotOwner),
		errors.Is(err, user.ErrUserUnauthorized):
		return fiber.StatusForbidden
	case errors.Is(err, ledger.ErrInsufficientFunds),
		errors.Is(err, ledger.ErrInsufficientAllocation),
		errors.Is(err, ledger.ErrAllocationExceedsBalance),
		errors.Is(err, ledger.ErrGoalNotEmpty):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, ledger.ErrAmountNotPositive),
		errors.Is(err, ledger.ErrGoalAccountMismatch),
		errors.Is(err, ledger.ErrSelfTransfer),
		errors.Is(err, ledger.ErrInvalidArgument),
		errors.Is(err, money.ErrInvalidAmount),
		errors.Is(err, money.ErrTooManyDecimals),
		errors.Is(err, money.ErrOverflow),
		errors.Is(err, user.ErrUsernameTaken):
		return fiber.StatusBadRequest
	case errors.Is(err, ledger.ErrLockTimeout):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// BindAndValidate parses the request body into T and validates it with
// go-playground/validator. On failure the error response is already written
// and a nil pointer is returned.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		return nil, FailureResponseJSON(c, fiber.StatusBadRequest, "invalid request body")
	}
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return nil, FailureResponseJSON(c, fiber.StatusBadRequest, err.Error())
	}
	return &input, nil
}

// TokenFromContext extracts the JWT the auth middleware stored in locals.
func TokenFromContext(c *fiber.Ctx) (*jwt.Token, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return nil, FailureResponseJSON(c, fiber.StatusUnauthorized, "missing user context")
	}
	return token, nil
}
