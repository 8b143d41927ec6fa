package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/example/salesapp/internal/domain"
)

// httpError maps domain sentinels onto HTTP status codes at the boundary.
// Anything unmapped bubbles up to fiber's default 500 handling.
func httpError(err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrInvalidArgument):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInvalidState):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrBlocked):
		return fiber.NewError(fiber.StatusForbidden, "your account has been blocked")
	case errors.Is(err, domain.ErrInvalidCode):
		return fiber.NewError(fiber.StatusBadRequest, "invalid or expired OTP code")
	case errors.Is(err, domain.ErrConflict):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrGatewayUnavailable):
		return fiber.NewError(fiber.StatusBadGateway, "payment gateway unavailable")
	default:
		return err
	}
}
