package web

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/warit-s/user-account-backend/internal/user"
)

// NewErrorHandler returns the single boundary function every handler
// funnels failures through. Known error kinds become 4xx responses;
// anything else is logged server-side and answered with fixed text so
// no internal detail leaks to the client.
func NewErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var validationErr *user.ValidationError
		switch {
		case errors.As(err, &validationErr):
			return respondError(c, fiber.StatusBadRequest, validationErr.Message)
		case errors.Is(err, user.ErrDuplicate):
			return respondError(c, fiber.StatusConflict, "Email, username or phone number already exists")
		case errors.Is(err, user.ErrNotFound):
			return respondError(c, fiber.StatusNotFound, "User not found")
		case errors.Is(err, user.ErrInvalidCredentials):
			return respondError(c, fiber.StatusUnauthorized, "Invalid email or password")
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return respondError(c, fiberErr.Code, fiberErr.Message)
		}

		logger.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return respondError(c, fiber.StatusInternalServerError, "Something went wrong.")
	}
}

func respondError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"data":    nil,
	})
}
