package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/saeid-a/JudoNutritionBack/internal/observability"
	"github.com/saeid-a/JudoNutritionBack/internal/services"
	"go.uber.org/zap"
)

// writeServiceError maps service errors to JSON responses. notFound
// overrides the 404 message. Unknown errors are returned to the app error
// handler.
func writeServiceError(c *fiber.Ctx, err error, notFound ...string) error {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationErr.Message})
	case errors.Is(err, services.ErrEmptyContent):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Message content cannot be empty"})
	case errors.Is(err, services.ErrInvalidResetToken):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid or expired reset token"})
	case errors.Is(err, services.ErrUnauthenticated):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authentication required"})
	case errors.Is(err, services.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
	case errors.Is(err, services.ErrInactiveAccount):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Account is deactivated"})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	case errors.Is(err, services.ErrNotFound):
		message := "Not found"
		if len(notFound) > 0 {
			message = notFound[0]
		}
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": message})
	case errors.Is(err, services.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Resource already exists"})
	default:
		return err
	}
}

// ErrorHandler renders errors that escaped the handlers. Anything that is not
// a fiber.Error is logged, reported to Sentry and hidden behind a generic 500.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
		}

		userID, _ := c.Locals("user_id").(string)
		log.Error("unhandled request error",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("user_id", userID),
			zap.Error(err),
		)
		observability.CaptureRequestErr(err, c.Method(), c.Path(), userID)

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
}
