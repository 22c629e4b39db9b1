package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/saeid-a/JudoNutritionBack/internal/middleware"
)

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
}

// identity reads the caller set by the auth middleware. ok is false when a
// 401 has already been written.
func identity(c *fiber.Ctx) (middleware.Identity, bool, error) {
	id, err := middleware.CurrentIdentity(c)
	if err != nil {
		return middleware.Identity{}, false, writeServiceError(c, err)
	}
	return id, true, nil
}
