package handlers

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/saeid-a/JudoNutritionBack/internal/models"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type nutritionistService interface {
	ListAthletes(ctx context.Context) ([]models.AthleteSummary, error)
	AthleteDetail(ctx context.Context, athleteID int64) (*models.AthleteDetail, error)
	ExportAthlete(ctx context.Context, athleteID int64) ([]byte, string, error)
}

type NutritionistHandler struct {
	nutritionists nutritionistService
}

func NewNutritionistHandler(nutritionists nutritionistService) *NutritionistHandler {
	return &NutritionistHandler{nutritionists: nutritionists}
}

func (h *NutritionistHandler) ListAthletes(c *fiber.Ctx) error {
	athletes, err := h.nutritionists.ListAthletes(c.UserContext())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(fiber.Map{"athletes": athletes})
}

func (h *NutritionistHandler) AthleteDetail(c *fiber.Ctx) error {
	athleteID, err := c.ParamsInt("id")
	if err != nil || athleteID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid athlete ID"})
	}

	detail, err := h.nutritionists.AthleteDetail(c.UserContext(), int64(athleteID))
	if err != nil {
		return writeServiceError(c, err, "Athlete not found")
	}
	return c.JSON(detail)
}

func (h *NutritionistHandler) ExportAthlete(c *fiber.Ctx) error {
	athleteID, err := c.ParamsInt("id")
	if err != nil || athleteID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid athlete ID"})
	}

	data, filename, err := h.nutritionists.ExportAthlete(c.UserContext(), int64(athleteID))
	if err != nil {
		return writeServiceError(c, err, "Athlete not found")
	}

	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(data)
}
