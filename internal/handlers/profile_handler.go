package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/saeid-a/JudoNutritionBack/internal/services"
)

type profileService interface {
	Get(ctx context.Context, userID int64) (*services.Profile, error)
	Update(ctx context.Context, userID int64, role string, input services.UpdateProfileInput) (*services.Profile, error)
}

type ProfileHandler struct {
	profiles profileService
}

func NewProfileHandler(profiles profileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

type updateProfileRequest struct {
	Name *string `json:"name"`

	Age            *int     `json:"age"`
	Gender         *string  `json:"gender"`
	WeightCategory *string  `json:"weight_category"`
	SportLevel     *string  `json:"sport_level"`
	Height         *float64 `json:"height"`
	TargetWeight   *float64 `json:"target_weight"`

	LicenseNumber   *string `json:"license_number"`
	Specialization  *string `json:"specialization"`
	ExperienceYears *int    `json:"experience_years"`
}

func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	caller, ok, err := identity(c)
	if !ok {
		return err
	}

	profile, err := h.profiles.Get(c.UserContext(), caller.UserID)
	if err != nil {
		return writeServiceError(c, err, "User not found")
	}
	return c.JSON(profile)
}

func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	caller, ok, err := identity(c)
	if !ok {
		return err
	}

	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	profile, err := h.profiles.Update(c.UserContext(), caller.UserID, caller.Role, services.UpdateProfileInput{
		Name:            req.Name,
		Age:             req.Age,
		Gender:          req.Gender,
		WeightCategory:  req.WeightCategory,
		SportLevel:      req.SportLevel,
		Height:          req.Height,
		TargetWeight:    req.TargetWeight,
		LicenseNumber:   req.LicenseNumber,
		Specialization:  req.Specialization,
		ExperienceYears: req.ExperienceYears,
	})
	if err != nil {
		return writeServiceError(c, err, "Profile not found")
	}
	return c.JSON(profile)
}
