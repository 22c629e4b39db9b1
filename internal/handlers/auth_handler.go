package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/saeid-a/JudoNutritionBack/internal/middleware"
	"github.com/saeid-a/JudoNutritionBack/internal/services"
	"github.com/saeid-a/JudoNutritionBack/pkg/utils"
)

type authService interface {
	Register(ctx context.Context, input services.RegisterInput) (*services.AuthResult, error)
	Login(ctx context.Context, email, password string) (*services.AuthResult, error)
	Logout(ctx context.Context, claims *utils.Claims) error
}

type passwordResetService interface {
	Request(ctx context.Context, email string) error
	Reset(ctx context.Context, token, newPassword string) error
}

type AuthHandler struct {
	auth   authService
	resets passwordResetService
}

func NewAuthHandler(auth authService, resets passwordResetService) *AuthHandler {
	return &AuthHandler{auth: auth, resets: resets}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Name     string `json:"name"`

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

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	ResetToken  string `json:"reset_token"`
	NewPassword string `json:"new_password"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	result, err := h.auth.Register(c.UserContext(), services.RegisterInput{
		Email:           req.Email,
		Password:        req.Password,
		Role:            req.Role,
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
	if errors.Is(err, services.ErrConflict) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "User already exists"})
	}
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Registration successful",
		"user":    result.User,
		"token":   result.Token,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	result, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"user":    result.User,
		"token":   result.Token,
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	claims, err := middleware.CurrentClaims(c)
	if err != nil {
		return writeServiceError(c, err)
	}
	if err := h.auth.Logout(c.UserContext(), claims); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Logout successful"})
}

func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req forgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	if req.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email is required"})
	}

	if err := h.resets.Request(c.UserContext(), req.Email); err != nil {
		return writeServiceError(c, err, "User not found")
	}

	return c.JSON(fiber.Map{
		"message":    "Password reset link sent",
		"email_sent": true,
	})
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req resetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	if req.ResetToken == "" || req.NewPassword == "" {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "Reset token and new password are required"})
	}

	if err := h.resets.Reset(c.UserContext(), req.ResetToken, req.NewPassword); err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Password reset successfully"})
}
