package middleware

import (
	"context"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/saeid-a/JudoNutritionBack/internal/models"
	"github.com/saeid-a/JudoNutritionBack/internal/services"
	"github.com/saeid-a/JudoNutritionBack/pkg/utils"
)

const (
	localUserID = "user_id"
	localRole   = "role"
	localClaims = "claims"
)

// RevocationChecker reports whether a token id was revoked by logout.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type Identity struct {
	UserID int64
	Role   string
}

func AuthRequired(secret string, revocations RevocationChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing authorization header",
			})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid authorization header format",
			})
		}

		claims, err := utils.ValidateToken(parts[1], secret)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}
		if _, err := strconv.ParseInt(claims.UserID, 10, 64); err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		if revocations != nil {
			revoked, err := revocations.IsRevoked(c.UserContext(), claims.ID)
			if err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"error": "Session store unavailable",
				})
			}
			if revoked {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Token has been revoked",
				})
			}
		}

		c.Locals(localUserID, claims.UserID)
		c.Locals(localRole, claims.Role)
		c.Locals(localClaims, claims)

		return c.Next()
	}
}

// RequireRole must run after AuthRequired.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		current, ok := c.Locals(localRole).(string)
		if !ok || current != role {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
		}
		return c.Next()
	}
}

func AthleteOnly() fiber.Handler {
	return RequireRole(models.RoleAthlete)
}

func NutritionistOnly() fiber.Handler {
	return RequireRole(models.RoleNutritionist)
}

func CurrentIdentity(c *fiber.Ctx) (Identity, error) {
	userIDStr, ok := c.Locals(localUserID).(string)
	if !ok {
		return Identity{}, services.ErrUnauthenticated
	}
	role, ok := c.Locals(localRole).(string)
	if !ok || role == "" {
		return Identity{}, services.ErrUnauthenticated
	}
	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil || userID <= 0 {
		return Identity{}, services.ErrUnauthenticated
	}
	return Identity{UserID: userID, Role: role}, nil
}

func CurrentClaims(c *fiber.Ctx) (*utils.Claims, error) {
	claims, ok := c.Locals(localClaims).(*utils.Claims)
	if !ok || claims == nil {
		return nil, services.ErrUnauthenticated
	}
	return claims, nil
}
