package middleware

import (
	"errors"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/imf-ops/gadget-api/internal/auth"
	"github.com/imf-ops/gadget-api/internal/config"
	"github.com/imf-ops/gadget-api/internal/dto"
	"github.com/imf-ops/gadget-api/internal/services"
)

const identityKey = "identity"

// JWTProtected rejects requests without a structurally valid, unexpired,
// correctly signed bearer token.
func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Access denied: No security clearance provided",
			})
		},
	})
}

// IdentityRequired resolves the verified token to an operative identity and
// stores it in locals. Runs after JWTProtected; a token whose account has
// been deleted since issuance is rejected here.
func IdentityRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := c.Locals("user").(*jwt.Token)
		if !ok || token == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Access denied: No security clearance provided",
			})
		}

		identity, err := authService.Verify(token.Raw)
		if err != nil {
			message := "Access denied: Invalid security clearance"
			if errors.Is(err, services.ErrUserNotFound) {
				message = "Access denied: Agent not found in IMF database"
			}
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: message,
			})
		}

		c.Locals(identityKey, identity)
		return c.Next()
	}
}

// RoleRequired gates the route on clearance level.
func RoleRequired(roles ...auth.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := auth.Authorize(Identity(c), roles...); err != nil {
			if errors.Is(err, auth.ErrUnauthenticated) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
					Error:   true,
					Message: "Access denied: Authentication required",
				})
			}
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Access denied: Insufficient clearance level",
			})
		}
		return c.Next()
	}
}

// Identity returns the resolved caller, or nil outside authenticated routes.
func Identity(c *fiber.Ctx) *auth.Identity {
	identity, _ := c.Locals(identityKey).(*auth.Identity)
	return identity
}
