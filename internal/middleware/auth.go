package middleware

import (
	"strings"

	"github.com/EL-K-Code/recipe-app-api/internal/services"
	"github.com/EL-K-Code/recipe-app-api/internal/types"
	"github.com/gofiber/fiber/v2"
)

// AuthRequired validates the Bearer token and stores the authenticated user
// id in the request context. Runs before any core logic; handlers behind it
// can assume a principal is present.
func AuthRequired(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return types.NewUnauthenticatedError("missing authorization header")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return types.NewUnauthenticatedError("invalid authorization format")
		}

		claims, err := services.ParseToken(jwtSecret, tokenString)
		if err != nil {
			return types.NewUnauthenticatedError("invalid or expired token")
		}

		c.Locals("userID", claims.UserID)

		return c.Next()
	}
}
