package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Authenticate resolves the bearer token, if any, and records the result in
// the request locals. It never rejects: the export service decides what an
// anonymous caller gets.
func Authenticate(jwtService *JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(LocalAuthenticated, false)

		// Get token from Authorization header
		authHeader := c.Get(fiber.HeaderAuthorization)
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Next()
		}

		claims, err := jwtService.ValidateAccessToken(parts[1])
		if err != nil {
			return c.Next()
		}

		// Store user information in context
		c.Locals(LocalAuthenticated, true)
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalEmail, claims.Email)
		c.Locals(LocalRole, claims.Role)

		return c.Next()
	}
}

// IsAuthenticated reports whether Authenticate accepted the request's token
func IsAuthenticated(c *fiber.Ctx) bool {
	ok, _ := c.Locals(LocalAuthenticated).(bool)
	return ok
}

// UserID returns the authenticated user's id, or "" for anonymous requests
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalUserID).(string)
	return id
}
