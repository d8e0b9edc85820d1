package middleware

import (
	"launchpad-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const userLocal = "user"

// RequireAuth ensures an account is in the session.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if CurrentAddress(c) == "" {
			return response.Unauthorized(c, "Unauthorized")
		}
		return c.Next()
	}
}

// GetUser returns the session user from Locals (nil if not logged in).
func GetUser(c *fiber.Ctx) interface{} {
	return c.Locals(userLocal)
}

// CurrentAddress returns the address of the logged-in account, or "".
func CurrentAddress(c *fiber.Ctx) string {
	m, ok := GetUser(c).(map[string]interface{})
	if !ok {
		return ""
	}
	a, _ := m["address"].(string)
	return a
}
