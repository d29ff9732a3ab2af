package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const UserIDKey = "user_id"

// UserAuth resolves the session user from the X-User-Id header. The client
// stores the id it was handed on first visit (GET /api/user/me, which is
// outside this middleware) and sends it back on every request.
func UserAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Get("X-User-Id")
		if raw == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing user id",
			})
		}

		userID, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid user id",
			})
		}

		c.Locals(UserIDKey, userID)
		return c.Next()
	}
}

// GetUserID returns the authenticated user id, or uuid.Nil outside UserAuth.
func GetUserID(c *fiber.Ctx) uuid.UUID {
	userID, ok := c.Locals(UserIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return userID
}
