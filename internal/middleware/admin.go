package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/pdt69/TubeBoost--youtube-video-view-exchange/internal/service"
)

const AdminKey = "is_admin"

// AdminAuth checks the Bearer token issued by the admin login endpoint.
func AdminAuth(adminSvc *service.AdminService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Get("Authorization")
		if strings.HasPrefix(token, "Bearer ") {
			token = strings.TrimPrefix(token, "Bearer ")
		}

		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing admin token",
			})
		}

		if err := adminSvc.VerifyToken(token); err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		c.Locals(AdminKey, true)
		return c.Next()
	}
}
