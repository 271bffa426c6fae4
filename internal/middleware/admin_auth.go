package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
)

// AdminPasswordHeader carries the shared secret on every admin request.
const AdminPasswordHeader = "x-admin-password"

// AdminAuth is a Fiber middleware guarding the admin API with a pre-shared
// secret. An empty configured secret rejects every request: missing
// configuration fails closed, never open.
func AdminAuth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if secret == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}

		provided := c.Get(AdminPasswordHeader)
		if subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}

		return c.Next()
	}
}
