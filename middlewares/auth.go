package middlewares

import (
	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware lets only logged-in administrators through. The session
// identity was copied into locals by the router; there is no ambient
// "is admin" flag anywhere else.
func AuthMiddleware(c *fiber.Ctx) error {
	if userID, ok := c.Locals("userID").(uint); !ok || userID == 0 {
		return c.Redirect("/auth/login", fiber.StatusTemporaryRedirect)
	}
	return c.Next()
}

// GuestMiddleware keeps logged-in administrators away from the login and
// similar anonymous-only pages.
func GuestMiddleware(c *fiber.Ctx) error {
	if userID, ok := c.Locals("userID").(uint); ok && userID != 0 {
		return c.Redirect("/panel/home", fiber.StatusFound)
	}
	return c.Next()
}
