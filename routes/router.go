package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	recoverMiddleware "github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/infobajajangola-cmd/casamentop/configs"
)

// SetupRoutes wires all application routes and the shared middlewares.
func SetupRoutes(app *fiber.App) {
	app.Use(recoverMiddleware.New())
	app.Use(logger.New())
	app.Use(initializeSessionAndLocals())

	app.Static("/assets", "./assets")

	registerAuthRoutes(app)
	registerPanelRoutes(app)

	// The public routes own "/" and "/convite/:code"; they come last so
	// the panel and auth groups match first.
	registerPublicRoutes(app)

	app.Use(notFoundHandler)
}

// initializeSessionAndLocals copies the session identity into locals so
// handlers and middlewares never touch the store directly.
func initializeSessionAndLocals() fiber.Handler {
	sessionStore := configs.SetupSession()
	return func(c *fiber.Ctx) error {
		c.Locals("session_store", sessionStore)
		sess, err := sessionStore.Get(c)
		if err != nil {
			return c.Next()
		}
		if userID, ok := sess.Get("user_id").(uint); ok && userID != 0 {
			c.Locals("userID", userID)
		}
		if userName, ok := sess.Get("user_name").(string); ok {
			c.Locals("userName", userName)
		}
		return c.Next()
	}
}

func notFoundHandler(c *fiber.Ctx) error {
	accepts := c.Accepts("application/json", "text/html")
	switch accepts {
	case "application/json":
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Recurso não encontrado"})
	default:
		return c.Status(fiber.StatusNotFound).Render("errors/404",
			fiber.Map{"Title": "Página Não Encontrada"}, "layouts/error_layout")
	}
}
