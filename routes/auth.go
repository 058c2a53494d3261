package routes

import (
	"github.com/gofiber/fiber/v2"

	auth_handlers "github.com/infobajajangola-cmd/casamentop/handlers/auth"
	"github.com/infobajajangola-cmd/casamentop/middlewares"
)

func registerAuthRoutes(app *fiber.App) {
	authHandler := auth_handlers.NewAuthHandler()
	authGroup := app.Group("/auth")

	guestRoutes := authGroup.Group("")
	guestRoutes.Use(middlewares.GuestMiddleware)
	guestRoutes.Get("/login", authHandler.ShowLogin)
	guestRoutes.Post("/login", authHandler.Login)

	userRoutes := authGroup.Group("")
	userRoutes.Use(middlewares.AuthMiddleware)
	userRoutes.Get("/logout", authHandler.Logout)
	userRoutes.Post("/logout", authHandler.Logout)
	userRoutes.Post("/profile/update-password", authHandler.UpdatePassword)
}
