package routes

import (
	"github.com/gofiber/fiber/v2"

	panel_handlers "github.com/infobajajangola-cmd/casamentop/handlers/panel"
	"github.com/infobajajangola-cmd/casamentop/middlewares"
)

// registerPanelRoutes defines the organiser panel under /panel. Every
// route requires a logged-in administrator.
func registerPanelRoutes(app *fiber.App) {
	dashboardHandler := panel_handlers.NewDashboardHandler()
	guestHandler := panel_handlers.NewGuestHandler()
	checkInHandler := panel_handlers.NewCheckInHandler()
	assistantHandler := panel_handlers.NewAssistantHandler()

	panelGroup := app.Group("/panel")
	panelGroup.Use(middlewares.AuthMiddleware)

	panelGroup.Get("/home", dashboardHandler.ShowDashboard)

	panelGroup.Get("/guests", guestHandler.ListGuests)
	panelGroup.Get("/guests/create", guestHandler.ShowCreateGuest)
	panelGroup.Post("/guests/create", guestHandler.CreateGuest)
	panelGroup.Get("/guests/update/:id", guestHandler.ShowUpdateGuest)
	panelGroup.Post("/guests/update/:id", guestHandler.UpdateGuest)
	panelGroup.Post("/guests/delete/:id", guestHandler.DeleteGuest)
	panelGroup.Delete("/guests/delete/:id", guestHandler.DeleteGuest)
	panelGroup.Post("/guests/import", guestHandler.ImportGuests)
	panelGroup.Get("/guests/export", guestHandler.ExportGuests)

	panelGroup.Get("/checkin", checkInHandler.ShowTerminal)
	panelGroup.Post("/checkin/lookup", checkInHandler.Lookup)
	panelGroup.Post("/checkin/confirm", checkInHandler.ConfirmEntry)

	panelGroup.Get("/assistant", assistantHandler.ShowAssistant)
	panelGroup.Post("/assistant/generate", assistantHandler.GenerateMessage)
	panelGroup.Post("/assistant/analyze", assistantHandler.AnalyzeList)
}
