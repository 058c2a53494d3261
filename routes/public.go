package routes

import (
	"github.com/gofiber/fiber/v2"

	public_handlers "github.com/infobajajangola-cmd/casamentop/handlers/public"
)

// registerPublicRoutes defines the guest-facing pages. No authentication;
// the ticket code in the URL is the only credential a guest carries.
func registerPublicRoutes(app *fiber.App) {
	searchHandler := public_handlers.NewSearchHandler()
	rsvpHandler := public_handlers.NewRSVPHandler()
	ticketHandler := public_handlers.NewTicketHandler()

	app.Get("/", searchHandler.ShowSearch)

	app.Get("/convite/:code", rsvpHandler.ShowInvitation)
	app.Post("/convite/:code/rsvp", rsvpHandler.SubmitResponse)
	app.Get("/convite/:code/recusado", rsvpHandler.ShowDeclined)
	app.Get("/convite/:code/bilhete", ticketHandler.ShowTicket)
	app.Get("/convite/:code/qr.png", ticketHandler.TicketQR)
}
