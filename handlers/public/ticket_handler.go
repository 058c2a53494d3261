package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"

	"github.com/infobajajangola-cmd/casamentop/configs/configslog"
	"github.com/infobajajangola-cmd/casamentop/models"
	"github.com/infobajajangola-cmd/casamentop/pkg/renderer"
	"github.com/infobajajangola-cmd/casamentop/services"
)

// TicketHandler renders the digital ticket of a confirmed guest. The QR
// encodes the ticket code, the same token the check-in resolver accepts.
type TicketHandler struct {
	guestService services.IGuestService
	rsvpService  services.IRSVPService
	eventService services.IEventService
}

func NewTicketHandler() *TicketHandler {
	return &TicketHandler{
		guestService: services.NewGuestService(),
		rsvpService:  services.NewRSVPService(),
		eventService: services.NewEventService(),
	}
}

// ShowTicket (GET /convite/:code/bilhete). Only confirmed guests have a
// ticket; everyone else is sent back to the invitation.
func (h *TicketHandler) ShowTicket(c *fiber.Ctx) error {
	guest, err := h.guestService.GetGuestByTicketCode(c.UserContext(), c.Params("code"))
	if err != nil {
		return renderNotFound(c, "Convite não encontrado")
	}

	rsvp, err := h.rsvpService.GetByGuestID(c.UserContext(), guest.ID)
	if err != nil || rsvp.Status != models.RSVPStatusConfirmed {
		return c.Redirect(fmt.Sprintf("/convite/%s", guest.TicketCode), fiber.StatusFound)
	}

	data := fiber.Map{
		"Title": "O seu bilhete",
		"Guest": guest,
		"RSVP":  rsvp,
	}
	if event, evErr := h.eventService.GetMainEvent(c.UserContext()); evErr == nil {
		data["Event"] = event
	}
	return renderer.Render(c, "public/ticket", "layouts/guest_layout", data)
}

// TicketQR (GET /convite/:code/qr.png) streams the ticket's QR code.
func (h *TicketHandler) TicketQR(c *fiber.Ctx) error {
	guest, err := h.guestService.GetGuestByTicketCode(c.UserContext(), c.Params("code"))
	if err != nil {
		return c.SendStatus(fiber.StatusNotFound)
	}

	png, err := qrcode.Encode(guest.TicketCode, qrcode.Medium, 256)
	if err != nil {
		configslog.Log.Error("qr render failed", zap.Uint("guestID", guest.ID), zap.Error(err))
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}
