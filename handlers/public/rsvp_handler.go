package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/infobajajangola-cmd/casamentop/configs/configslog"
	"github.com/infobajajangola-cmd/casamentop/models"
	"github.com/infobajajangola-cmd/casamentop/pkg/flashmessages"
	"github.com/infobajajangola-cmd/casamentop/pkg/renderer"
	"github.com/infobajajangola-cmd/casamentop/services"
)

// RSVPHandler runs the invitation flow: choice → companion details →
// thank-you / declined → ticket.
type RSVPHandler struct {
	guestService services.IGuestService
	rsvpService  services.IRSVPService
}

func NewRSVPHandler() *RSVPHandler {
	return &RSVPHandler{
		guestService: services.NewGuestService(),
		rsvpService:  services.NewRSVPService(),
	}
}

func (h *RSVPHandler) loadGuest(c *fiber.Ctx) (*models.Guest, error) {
	guest, err := h.guestService.GetGuestByTicketCode(c.UserContext(), c.Params("code"))
	if err != nil {
		return nil, err
	}
	return guest, nil
}

// ShowInvitation (GET /convite/:code) shows the RSVP choice, or routes a
// guest who already answered to the ticket / declined screen.
func (h *RSVPHandler) ShowInvitation(c *fiber.Ctx) error {
	guest, err := h.loadGuest(c)
	if err != nil {
		return renderNotFound(c, "Convite não encontrado")
	}

	rsvp, rsvpErr := h.rsvpService.GetByGuestID(c.UserContext(), guest.ID)
	if rsvpErr == nil {
		switch rsvp.Status {
		case models.RSVPStatusConfirmed:
			return c.Redirect(fmt.Sprintf("/convite/%s/bilhete", guest.TicketCode), fiber.StatusFound)
		case models.RSVPStatusDeclined:
			return c.Redirect(fmt.Sprintf("/convite/%s/recusado", guest.TicketCode), fiber.StatusFound)
		}
	}

	flashData, _ := flashmessages.GetFlashMessages(c)
	data := fiber.Map{
		"Title":          "Confirmação de Presença",
		"Guest":          guest,
		"CompanionSlots": make([]struct{}, guest.CompanionSlots()),
	}
	renderer.SetFlashMessages(data, flashData)
	return renderer.Render(c, "public/invitation", "layouts/guest_layout", data)
}

// SubmitResponse (POST /convite/:code/rsvp) records the guest's answer.
// The attendance choice must be explicit; undecided submissions bounce
// back to the form.
func (h *RSVPHandler) SubmitResponse(c *fiber.Ctx) error {
	guest, err := h.loadGuest(c)
	if err != nil {
		return renderNotFound(c, "Convite não encontrado")
	}
	formPath := fmt.Sprintf("/convite/%s", guest.TicketCode)

	var attending bool
	switch c.FormValue("attending") {
	case "true":
		attending = true
	case "false":
		attending = false
	default:
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Escolha confirmar ou recusar antes de continuar.")
		return c.Redirect(formPath, fiber.StatusSeeOther)
	}

	var companions []string
	for _, raw := range c.Request().PostArgs().PeekMulti("companions") {
		companions = append(companions, string(raw))
	}

	_, err = h.rsvpService.SubmitResponse(c.UserContext(), guest.ID, attending, companions)
	if err != nil {
		var vErr *services.ValidationError
		if errors.As(err, &vErr) {
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, vErr.Error())
			return c.Redirect(formPath, fiber.StatusSeeOther)
		}
		configslog.Log.Error("rsvp submit failed", zap.Uint("guestID", guest.ID), zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, services.ErrRSVPSaveFailed.Error())
		return c.Redirect(formPath, fiber.StatusSeeOther)
	}

	if attending {
		return c.Redirect(fmt.Sprintf("/convite/%s/bilhete", guest.TicketCode), fiber.StatusFound)
	}
	return c.Redirect(fmt.Sprintf("/convite/%s/recusado", guest.TicketCode), fiber.StatusFound)
}

// ShowDeclined (GET /convite/:code/recusado)
func (h *RSVPHandler) ShowDeclined(c *fiber.Ctx) error {
	guest, err := h.loadGuest(c)
	if err != nil {
		return renderNotFound(c, "Convite não encontrado")
	}
	return renderer.Render(c, "public/declined", "layouts/guest_layout", fiber.Map{
		"Title": "Resposta registada",
		"Guest": guest,
	})
}

func renderNotFound(c *fiber.Ctx, title string) error {
	return c.Status(fiber.StatusNotFound).Render("errors/404", fiber.Map{"Title": title}, "layouts/error_layout")
}
