package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/infobajajangola-cmd/casamentop/pkg/renderer"
	"github.com/infobajajangola-cmd/casamentop/services"
)

// AssistantHandler fronts the AI message generator. Generated text is an
// opaque string; failures become a visible error message and nothing else.
type AssistantHandler struct {
	messageService services.IMessageService
	guestService   services.IGuestService
	rsvpService    services.IRSVPService
}

func NewAssistantHandler() *AssistantHandler {
	return &AssistantHandler{
		messageService: services.NewMessageService(),
		guestService:   services.NewGuestService(),
		rsvpService:    services.NewRSVPService(),
	}
}

// ShowAssistant (GET /panel/assistant?guest=ID)
func (h *AssistantHandler) ShowAssistant(c *fiber.Ctx) error {
	data := fiber.Map{
		"Title":        "Assistente de Mensagens",
		"SelectedType": string(services.MessageTypeInvite),
	}

	if id, err := strconv.Atoi(c.Query("guest")); err == nil && id > 0 {
		if guest, gErr := h.guestService.GetGuestByID(c.UserContext(), uint(id)); gErr == nil {
			data["Guest"] = guest
		}
	}
	return renderer.Render(c, "panel/assistant", "layouts/panel_layout", data)
}

// GenerateMessage (POST /panel/assistant/generate)
func (h *AssistantHandler) GenerateMessage(c *fiber.Ctx) error {
	data := fiber.Map{
		"Title":        "Assistente de Mensagens",
		"SelectedType": string(services.MessageTypeInvite),
	}

	id, err := strconv.Atoi(c.FormValue("guest_id"))
	if err != nil || id <= 0 {
		data[renderer.FlashErrorKeyView] = "Selecione um convidado."
		return renderer.Render(c, "panel/assistant", "layouts/panel_layout", data)
	}

	guest, err := h.guestService.GetGuestByID(c.UserContext(), uint(id))
	if err != nil {
		data[renderer.FlashErrorKeyView] = services.ErrGuestNotFound.Error()
		return renderer.Render(c, "panel/assistant", "layouts/panel_layout", data)
	}
	data["Guest"] = guest

	msgType := services.MessageType(c.FormValue("type", string(services.MessageTypeInvite)))
	switch msgType {
	case services.MessageTypeInvite, services.MessageTypeThankYou, services.MessageTypeReminder:
	default:
		msgType = services.MessageTypeInvite
	}
	data["SelectedType"] = string(msgType)

	rsvp, _ := h.rsvpService.GetByGuestID(c.UserContext(), guest.ID)

	message, err := h.messageService.GenerateGuestMessage(c.UserContext(), guest, rsvp, msgType)
	if err != nil {
		data[renderer.FlashErrorKeyView] = err.Error()
	} else {
		data["Message"] = message
	}
	return renderer.Render(c, "panel/assistant", "layouts/panel_layout", data)
}

// AnalyzeList (POST /panel/assistant/analyze) asks for planner insights
// over the whole guest list.
func (h *AssistantHandler) AnalyzeList(c *fiber.Ctx) error {
	data := fiber.Map{
		"Title":        "Assistente de Mensagens",
		"SelectedType": string(services.MessageTypeInvite),
	}

	guests, err := h.guestService.ListAll(c.UserContext())
	if err != nil {
		data[renderer.FlashErrorKeyView] = "Não foi possível carregar a lista."
		return renderer.Render(c, "panel/assistant", "layouts/panel_layout", data)
	}

	insights, err := h.messageService.AnalyzeGuestList(c.UserContext(), guests)
	if err != nil {
		data[renderer.FlashErrorKeyView] = err.Error()
	} else {
		data["Insights"] = insights
	}
	return renderer.Render(c, "panel/assistant", "layouts/panel_layout", data)
}
