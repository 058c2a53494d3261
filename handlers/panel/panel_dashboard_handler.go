package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/infobajajangola-cmd/casamentop/configs/configslog"
	"github.com/infobajajangola-cmd/casamentop/pkg/flashmessages"
	"github.com/infobajajangola-cmd/casamentop/pkg/renderer"
	"github.com/infobajajangola-cmd/casamentop/services"
)

// DashboardHandler shows the event overview.
type DashboardHandler struct {
	guestService services.IGuestService
	eventService services.IEventService
	rsvpService  services.IRSVPService
}

func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{
		guestService: services.NewGuestService(),
		eventService: services.NewEventService(),
		rsvpService:  services.NewRSVPService(),
	}
}

// ShowDashboard (GET /panel/home)
func (h *DashboardHandler) ShowDashboard(c *fiber.Ctx) error {
	flashData, _ := flashmessages.GetFlashMessages(c)
	data := fiber.Map{"Title": "Visão Geral"}
	renderer.SetFlashMessages(data, flashData)

	stats, err := h.guestService.GetEventStats(c.UserContext())
	if err != nil {
		configslog.Log.Error("dashboard stats failed", zap.Error(err))
		data[renderer.FlashErrorKeyView] = "Não foi possível carregar as estatísticas."
	} else {
		data["Stats"] = stats
	}

	if event, evErr := h.eventService.GetMainEvent(c.UserContext()); evErr == nil {
		data["Event"] = event
	}

	if responses, rErr := h.rsvpService.ListResponses(c.UserContext(), 5); rErr == nil {
		data["Responses"] = responses
	}

	return renderer.Render(c, "panel/home", "layouts/panel_layout", data)
}
