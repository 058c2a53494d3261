package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/infobajajangola-cmd/casamentop/configs/configslog"
	"github.com/infobajajangola-cmd/casamentop/pkg/flashmessages"
	"github.com/infobajajangola-cmd/casamentop/pkg/renderer"
	"github.com/infobajajangola-cmd/casamentop/services"
)

// CheckInHandler is the door-control terminal. Every screen resolves the
// main event first; without it the terminal refuses to operate, since a
// missing event is a configuration problem, not an operator one.
type CheckInHandler struct {
	checkInService services.ICheckInService
}

func NewCheckInHandler() *CheckInHandler {
	return &CheckInHandler{checkInService: services.NewCheckInService()}
}

func (h *CheckInHandler) terminalData(c *fiber.Ctx) (fiber.Map, error) {
	data := fiber.Map{"Title": "Terminal de Check-in"}

	event, err := h.checkInService.MainEvent(c.UserContext())
	if err != nil {
		if errors.Is(err, services.ErrEventNotConfigured) {
			data[renderer.FlashErrorKeyView] = services.ErrEventNotConfigured.Error()
			return data, err
		}
		configslog.Log.Error("terminal: event resolution failed", zap.Error(err))
		data[renderer.FlashErrorKeyView] = "Não foi possível carregar o evento."
		return data, err
	}
	data["Event"] = event
	return data, nil
}

// ShowTerminal (GET /panel/checkin)
func (h *CheckInHandler) ShowTerminal(c *fiber.Ctx) error {
	flashData, _ := flashmessages.GetFlashMessages(c)
	data, _ := h.terminalData(c)
	renderer.SetFlashMessages(data, flashData)
	return renderer.Render(c, "panel/checkin", "layouts/panel_layout", data)
}

// Lookup (POST /panel/checkin/lookup) resolves the scanned or typed term
// and shows the derived entry state. Read-only.
func (h *CheckInHandler) Lookup(c *fiber.Ctx) error {
	data, evErr := h.terminalData(c)
	if evErr != nil {
		return renderer.Render(c, "panel/checkin", "layouts/panel_layout", data)
	}

	term := c.FormValue("term")
	data["Term"] = term

	status, err := h.checkInService.Lookup(c.UserContext(), term)
	if err != nil {
		configslog.Log.Error("terminal lookup failed", zap.String("term", term), zap.Error(err))
		data[renderer.FlashErrorKeyView] = services.ErrCheckInFailed.Error()
		return renderer.Render(c, "panel/checkin", "layouts/panel_layout", data)
	}

	data["Status"] = status
	data["State"] = string(status.State)
	return renderer.Render(c, "panel/checkin", "layouts/panel_layout", data)
}

// ConfirmEntry (POST /panel/checkin/confirm) appends the register entry.
// The headcounts come from the RSVP via the form; the workflow records
// them as given.
func (h *CheckInHandler) ConfirmEntry(c *fiber.Ctx) error {
	data, evErr := h.terminalData(c)
	if evErr != nil {
		return renderer.Render(c, "panel/checkin", "layouts/panel_layout", data)
	}

	guestID, err := strconv.Atoi(c.FormValue("guest_id"))
	if err != nil || guestID <= 0 {
		data[renderer.FlashErrorKeyView] = "Convidado inválido."
		return renderer.Render(c, "panel/checkin", "layouts/panel_layout", data)
	}
	eventID, err := strconv.Atoi(c.FormValue("event_id"))
	if err != nil || eventID <= 0 {
		data[renderer.FlashErrorKeyView] = services.ErrEventNotConfigured.Error()
		return renderer.Render(c, "panel/checkin", "layouts/panel_layout", data)
	}
	adults, _ := strconv.Atoi(c.FormValue("adults", "0"))
	children, _ := strconv.Atoi(c.FormValue("children", "0"))

	checkedBy, _ := c.Locals("userName").(string)

	checkIn, err := h.checkInService.ConfirmEntry(c.UserContext(),
		uint(guestID), uint(eventID), adults, children, checkedBy)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAlreadyCheckedIn):
			// Informational: show the terminal's "already used" card, with
			// the original arrival time from a fresh lookup.
			data[renderer.FlashErrorKeyView] = services.ErrAlreadyCheckedIn.Error()
		case errors.Is(err, services.ErrEntryNotAllowed):
			data[renderer.FlashErrorKeyView] = services.ErrEntryNotAllowed.Error()
		case errors.Is(err, services.ErrEventNotConfigured):
			data[renderer.FlashErrorKeyView] = services.ErrEventNotConfigured.Error()
		default:
			configslog.Log.Error("terminal confirm failed", zap.Int("guestID", guestID), zap.Error(err))
			data[renderer.FlashErrorKeyView] = services.ErrCheckInFailed.Error()
		}
		if status, lkErr := h.checkInService.Lookup(c.UserContext(), c.FormValue("term")); lkErr == nil && status.Guest != nil {
			data["Status"] = status
			data["State"] = string(status.State)
		}
		return renderer.Render(c, "panel/checkin", "layouts/panel_layout", data)
	}

	data["CheckIn"] = checkIn
	data["Confirmed"] = true
	if status, lkErr := h.checkInService.Lookup(c.UserContext(), c.FormValue("term")); lkErr == nil {
		data["Status"] = status
		data["State"] = string(status.State)
	}
	return renderer.Render(c, "panel/checkin", "layouts/panel_layout", data)
}
