package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/infobajajangola-cmd/casamentop/configs/configslog"
	"github.com/infobajajangola-cmd/casamentop/pkg/renderer"
	"github.com/infobajajangola-cmd/casamentop/services"
)

// SearchHandler is the guest-facing entry point: find your invitation by
// name, then follow it into the RSVP flow.
type SearchHandler struct {
	guestService services.IGuestService
}

func NewSearchHandler() *SearchHandler {
	return &SearchHandler{guestService: services.NewGuestService()}
}

// ShowSearch (GET /) renders the search screen, with results when a term
// was given. Terms under three characters return no results.
func (h *SearchHandler) ShowSearch(c *fiber.Ctx) error {
	term := c.Query("q")

	data := fiber.Map{
		"Title": "Encontre o seu convite",
		"Query": term,
	}

	if term != "" {
		guests, err := h.guestService.Search(c.UserContext(), term)
		if err != nil {
			configslog.Log.Error("public search failed", zap.String("term", term), zap.Error(err))
			data[renderer.FlashErrorKeyView] = "Não foi possível pesquisar, tente novamente."
		} else {
			data["Results"] = guests
			data["Searched"] = true
		}
	}

	return renderer.Render(c, "public/search", "layouts/guest_layout", data)
}
