package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/infobajajangola-cmd/casamentop/configs/configslog"
	"github.com/infobajajangola-cmd/casamentop/pkg/flashmessages"
	"github.com/infobajajangola-cmd/casamentop/pkg/queryparams"
	"github.com/infobajajangola-cmd/casamentop/pkg/renderer"
	"github.com/infobajajangola-cmd/casamentop/repositories"
	"github.com/infobajajangola-cmd/casamentop/services"
)

// GuestHandler manages the guest directory from the panel.
type GuestHandler struct {
	service      services.IGuestService
	categoryRepo repositories.ICategoryRepository
}

func NewGuestHandler() *GuestHandler {
	return &GuestHandler{
		service:      services.NewGuestService(),
		categoryRepo: repositories.NewCategoryRepository(),
	}
}

func guestInputFromForm(c *fiber.Ctx) services.GuestInput {
	maxAdults, _ := strconv.Atoi(c.FormValue("max_adults", "1"))
	maxChildren, _ := strconv.Atoi(c.FormValue("max_children", "0"))
	return services.GuestInput{
		Name:        c.FormValue("name"),
		Category:    c.FormValue("category"),
		FamilySide:  c.FormValue("family_side"),
		MaxAdults:   maxAdults,
		MaxChildren: maxChildren,
	}
}

// ListGuests (GET /panel/guests)
func (h *GuestHandler) ListGuests(c *fiber.Ctx) error {
	flashData, _ := flashmessages.GetFlashMessages(c)

	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams("created_at")
	}
	params.Validate()

	data := fiber.Map{
		"Title":  "Lista de Convidados",
		"Params": params,
	}
	renderer.SetFlashMessages(data, flashData)

	result, err := h.service.ListPaginated(c.UserContext(), params)
	if err != nil {
		configslog.Log.Error("guest list failed", zap.Error(err))
		data[renderer.FlashErrorKeyView] = "Não foi possível carregar a lista de convidados."
		result = &queryparams.PaginatedResult{}
	}
	data["Result"] = result

	return renderer.Render(c, "panel/guests/list", "layouts/panel_layout", data)
}

// ShowCreateGuest (GET /panel/guests/create)
func (h *GuestHandler) ShowCreateGuest(c *fiber.Ctx) error {
	flashData, _ := flashmessages.GetFlashMessages(c)
	data := fiber.Map{
		"Title":    "Novo Convidado",
		"FormData": flashmessages.GetFlashFormData(c, "name", "category", "family_side", "max_adults", "max_children"),
	}
	renderer.SetFlashMessages(data, flashData)
	if categories, err := h.categoryRepo.ListAll(c.UserContext()); err == nil {
		data["Categories"] = categories
	}
	return renderer.Render(c, "panel/guests/create", "layouts/panel_layout", data)
}

// CreateGuest (POST /panel/guests/create)
func (h *GuestHandler) CreateGuest(c *fiber.Ctx) error {
	input := guestInputFromForm(c)
	if _, err := h.service.CreateGuest(c.UserContext(), input); err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
		_ = flashmessages.SetFlashFormData(c, map[string]string{
			"name": input.Name, "category": input.Category, "family_side": input.FamilySide,
			"max_adults":   strconv.Itoa(input.MaxAdults),
			"max_children": strconv.Itoa(input.MaxChildren),
		})
		return c.Redirect("/panel/guests/create", fiber.StatusSeeOther)
	}
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Convidado criado.")
	return c.Redirect("/panel/guests", fiber.StatusFound)
}

// ShowUpdateGuest (GET /panel/guests/update/:id)
func (h *GuestHandler) ShowUpdateGuest(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Convidado inválido.")
		return c.Redirect("/panel/guests")
	}

	guest, err := h.service.GetGuestByID(c.UserContext(), uint(id))
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, services.ErrGuestNotFound.Error())
		return c.Redirect("/panel/guests")
	}

	flashData, _ := flashmessages.GetFlashMessages(c)
	data := fiber.Map{
		"Title": "Editar Convidado",
		"Guest": guest,
	}
	renderer.SetFlashMessages(data, flashData)
	if categories, catErr := h.categoryRepo.ListAll(c.UserContext()); catErr == nil {
		data["Categories"] = categories
	}
	return renderer.Render(c, "panel/guests/update", "layouts/panel_layout", data)
}

// UpdateGuest (POST /panel/guests/update/:id)
func (h *GuestHandler) UpdateGuest(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Convidado inválido.")
		return c.Redirect("/panel/guests")
	}
	redirectPath := fmt.Sprintf("/panel/guests/update/%d", id)

	if err := h.service.UpdateGuest(c.UserContext(), uint(id), guestInputFromForm(c)); err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
		if errors.Is(err, services.ErrGuestNotFound) {
			return c.Redirect("/panel/guests")
		}
		return c.Redirect(redirectPath, fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Convidado atualizado.")
	return c.Redirect("/panel/guests", fiber.StatusFound)
}

// DeleteGuest (POST /panel/guests/delete/:id)
func (h *GuestHandler) DeleteGuest(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Convidado inválido.")
		return c.Redirect("/panel/guests")
	}

	if err := h.service.DeleteGuest(c.UserContext(), uint(id)); err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
	} else {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Convidado removido.")
	}
	return c.Redirect("/panel/guests", fiber.StatusFound)
}

// ImportGuests (POST /panel/guests/import) accepts the delimited file
// upload and reports how many lines went through.
func (h *GuestHandler) ImportGuests(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Selecione um ficheiro para importar.")
		return c.Redirect("/panel/guests", fiber.StatusSeeOther)
	}

	file, err := fileHeader.Open()
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, services.ErrGuestImportFailed.Error())
		return c.Redirect("/panel/guests", fiber.StatusSeeOther)
	}
	defer file.Close()

	result, err := h.service.ImportGuests(c.UserContext(), file)
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
		return c.Redirect("/panel/guests", fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey,
		fmt.Sprintf("Importados %d convidados (%d linhas ignoradas).", result.Imported, result.Skipped))
	return c.Redirect("/panel/guests", fiber.StatusFound)
}

// ExportGuests (GET /panel/guests/export?format=csv|json) downloads the
// guest+RSVP join. Read-only.
func (h *GuestHandler) ExportGuests(c *fiber.Ctx) error {
	stamp := time.Now().Format("20060102")

	if c.Query("format", "csv") == "json" {
		payload, err := h.service.ExportJSON(c.UserContext())
		if err != nil {
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
			return c.Redirect("/panel/guests", fiber.StatusSeeOther)
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="convidados-%s.json"`, stamp))
		return c.Send(payload)
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="convidados-%s.csv"`, stamp))
	if err := h.service.ExportCSV(c.UserContext(), c.Response().BodyWriter()); err != nil {
		configslog.Log.Error("guest export failed", zap.Error(err))
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	return nil
}
