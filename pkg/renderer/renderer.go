package renderer

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/infobajajangola-cmd/casamentop/pkg/flashmessages"
)

// Keys under which flash messages are exposed to the views.
const (
	FlashSuccessKeyView = "FlashSuccess"
	FlashErrorKeyView   = "FlashError"
)

// SetFlashMessages copies flash data into the render map.
func SetFlashMessages(data fiber.Map, flash flashmessages.FlashData) {
	if flash.Success != "" {
		data[FlashSuccessKeyView] = flash.Success
	}
	if flash.Error != "" {
		data[FlashErrorKeyView] = flash.Error
	}
}

// Render renders a view inside a layout, defaulting the status to 200 and
// making session identity available to every template.
func Render(c *fiber.Ctx, view, layout string, data fiber.Map, status ...int) error {
	code := http.StatusOK
	if len(status) > 0 {
		code = status[0]
	}
	if data == nil {
		data = fiber.Map{}
	}
	if userName, ok := c.Locals("userName").(string); ok {
		data["CurrentUserName"] = userName
	}
	return c.Status(code).Render(view, data, layout)
}
