package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"go.uber.org/zap"

	"github.com/infobajajangola-cmd/casamentop/configs/configslog"
	"github.com/infobajajangola-cmd/casamentop/pkg/flashmessages"
	"github.com/infobajajangola-cmd/casamentop/pkg/renderer"
	"github.com/infobajajangola-cmd/casamentop/services"
)

// AuthHandler serves the administrator login.
type AuthHandler struct {
	authService services.IAuthService
}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{authService: services.NewAuthService()}
}

func (h *AuthHandler) session(c *fiber.Ctx) (*session.Session, error) {
	store, ok := c.Locals("session_store").(*session.Store)
	if !ok || store == nil {
		return nil, errors.New("sessão indisponível")
	}
	return store.Get(c)
}

// ShowLogin (GET /auth/login)
func (h *AuthHandler) ShowLogin(c *fiber.Ctx) error {
	flashData, _ := flashmessages.GetFlashMessages(c)
	data := fiber.Map{"Title": "Acesso Administrativo"}
	renderer.SetFlashMessages(data, flashData)
	return renderer.Render(c, "auth/login", "layouts/auth_layout", data)
}

// Login (POST /auth/login)
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	email := c.FormValue("email")
	password := c.FormValue("password")

	user, err := h.authService.Authenticate(c.UserContext(), email, password)
	if err != nil {
		if !errors.Is(err, services.ErrInvalidCredentials) {
			configslog.Log.Error("login failed", zap.String("email", email), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, services.ErrInvalidCredentials.Error())
		return c.Redirect("/auth/login", fiber.StatusSeeOther)
	}

	sess, err := h.session(c)
	if err != nil {
		return c.Redirect("/auth/login", fiber.StatusSeeOther)
	}
	sess.Set("user_id", user.ID)
	sess.Set("user_name", user.Name)
	if err := sess.Save(); err != nil {
		configslog.Log.Error("session save failed", zap.Error(err))
		return c.Redirect("/auth/login", fiber.StatusSeeOther)
	}

	return c.Redirect("/panel/home", fiber.StatusFound)
}

// Logout (GET|POST /auth/logout)
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if sess, err := h.session(c); err == nil {
		_ = sess.Destroy()
	}
	return c.Redirect("/auth/login", fiber.StatusFound)
}

// UpdatePassword (POST /auth/profile/update-password)
func (h *AuthHandler) UpdatePassword(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return c.Redirect("/auth/login")
	}

	err := h.authService.UpdatePassword(c.UserContext(), userID,
		c.FormValue("current_password"), c.FormValue("new_password"))
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
		return c.Redirect("/panel/home", fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Palavra-passe atualizada.")
	return c.Redirect("/panel/home", fiber.StatusFound)
}
