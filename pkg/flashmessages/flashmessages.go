package flashmessages

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const (
	FlashSuccessKey = "flash_success"
	FlashErrorKey   = "flash_error"
	flashFormKey    = "flash_form"
)

// FlashData carries the one-shot messages read out of the session.
type FlashData struct {
	Success string
	Error   string
}

var errNoSession = errors.New("session store not available")

func getSession(c *fiber.Ctx) (*session.Session, error) {
	store, ok := c.Locals("session_store").(*session.Store)
	if !ok || store == nil {
		return nil, errNoSession
	}
	return store.Get(c)
}

// SetFlashMessage stores a one-shot message under the given key.
func SetFlashMessage(c *fiber.Ctx, key, message string) error {
	sess, err := getSession(c)
	if err != nil {
		return err
	}
	sess.Set(key, message)
	return sess.Save()
}

// GetFlashMessages reads and clears the flash messages for this request.
func GetFlashMessages(c *fiber.Ctx) (FlashData, error) {
	var data FlashData
	sess, err := getSession(c)
	if err != nil {
		return data, err
	}
	if v, ok := sess.Get(FlashSuccessKey).(string); ok {
		data.Success = v
		sess.Delete(FlashSuccessKey)
	}
	if v, ok := sess.Get(FlashErrorKey).(string); ok {
		data.Error = v
		sess.Delete(FlashErrorKey)
	}
	return data, sess.Save()
}

// SetFlashFormData keeps submitted form values across a redirect so the
// form can be re-rendered with what the user typed.
func SetFlashFormData(c *fiber.Ctx, form map[string]string) error {
	sess, err := getSession(c)
	if err != nil {
		return err
	}
	for k, v := range form {
		sess.Set(flashFormKey+":"+k, v)
	}
	sess.Set(flashFormKey, true)
	return sess.Save()
}

// GetFlashFormData reads and clears previously flashed form values.
func GetFlashFormData(c *fiber.Ctx, keys ...string) map[string]string {
	form := map[string]string{}
	sess, err := getSession(c)
	if err != nil {
		return form
	}
	if _, ok := sess.Get(flashFormKey).(bool); !ok {
		return form
	}
	for _, k := range keys {
		if v, ok := sess.Get(flashFormKey + ":" + k).(string); ok {
			form[k] = v
			sess.Delete(flashFormKey + ":" + k)
		}
	}
	sess.Delete(flashFormKey)
	_ = sess.Save()
	return form
}
