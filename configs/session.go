package configs

import (
	"time"

	"github.com/gofiber/fiber/v2/middleware/session"
)

// SetupSession builds the cookie-backed session store for admin logins.
func SetupSession() *session.Store {
	return session.New(session.Config{
		Expiration:     12 * time.Hour,
		KeyLookup:      "cookie:casamentop_session",
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})
}
