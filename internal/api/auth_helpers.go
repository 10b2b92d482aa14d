package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

func normalizeLoginEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// respondAuthError keeps plain form posts on the auth pages: the error goes
// into the flash cookie and the browser is sent back to the form it came
// from, with the typed email preserved. API clients get JSON.
func (handler *Handler) respondAuthError(c *fiber.Ctx, status int, message string) error {
	if strings.HasPrefix(c.Path(), "/api/auth/") && !acceptsJSON(c) {
		flash := FlashPayload{AuthError: message}
		switch c.Path() {
		case "/api/auth/register":
			flash.RegisterEmail = normalizeLoginEmail(c.FormValue("email"))
			setFlashCookie(c, flash)
			return c.Redirect("/register", fiber.StatusSeeOther)
		case "/api/auth/login":
			flash.LoginEmail = normalizeLoginEmail(c.FormValue("email"))
			setFlashCookie(c, flash)
			return c.Redirect("/login", fiber.StatusSeeOther)
		default:
			setFlashCookie(c, flash)
			return c.Redirect("/login", fiber.StatusSeeOther)
		}
	}
	return apiError(c, status, message)
}
