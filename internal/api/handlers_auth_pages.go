package api

import (
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) ShowLoginPage(c *fiber.Ctx) error {
	if _, err := handler.authenticateRequest(c); err == nil {
		return c.Redirect("/", fiber.StatusSeeOther)
	}

	flash := popFlashCookie(c)
	return handler.render(c, "login", fiber.Map{
		"Title":      localizedPageTitle(currentMessages(c), "meta.title.login", "CefaLog | Sign in"),
		"AuthError":  localizedAuthError(currentMessages(c), flash.AuthError),
		"LoginEmail": flash.LoginEmail,
	})
}

func (handler *Handler) ShowRegisterPage(c *fiber.Ctx) error {
	if _, err := handler.authenticateRequest(c); err == nil {
		return c.Redirect("/", fiber.StatusSeeOther)
	}

	flash := popFlashCookie(c)
	return handler.render(c, "register", fiber.Map{
		"Title":         localizedPageTitle(currentMessages(c), "meta.title.register", "CefaLog | Sign up"),
		"AuthError":     localizedAuthError(currentMessages(c), flash.AuthError),
		"RegisterEmail": flash.RegisterEmail,
	})
}

func (handler *Handler) ShowPrivacyPage(c *fiber.Ctx) error {
	return handler.render(c, "privacy", fiber.Map{
		"Title": localizedPageTitle(currentMessages(c), "meta.title.privacy", "CefaLog | Privacy"),
	})
}

func localizedAuthError(messages map[string]string, message string) string {
	if message == "" {
		return ""
	}
	if key := authErrorTranslationKey(message); key != "" {
		return translateMessage(messages, key)
	}
	return message
}
