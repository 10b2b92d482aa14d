package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cefalog/internal/models"
)

const (
	authCookieName     = "cefalog_auth"
	languageCookieName = "cefalog_lang"
	flashCookieName    = "cefalog_flash"
	contextUserKey     = "current_user"
	contextLanguageKey = "current_language"
	contextMessagesKey = "current_messages"
)

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok
}
