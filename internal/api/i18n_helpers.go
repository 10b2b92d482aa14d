package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

var authErrorKeys = map[string]string{
	"invalid input":            "error.invalid_input",
	"invalid credentials":      "error.invalid_credentials",
	"email already exists":     "error.email_exists",
	"weak password":            "error.weak_password",
	"password mismatch":        "error.password_mismatch",
	"too many login attempts":  "error.too_many_attempts",
	"invalid current password": "error.invalid_credentials",
	"entry not found":          "error.not_found",
	"failed to save entry":     "error.save_failed",
}

func translateMessage(messages map[string]string, key string) string {
	if key == "" {
		return ""
	}
	if messages != nil {
		if value, ok := messages[key]; ok && strings.TrimSpace(value) != "" {
			return value
		}
	}
	return key
}

func authErrorTranslationKey(message string) string {
	key, ok := authErrorKeys[strings.ToLower(strings.TrimSpace(message))]
	if !ok {
		return ""
	}
	return key
}

func qualityTranslationKey(quality string) string {
	return "quality." + strings.ToLower(strings.TrimSpace(quality))
}

func zoneTranslationKey(zone string) string {
	return "zone." + strings.ToLower(strings.TrimSpace(zone))
}

func triggerTranslationKey(trigger string) string {
	return "trigger." + strings.ToLower(strings.TrimSpace(trigger))
}

func bucketTranslationKey(bucket string) string {
	return "bucket." + strings.ToLower(strings.TrimSpace(bucket))
}

// localizedTriggerName resolves catalog triggers through the locale and
// leaves free-text triggers as typed.
func localizedTriggerName(messages map[string]string, trigger string) string {
	key := triggerTranslationKey(trigger)
	if value, ok := messages[key]; ok && strings.TrimSpace(value) != "" {
		return value
	}
	return trigger
}

func currentLanguage(c *fiber.Ctx) string {
	language, ok := c.Locals(contextLanguageKey).(string)
	if !ok || strings.TrimSpace(language) == "" {
		return ""
	}
	return language
}

func currentMessages(c *fiber.Ctx) map[string]string {
	messages, ok := c.Locals(contextMessagesKey).(map[string]string)
	if !ok || messages == nil {
		return map[string]string{}
	}
	return messages
}

func (handler *Handler) withTemplateDefaults(c *fiber.Ctx, data fiber.Map) fiber.Map {
	if data == nil {
		data = fiber.Map{}
	}

	if _, ok := data["Messages"]; !ok {
		data["Messages"] = currentMessages(c)
	}

	if _, ok := data["Lang"]; !ok {
		language := currentLanguage(c)
		if language == "" {
			language = handler.i18n.DefaultLanguage()
		}
		data["Lang"] = language
	}

	if _, ok := data["CurrentPath"]; !ok {
		data["CurrentPath"] = currentPathWithQuery(c)
	}

	if _, ok := data["CSRFToken"]; !ok {
		data["CSRFToken"] = csrfToken(c)
	}

	if _, ok := data["CurrentUser"]; !ok {
		if user, ok := currentUser(c); ok {
			data["CurrentUser"] = user
		}
	}

	return data
}

func currentPathWithQuery(c *fiber.Ctx) string {
	path := string(c.Request().URI().RequestURI())
	if path == "" {
		return c.Path()
	}
	return path
}
