package api

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cefalog/internal/models"
	"github.com/terraincognita07/cefalog/internal/services"
)

const formTimestampLayout = "2006-01-02T15:04"

// ShowEpisodeForm opens the logging form. When an attack is still ongoing
// the form resumes it instead of starting a second open entry.
func (handler *Handler) ShowEpisodeForm(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	handler.ensureDependencies()
	open, found, err := handler.episodeService.FindOpenForUser(user.ID)
	if err != nil {
		log.Printf("episode form: open entry lookup for user %d failed: %v", user.ID, err)
		found = false
	}
	if found {
		return handler.renderEpisodeForm(c, open, true, "")
	}

	fresh := models.Episode{
		StartedAt: time.Now().In(handler.location),
		Intensity: 5,
		Quality:   models.QualityOther,
		Zones:     []string{},
		Triggers:  []string{},
	}
	return handler.renderEpisodeForm(c, fresh, false, "")
}

func (handler *Handler) ShowEditEpisodeForm(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	handler.ensureDependencies()
	episode, err := handler.episodeService.FindForUser(user.ID, c.Params("id"))
	if err != nil {
		if !errors.Is(err, services.ErrEpisodeNotFound) {
			log.Printf("episode edit: load %s for user %d failed: %v", c.Params("id"), user.ID, err)
		}
		return c.Redirect("/history", fiber.StatusSeeOther)
	}
	return handler.renderEpisodeForm(c, episode, true, "")
}

func (handler *Handler) SubmitEpisodeForm(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	payload, err := parseEpisodePayload(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	episode, err := handler.episodeFromPayload(payload)
	if err != nil {
		episode.Zones = payload.Zones
		episode.Triggers = payload.Triggers
		return handler.renderEpisodeForm(c, episode, payload.ID != "", "error.invalid_input")
	}

	handler.ensureDependencies()
	isEdit := strings.TrimSpace(payload.ID) != ""
	if isEdit {
		err = handler.episodeService.UpdateForUser(user.ID, &episode)
	} else {
		err = handler.episodeService.CreateForUser(user.ID, &episode)
	}
	if err != nil {
		if errors.Is(err, services.ErrEpisodeNotFound) {
			return c.Redirect("/history", fiber.StatusSeeOther)
		}
		if _, _, known := episodeErrorResponse(err); known {
			return handler.renderEpisodeForm(c, episode, isEdit, "error.invalid_input")
		}
		return handler.renderEpisodeForm(c, episode, isEdit, "error.save_failed")
	}

	return c.Redirect("/history", fiber.StatusSeeOther)
}

func (handler *Handler) ShowEpisodeDetail(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	handler.ensureDependencies()
	episode, err := handler.episodeService.FindForUser(user.ID, c.Params("id"))
	if err != nil {
		if !errors.Is(err, services.ErrEpisodeNotFound) {
			log.Printf("episode detail: load %s for user %d failed: %v", c.Params("id"), user.ID, err)
		}
		return c.Redirect("/history", fiber.StatusSeeOther)
	}

	return handler.render(c, "episode_detail", fiber.Map{
		"Title":   localizedPageTitle(currentMessages(c), "meta.title.episode_detail", "CefaLog | Attack Detail"),
		"Episode": episode,
	})
}

func (handler *Handler) DeleteEpisodeForm(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	handler.ensureDependencies()
	if err := handler.episodeService.DeleteForUser(user.ID, c.Params("id")); err != nil &&
		!errors.Is(err, services.ErrEpisodeNotFound) {
		return apiError(c, fiber.StatusInternalServerError, "failed to delete entry")
	}
	return c.Redirect("/history", fiber.StatusSeeOther)
}

func (handler *Handler) renderEpisodeForm(c *fiber.Ctx, episode models.Episode, isEdit bool, errorKey string) error {
	messages := currentMessages(c)

	startValue := ""
	if !episode.StartedAt.IsZero() {
		startValue = episode.StartedAt.In(handler.location).Format(formTimestampLayout)
	}
	endValue := ""
	if episode.EndedAt != nil {
		endValue = episode.EndedAt.In(handler.location).Format(formTimestampLayout)
	}

	formError := ""
	if errorKey != "" {
		formError = translateMessage(messages, errorKey)
	}

	return handler.render(c, "episode_form", fiber.Map{
		"Title":             localizedPageTitle(messages, "meta.title.episode_form", "CefaLog | Log"),
		"Episode":           episode,
		"IsEdit":            isEdit,
		"StartValue":        startValue,
		"EndValue":          endValue,
		"EndNowValue":       time.Now().In(handler.location).Format(formTimestampLayout),
		"FormError":         formError,
		"Qualities":         models.PainQualities(),
		"AllZones":          models.Zones(),
		"SuggestedTriggers": models.SuggestedTriggers(),
		"CustomTriggers":    customTriggersValue(episode.Triggers),
	})
}

// customTriggersValue joins the triggers that are not part of the suggested
// catalog, so the form can show them in the free-text input.
func customTriggersValue(triggers []string) string {
	suggested := make(map[string]bool, len(models.SuggestedTriggers()))
	for _, trigger := range models.SuggestedTriggers() {
		suggested[trigger] = true
	}

	custom := make([]string, 0, len(triggers))
	for _, trigger := range triggers {
		if !suggested[trigger] {
			custom = append(custom, trigger)
		}
	}
	return strings.Join(custom, ", ")
}
