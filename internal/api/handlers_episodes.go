package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cefalog/internal/services"
)

func (handler *Handler) GetEpisodes(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	from, to, err := parseRangeQuery(c, handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	handler.ensureDependencies()
	episodes, err := handler.repositories.Episodes.ListByUserRange(user.ID, from, to)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load entries")
	}
	return c.JSON(fiber.Map{"episodes": episodes})
}

func (handler *Handler) GetOpenEpisode(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	handler.ensureDependencies()
	episode, found, err := handler.episodeService.FindOpenForUser(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load entries")
	}
	if !found {
		return c.JSON(fiber.Map{"episode": nil})
	}
	return c.JSON(fiber.Map{"episode": episode})
}

func (handler *Handler) GetEpisode(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	handler.ensureDependencies()
	episode, err := handler.episodeService.FindForUser(user.ID, c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrEpisodeNotFound) {
			return apiError(c, fiber.StatusNotFound, "entry not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to load entries")
	}
	return c.JSON(fiber.Map{"episode": episode})
}

func (handler *Handler) CreateEpisode(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	payload, err := parseEpisodePayload(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	episode, err := handler.episodeFromPayload(payload)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	handler.ensureDependencies()
	if err := handler.episodeService.CreateForUser(user.ID, &episode); err != nil {
		if status, message, ok := episodeErrorResponse(err); ok {
			return apiError(c, status, message)
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to save entry")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"episode": episode})
}

func (handler *Handler) UpdateEpisode(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	payload, err := parseEpisodePayload(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	payload.ID = c.Params("id")
	episode, err := handler.episodeFromPayload(payload)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	handler.ensureDependencies()
	if err := handler.episodeService.UpdateForUser(user.ID, &episode); err != nil {
		if status, message, ok := episodeErrorResponse(err); ok {
			return apiError(c, status, message)
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to save entry")
	}
	return c.JSON(fiber.Map{"episode": episode})
}

func (handler *Handler) DeleteEpisode(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	handler.ensureDependencies()
	if err := handler.episodeService.DeleteForUser(user.ID, c.Params("id")); err != nil {
		if errors.Is(err, services.ErrEpisodeNotFound) {
			return apiError(c, fiber.StatusNotFound, "entry not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to delete entry")
	}
	return c.JSON(fiber.Map{"ok": true})
}

func episodeErrorResponse(err error) (int, string, bool) {
	switch {
	case errors.Is(err, services.ErrEpisodeNotFound):
		return fiber.StatusNotFound, "entry not found", true
	case errors.Is(err, services.ErrMissingStart):
		return fiber.StatusBadRequest, "invalid start timestamp", true
	case errors.Is(err, services.ErrInvalidIntensity):
		return fiber.StatusBadRequest, "intensity out of range", true
	case errors.Is(err, services.ErrEndBeforeStart):
		return fiber.StatusBadRequest, "end timestamp before start", true
	}
	return 0, "", false
}
