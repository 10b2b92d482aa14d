package api

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cefalog/internal/models"
)

type historyFilters struct {
	Query        string
	MinIntensity int
	Symptom      string
}

func parseHistoryFilters(c *fiber.Ctx) historyFilters {
	filters := historyFilters{
		Query:   strings.TrimSpace(c.Query("q")),
		Symptom: strings.ToLower(strings.TrimSpace(c.Query("symptom"))),
	}
	if parsed, err := strconv.Atoi(strings.TrimSpace(c.Query("min_intensity"))); err == nil && parsed >= 1 && parsed <= 10 {
		filters.MinIntensity = parsed
	}
	switch filters.Symptom {
	case "aura", "nausea", "photophobia", "phonophobia":
	default:
		filters.Symptom = ""
	}
	return filters
}

func applyHistoryFilters(episodes []models.Episode, filters historyFilters) []models.Episode {
	if filters.Query == "" && filters.MinIntensity == 0 && filters.Symptom == "" {
		return episodes
	}

	query := strings.ToLower(filters.Query)
	filtered := make([]models.Episode, 0, len(episodes))
	for _, episode := range episodes {
		if filters.MinIntensity > 0 && episode.Intensity < filters.MinIntensity {
			continue
		}
		if !matchesSymptomFilter(episode, filters.Symptom) {
			continue
		}
		if query != "" && !matchesTextFilter(episode, query) {
			continue
		}
		filtered = append(filtered, episode)
	}
	return filtered
}

func matchesSymptomFilter(episode models.Episode, symptom string) bool {
	switch symptom {
	case "aura":
		return episode.HasAura
	case "nausea":
		return episode.HasNausea
	case "photophobia":
		return episode.LightSensitive
	case "phonophobia":
		return episode.SoundSensitive
	}
	return true
}

func matchesTextFilter(episode models.Episode, query string) bool {
	if strings.Contains(strings.ToLower(episode.Notes), query) ||
		strings.Contains(strings.ToLower(episode.Medication), query) ||
		strings.Contains(strings.ToLower(episode.Food), query) {
		return true
	}
	for _, trigger := range episode.Triggers {
		if strings.Contains(strings.ToLower(trigger), query) {
			return true
		}
	}
	return false
}
