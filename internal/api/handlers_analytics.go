package api

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cefalog/internal/services"
)

const defaultAnalyticsWindowDays = 30

// analyticsWindow resolves the from/to day bounds, defaulting to the last
// 30 days ending today.
func (handler *Handler) analyticsWindow(c *fiber.Ctx, now time.Time) (time.Time, time.Time, error) {
	from := services.DateAtLocation(now, handler.location).AddDate(0, 0, -(defaultAnalyticsWindowDays - 1))
	to := services.DateAtLocation(now, handler.location)

	rangeFrom, rangeTo, err := parseRangeQuery(c, handler.location)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if rangeFrom != nil {
		from = *rangeFrom
	}
	if rangeTo != nil {
		to = services.DateAtLocation(*rangeTo, handler.location)
	}
	return from, to, nil
}

func (handler *Handler) ShowAnalytics(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	now := time.Now().In(handler.location)
	from, to, err := handler.analyticsWindow(c, now)
	if err != nil {
		return c.Redirect("/analytics", fiber.StatusSeeOther)
	}

	handler.ensureDependencies()
	episodes, err := handler.episodeService.ListForUser(user.ID)
	if err != nil {
		log.Printf("analytics: load entries for user %d failed: %v", user.ID, err)
		episodes = nil
	}

	view := buildAnalyticsView(episodes, from, to, now, handler.location)

	messages := currentMessages(c)
	return handler.render(c, "analytics", fiber.Map{
		"Title":     localizedPageTitle(messages, "meta.title.analytics", "CefaLog | Analytics"),
		"View":      view,
		"FromValue": from.Format("2006-01-02"),
		"ToValue":   to.Format("2006-01-02"),
	})
}

func (handler *Handler) GetAnalyticsOverview(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	handler.ensureDependencies()
	episodes, err := handler.episodeService.ListForUser(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load entries")
	}

	now := time.Now().In(handler.location)
	return c.JSON(services.Overview(episodes, now))
}

func (handler *Handler) GetAnalyticsCharts(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	now := time.Now().In(handler.location)
	from, to, err := handler.analyticsWindow(c, now)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	handler.ensureDependencies()
	episodes, err := handler.episodeService.ListForUser(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load entries")
	}

	windowed := services.FilterByWindow(episodes, from, to, handler.location)
	return c.JSON(fiber.Map{
		"trend":        services.DailyTrend(windowed, from, to, handler.location),
		"zones":        services.ZoneFrequency(windowed),
		"time_of_day":  services.TimeOfDayDistribution(windowed, handler.location),
		"top_triggers": services.TopTriggers(windowed, 5),
		"overview":     services.Overview(windowed, now),
	})
}
