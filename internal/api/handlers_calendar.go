package api

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cefalog/internal/models"
)

func (handler *Handler) ShowCalendar(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	now := time.Now().In(handler.location)
	monthStart, err := parseMonthQuery(c.Query("month"), now, handler.location)
	if err != nil {
		return c.Redirect("/calendar", fiber.StatusSeeOther)
	}

	var selectedDay time.Time
	if raw := strings.TrimSpace(c.Query("day")); raw != "" {
		if parsed, err := parseDayParam(raw, handler.location); err == nil {
			selectedDay = parsed
		}
	}

	// Fetch the padded grid range in one query so the spillover days from
	// neighboring months carry their markers too.
	rangeStart := monthStart.AddDate(0, 0, -7)
	rangeEnd := monthStart.AddDate(0, 1, 7)

	handler.ensureDependencies()
	episodes, err := handler.repositories.Episodes.ListByUserRange(user.ID, &rangeStart, &rangeEnd)
	if err != nil {
		log.Printf("calendar: load entries for user %d failed: %v", user.ID, err)
		episodes = nil
	}

	days := buildCalendarDays(monthStart, now, selectedDay, episodes, handler.location)

	var selectedEpisodes []models.Episode
	if !selectedDay.IsZero() {
		selectedEpisodes = episodesOnDay(episodes, selectedDay, handler.location)
	}

	messages := currentMessages(c)
	weekdays := strings.Split(translateMessage(messages, "calendar.weekdays"), ",")

	return handler.render(c, "calendar", fiber.Map{
		"Title":            localizedPageTitle(messages, "meta.title.calendar", "CefaLog | Calendar"),
		"MonthLabel":       monthStart.Format("January 2006"),
		"MonthValue":       monthStart.Format("2006-01"),
		"PrevMonth":        monthStart.AddDate(0, -1, 0).Format("2006-01"),
		"NextMonth":        monthStart.AddDate(0, 1, 0).Format("2006-01"),
		"Weekdays":         weekdays,
		"Days":             days,
		"SelectedDay":      selectedDay,
		"HasSelectedDay":   !selectedDay.IsZero(),
		"SelectedEpisodes": selectedEpisodes,
	})
}
