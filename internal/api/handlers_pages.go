package api

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cefalog/internal/services"
)

func (handler *Handler) ShowDashboard(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	handler.ensureDependencies()
	episodes, err := handler.episodeService.ListForUser(user.ID)
	if err != nil {
		log.Printf("dashboard: load entries for user %d failed: %v", user.ID, err)
		episodes = nil
	}

	now := time.Now().In(handler.location)
	stats := services.Overview(episodes, now)

	open, hasOpen, err := handler.episodeService.FindOpenForUser(user.ID)
	if err != nil {
		log.Printf("dashboard: open entry lookup for user %d failed: %v", user.ID, err)
		hasOpen = false
	}

	recent := episodes
	if len(recent) > 3 {
		recent = recent[:3]
	}

	messages := currentMessages(c)
	return handler.render(c, "dashboard", fiber.Map{
		"Title":       localizedPageTitle(messages, "meta.title.dashboard", "CefaLog | Home"),
		"Stats":       stats,
		"HasOpen":     hasOpen,
		"OpenEpisode": open,
		"OpenStarted": open.StartedAt.In(handler.location).Format("15:04"),
		"Recent":      recent,
	})
}

func (handler *Handler) ShowHistory(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	handler.ensureDependencies()
	episodes, err := handler.episodeService.ListForUser(user.ID)
	if err != nil {
		log.Printf("history: load entries for user %d failed: %v", user.ID, err)
		episodes = nil
	}

	filters := parseHistoryFilters(c)
	filtered := applyHistoryFilters(episodes, filters)

	messages := currentMessages(c)
	return handler.render(c, "history", fiber.Map{
		"Title":        localizedPageTitle(messages, "meta.title.history", "CefaLog | History"),
		"Episodes":     filtered,
		"TotalEntries": len(episodes),
		"Filters":      filters,
	})
}

func (handler *Handler) ShowSettings(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	flash := popFlashCookie(c)
	messages := currentMessages(c)
	return handler.render(c, "settings", fiber.Map{
		"Title":           localizedPageTitle(messages, "meta.title.settings", "CefaLog | Settings"),
		"User":            user,
		"SettingsError":   localizedAuthError(messages, flash.SettingsError),
		"SettingsSuccess": flash.SettingsSuccess,
	})
}
