package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	registerPageRoutes(app, handler)
	registerAPIRoutes(app, handler)
}

func registerPageRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)
	app.Get("/lang/:lang", handler.SetLanguage)

	app.Get("/login", handler.ShowLoginPage)
	app.Get("/register", handler.ShowRegisterPage)
	app.Get("/privacy", handler.ShowPrivacyPage)

	app.Get("/", handler.AuthRequired, handler.ShowDashboard)
	app.Get("/dashboard", handler.AuthRequired, handler.ShowDashboard)
	app.Get("/history", handler.AuthRequired, handler.ShowHistory)
	app.Get("/calendar", handler.AuthRequired, handler.ShowCalendar)
	app.Get("/analytics", handler.AuthRequired, handler.ShowAnalytics)
	app.Get("/settings", handler.AuthRequired, handler.ShowSettings)

	app.Get("/episodes/new", handler.AuthRequired, handler.ShowEpisodeForm)
	app.Post("/episodes", handler.AuthRequired, handler.SubmitEpisodeForm)
	app.Get("/episodes/:id/edit", handler.AuthRequired, handler.ShowEditEpisodeForm)
	app.Post("/episodes/:id/delete", handler.AuthRequired, handler.DeleteEpisodeForm)
	app.Get("/episodes/:id", handler.AuthRequired, handler.ShowEpisodeDetail)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)

	episodes := api.Group("/episodes", handler.AuthRequired)
	episodes.Get("", handler.GetEpisodes)
	episodes.Get("/open", handler.GetOpenEpisode)
	episodes.Get("/:id", handler.GetEpisode)
	episodes.Post("", handler.CreateEpisode)
	episodes.Put("/:id", handler.UpdateEpisode)
	episodes.Delete("/:id", handler.DeleteEpisode)

	analytics := api.Group("/analytics", handler.AuthRequired)
	analytics.Get("/overview", handler.GetAnalyticsOverview)
	analytics.Get("/charts", handler.GetAnalyticsCharts)

	export := api.Group("/export", handler.AuthRequired)
	export.Get("/summary", handler.ExportSummary)
	export.Get("/csv", handler.ExportCSV)

	settings := api.Group("/settings", handler.AuthRequired)
	settings.Post("/change-password", handler.ChangePassword)
	// Plain form posts cannot send DELETE, so both verbs map to the handler.
	settings.Post("/delete-account", handler.DeleteAccount)
	settings.Delete("/delete-account", handler.DeleteAccount)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
