package api

import (
	"github.com/terraincognita07/cefalog/internal/db"
	"github.com/terraincognita07/cefalog/internal/services"
	"gorm.io/gorm"
)

func (handler *Handler) withDependencies(database *gorm.DB) *Handler {
	handler.repositories = db.NewRepositories(database)
	handler.authService = services.NewAuthService(handler.repositories.Users)
	handler.episodeService = services.NewEpisodeService(handler.repositories.Episodes)
	handler.exportService = services.NewExportService(handler.repositories.Episodes)
	return handler
}

func (handler *Handler) ensureDependencies() {
	if handler.repositories == nil {
		if handler.db == nil {
			return
		}
		handler.repositories = db.NewRepositories(handler.db)
	}

	if handler.authService == nil {
		handler.authService = services.NewAuthService(handler.repositories.Users)
	}
	if handler.episodeService == nil {
		handler.episodeService = services.NewEpisodeService(handler.repositories.Episodes)
	}
	if handler.exportService == nil {
		handler.exportService = services.NewExportService(handler.repositories.Episodes)
	}
}
