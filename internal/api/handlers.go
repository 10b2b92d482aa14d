package api

import (
	"errors"
	"fmt"
	"html/template"
	"path/filepath"
	"time"

	"github.com/terraincognita07/cefalog/internal/i18n"
	"github.com/terraincognita07/cefalog/internal/models"
	"gorm.io/gorm"
)

func NewHandler(database *gorm.DB, secret string, templateDir string, location *time.Location, i18nManager *i18n.Manager, cookieSecure bool) (*Handler, error) {
	if location == nil {
		location = time.Local
	}
	if i18nManager == nil {
		return nil, errors.New("i18n manager is required")
	}

	funcMap := template.FuncMap{
		"t":              templateTranslate,
		"formatDate":     formatTemplateDate,
		"formatFloat":    formatTemplateFloat,
		"userIdentity":   templateUserIdentity,
		"qualityLabel":   templateQualityLabel,
		"zoneLabel":      templateZoneLabel,
		"zoneColor":      models.ZoneColor,
		"triggerLabel":   templateTriggerLabel,
		"bucketLabel":    templateBucketLabel,
		"intensityClass": intensityBadgeClass,
		"durationLabel":  templateDurationLabel,
		"hasZone":        hasTemplateValue,
		"hasTrigger":     hasTemplateValue,
		"isActiveRoute":  isActiveTemplateRoute,
		"dict":           templateDict,
		"toJSON":         templateToJSON,
	}

	pages := []string{
		"login",
		"register",
		"dashboard",
		"history",
		"calendar",
		"episode_form",
		"episode_detail",
		"analytics",
		"settings",
		"privacy",
	}
	templates, err := parsePageTemplates(templateDir, funcMap, pages)
	if err != nil {
		return nil, err
	}

	handler := &Handler{
		db:           database,
		secretKey:    []byte(secret),
		location:     location,
		cookieSecure: cookieSecure,
		i18n:         i18nManager,
		templates:    templates,
		loginLimiter: newAttemptLimiter(),
	}
	return handler.withDependencies(database), nil
}

func parsePageTemplates(templateDir string, funcMap template.FuncMap, pages []string) (map[string]*template.Template, error) {
	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		parsed, err := template.New("base").Funcs(funcMap).ParseFiles(
			filepath.Join(templateDir, "base.html"),
			filepath.Join(templateDir, page+".html"),
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		templates[page] = parsed
	}
	return templates, nil
}
