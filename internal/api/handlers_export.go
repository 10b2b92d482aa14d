package api

import (
	"bytes"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cefalog/internal/models"
	"github.com/terraincognita07/cefalog/internal/services"
)

func (handler *Handler) ExportCSV(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	from, to, err := parseRangeQuery(c, handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	handler.ensureDependencies()
	episodes, err := handler.exportService.LoadEpisodesForRange(user.ID, from, to)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load entries")
	}

	labels := buildExportLabels(currentMessages(c))
	var output bytes.Buffer
	if err := handler.exportService.WriteCSV(&output, episodes, labels, handler.location); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}

	filename := services.ExportFilename(time.Now().In(handler.location))
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(output.Bytes())
}

func (handler *Handler) ExportSummary(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	from, to, err := parseRangeQuery(c, handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	handler.ensureDependencies()
	summary, err := handler.exportService.BuildSummary(user.ID, from, to, handler.location)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load entries")
	}

	return c.JSON(fiber.Map{
		"total_entries": summary.TotalEntries,
		"has_data":      summary.HasData,
		"date_from":     summary.DateFrom,
		"date_to":       summary.DateTo,
	})
}

func buildExportLabels(messages map[string]string) services.ExportLabels {
	headerKeys := []string{
		"export.header.start",
		"export.header.end",
		"export.header.intensity",
		"export.header.quality",
		"export.header.zones",
		"export.header.aura",
		"export.header.nausea",
		"export.header.photophobia",
		"export.header.phonophobia",
		"export.header.triggers",
		"export.header.medication",
		"export.header.food",
		"export.header.notes",
	}
	headers := make([]string, 0, len(headerKeys))
	for _, key := range headerKeys {
		headers = append(headers, translateMessage(messages, key))
	}

	qualityNames := make(map[string]string, len(models.PainQualities()))
	for _, quality := range models.PainQualities() {
		qualityNames[quality] = translateMessage(messages, qualityTranslationKey(quality))
	}
	zoneNames := make(map[string]string, len(models.Zones())+1)
	for _, zone := range models.Zones() {
		zoneNames[zone] = translateMessage(messages, zoneTranslationKey(zone))
	}
	zoneNames[models.ZoneUnrecognized] = translateMessage(messages, zoneTranslationKey(models.ZoneUnrecognized))
	triggerNames := make(map[string]string, len(models.SuggestedTriggers()))
	for _, trigger := range models.SuggestedTriggers() {
		triggerNames[trigger] = localizedTriggerName(messages, trigger)
	}

	return services.ExportLabels{
		Headers:      headers,
		Yes:          translateMessage(messages, "export.yes"),
		No:           translateMessage(messages, "export.no"),
		InProgress:   translateMessage(messages, "export.in_progress"),
		QualityNames: qualityNames,
		ZoneNames:    zoneNames,
		TriggerNames: triggerNames,
	}
}
