package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/terraincognita07/cefalog/internal/models"
)

const exportTimestampLayout = "02/01/2006 15:04"
const exportDateLayout = "2006-01-02"

// utf8BOM makes spreadsheet applications pick up the encoding.
const utf8BOM = "\ufeff"

type ExportDayReader interface {
	ListByUserRange(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.Episode, error)
}

type ExportService struct {
	episodes ExportDayReader
}

type ExportSummary struct {
	TotalEntries int
	HasData      bool
	DateFrom     string
	DateTo       string
}

// ExportLabels carries the localized strings the CSV needs; the caller
// resolves them from the active locale catalog.
type ExportLabels struct {
	Headers      []string
	Yes          string
	No           string
	InProgress   string
	QualityNames map[string]string
	ZoneNames    map[string]string
	TriggerNames map[string]string
}

func NewExportService(episodes ExportDayReader) *ExportService {
	return &ExportService{episodes: episodes}
}

func (service *ExportService) LoadEpisodesForRange(userID uint, from *time.Time, to *time.Time) ([]models.Episode, error) {
	return service.episodes.ListByUserRange(userID, from, to)
}

func (service *ExportService) BuildSummary(userID uint, from *time.Time, to *time.Time, location *time.Location) (ExportSummary, error) {
	episodes, err := service.episodes.ListByUserRange(userID, from, to)
	if err != nil {
		return ExportSummary{}, err
	}
	if len(episodes) == 0 {
		return ExportSummary{}, nil
	}

	first := episodes[0].StartedAt
	last := episodes[0].StartedAt
	for _, episode := range episodes[1:] {
		if episode.StartedAt.Before(first) {
			first = episode.StartedAt
		}
		if episode.StartedAt.After(last) {
			last = episode.StartedAt
		}
	}

	return ExportSummary{
		TotalEntries: len(episodes),
		HasData:      true,
		DateFrom:     DateAtLocation(first, location).Format(exportDateLayout),
		DateTo:       DateAtLocation(last, location).Format(exportDateLayout),
	}, nil
}

// WriteCSV renders one row per episode in the fixed column order: start,
// end or the localized in-progress marker, intensity, pain quality, zones,
// the four symptom flags as localized yes/no, triggers, medication, food,
// notes. Quoting and escape-by-doubling come from encoding/csv.
func (service *ExportService) WriteCSV(output io.Writer, episodes []models.Episode, labels ExportLabels, location *time.Location) error {
	if _, err := io.WriteString(output, utf8BOM); err != nil {
		return fmt.Errorf("write byte order mark: %w", err)
	}

	writer := csv.NewWriter(output)
	if err := writer.Write(labels.Headers); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, episode := range episodes {
		ended := labels.InProgress
		if episode.EndedAt != nil {
			ended = episode.EndedAt.In(location).Format(exportTimestampLayout)
		}

		if err := writer.Write([]string{
			episode.StartedAt.In(location).Format(exportTimestampLayout),
			ended,
			fmt.Sprintf("%d", episode.Intensity),
			exportLabel(labels.QualityNames, episode.Quality),
			joinLabeled(labels.ZoneNames, episode.Zones),
			yesNo(labels, episode.HasAura),
			yesNo(labels, episode.HasNausea),
			yesNo(labels, episode.LightSensitive),
			yesNo(labels, episode.SoundSensitive),
			joinLabeled(labels.TriggerNames, episode.Triggers),
			episode.Medication,
			episode.Food,
			episode.Notes,
		}); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func ExportFilename(now time.Time) string {
	return "cefalog_export_" + now.Format(exportDateLayout) + ".csv"
}

func yesNo(labels ExportLabels, value bool) string {
	if value {
		return labels.Yes
	}
	return labels.No
}

func exportLabel(names map[string]string, key string) string {
	if label, ok := names[key]; ok {
		return label
	}
	return key
}

func joinLabeled(names map[string]string, keys []string) string {
	labeled := make([]string, 0, len(keys))
	for _, key := range keys {
		labeled = append(labeled, exportLabel(names, key))
	}
	return strings.Join(labeled, ", ")
}
