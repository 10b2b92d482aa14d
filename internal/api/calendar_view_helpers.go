package api

import (
	"time"

	"github.com/terraincognita07/cefalog/internal/models"
	"github.com/terraincognita07/cefalog/internal/services"
)

type CalendarDay struct {
	Date         time.Time
	DateString   string
	Day          int
	InMonth      bool
	IsToday      bool
	IsSelected   bool
	EpisodeCount int
	MaxIntensity int
	CellClass    string
}

// buildCalendarDays lays out a Monday-first grid covering the whole month,
// padded with the surrounding days to full weeks. A day carrying episodes is
// colored by the strongest one.
func buildCalendarDays(monthStart time.Time, today time.Time, selected time.Time, episodes []models.Episode, location *time.Location) []CalendarDay {
	maxByDay := make(map[string]int)
	countByDay := make(map[string]int)
	for _, episode := range episodes {
		key := services.DateAtLocation(episode.StartedAt, location).Format("2006-01-02")
		countByDay[key]++
		if episode.Intensity > maxByDay[key] {
			maxByDay[key] = episode.Intensity
		}
	}

	gridStart := monthStart
	for gridStart.Weekday() != time.Monday {
		gridStart = gridStart.AddDate(0, 0, -1)
	}
	monthEnd := monthStart.AddDate(0, 1, -1)
	gridEnd := monthEnd
	for gridEnd.Weekday() != time.Sunday {
		gridEnd = gridEnd.AddDate(0, 0, 1)
	}

	todayKey := services.DateAtLocation(today, location).Format("2006-01-02")
	selectedKey := ""
	if !selected.IsZero() {
		selectedKey = services.DateAtLocation(selected, location).Format("2006-01-02")
	}

	days := make([]CalendarDay, 0, 42)
	for day := gridStart; !day.After(gridEnd); day = day.AddDate(0, 0, 1) {
		key := day.Format("2006-01-02")
		maxIntensity := maxByDay[key]
		days = append(days, CalendarDay{
			Date:         day,
			DateString:   key,
			Day:          day.Day(),
			InMonth:      day.Month() == monthStart.Month(),
			IsToday:      key == todayKey,
			IsSelected:   key == selectedKey,
			EpisodeCount: countByDay[key],
			MaxIntensity: maxIntensity,
			CellClass:    calendarCellClass(maxIntensity),
		})
	}
	return days
}

func calendarCellClass(maxIntensity int) string {
	switch {
	case maxIntensity >= 7:
		return "day-severe"
	case maxIntensity >= 4:
		return "day-moderate"
	case maxIntensity >= 1:
		return "day-mild"
	default:
		return ""
	}
}

func episodesOnDay(episodes []models.Episode, day time.Time, location *time.Location) []models.Episode {
	matched := make([]models.Episode, 0, 4)
	for _, episode := range episodes {
		if services.SameLocalDay(episode.StartedAt, day, location) {
			matched = append(matched, episode)
		}
	}
	return matched
}
