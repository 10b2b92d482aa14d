package services

import (
	"math"
	"sort"
	"time"

	"github.com/terraincognita07/cefalog/internal/models"
)

// MaxTrendDays bounds the daily trend output regardless of the requested
// window.
const MaxTrendDays = 365

const (
	BucketMorning   = "morning"
	BucketAfternoon = "afternoon"
	BucketEvening   = "evening"
	BucketNight     = "night"
)

type TrendPoint struct {
	Date      time.Time `json:"-"`
	Label     string    `json:"label"`
	FullDate  string    `json:"full_date"`
	Intensity float64   `json:"intensity"`
}

type ZoneCount struct {
	Zone  string `json:"zone"`
	Count int    `json:"count"`
	Color string `json:"color"`
}

type TimeBucketCount struct {
	Bucket string `json:"bucket"`
	Count  int    `json:"count"`
}

type TriggerCount struct {
	Label string  `json:"label"`
	Count int     `json:"count"`
	Share float64 `json:"share"`
}

type OverviewStats struct {
	TotalEpisodes    int     `json:"total_episodes"`
	AverageIntensity float64 `json:"average_intensity"`
	DaysSinceLast    int     `json:"days_since_last"`
	HasEpisodes      bool    `json:"has_episodes"`
}

// DailyTrend produces one point per calendar day between from and to
// inclusive, in chronological order, capped at MaxTrendDays. A day's
// intensity is the mean of the intensities of the episodes starting on that
// local calendar day, rounded to one decimal, or 0 when the day has no
// episodes. Episodes with a zero start timestamp are skipped. A window with
// to before from yields an empty series.
func DailyTrend(episodes []models.Episode, from time.Time, to time.Time, location *time.Location) []TrendPoint {
	firstDay := DateAtLocation(from, location)
	lastDay := DateAtLocation(to, location)
	if lastDay.Before(firstDay) {
		return []TrendPoint{}
	}

	sums := make(map[string]int)
	counts := make(map[string]int)
	for _, episode := range episodes {
		if episode.StartedAt.IsZero() {
			continue
		}
		key := DateAtLocation(episode.StartedAt, location).Format("2006-01-02")
		sums[key] += episode.Intensity
		counts[key]++
	}

	points := make([]TrendPoint, 0, MaxTrendDays)
	for day := firstDay; !day.After(lastDay) && len(points) < MaxTrendDays; day = day.AddDate(0, 0, 1) {
		key := day.Format("2006-01-02")
		intensity := 0.0
		if counts[key] > 0 {
			intensity = roundToOneDecimal(float64(sums[key]) / float64(counts[key]))
		}
		points = append(points, TrendPoint{
			Date:      day,
			Label:     day.Format("2"),
			FullDate:  day.Format("02/01/2006"),
			Intensity: intensity,
		})
	}
	return points
}

// ZoneFrequency counts (episode, zone) pairs across the input. Zone values
// outside the fixed enumeration are accumulated under the unrecognized bucket
// with the default display color. The result is sorted by descending count;
// ties keep the fixed zone enumeration order, with the unrecognized bucket
// ranked last.
func ZoneFrequency(episodes []models.Episode) []ZoneCount {
	counts := make(map[string]int)
	for _, episode := range episodes {
		for _, zone := range episode.Zones {
			if models.IsValidZone(zone) {
				counts[zone]++
			} else {
				counts[models.ZoneUnrecognized]++
			}
		}
	}
	if len(counts) == 0 {
		return []ZoneCount{}
	}

	rank := make(map[string]int, len(models.Zones())+1)
	for index, zone := range models.Zones() {
		rank[zone] = index
	}
	rank[models.ZoneUnrecognized] = len(models.Zones())

	result := make([]ZoneCount, 0, len(counts))
	for zone, count := range counts {
		result = append(result, ZoneCount{Zone: zone, Count: count, Color: models.ZoneColor(zone)})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count == result[j].Count {
			return rank[result[i].Zone] < rank[result[j].Zone]
		}
		return result[i].Count > result[j].Count
	})
	return result
}

// TimeOfDayDistribution classifies every episode by the local hour of its
// start timestamp into exactly one of the four fixed buckets: [6,12) morning,
// [12,18) afternoon, [18,24) evening, [0,6) night. All four buckets are
// returned, including empty ones.
func TimeOfDayDistribution(episodes []models.Episode, location *time.Location) []TimeBucketCount {
	if location == nil {
		location = time.UTC
	}

	counts := [4]int{}
	for _, episode := range episodes {
		if episode.StartedAt.IsZero() {
			continue
		}
		hour := episode.StartedAt.In(location).Hour()
		switch {
		case hour >= 6 && hour < 12:
			counts[0]++
		case hour >= 12 && hour < 18:
			counts[1]++
		case hour >= 18:
			counts[2]++
		default:
			counts[3]++
		}
	}

	return []TimeBucketCount{
		{Bucket: BucketMorning, Count: counts[0]},
		{Bucket: BucketAfternoon, Count: counts[1]},
		{Bucket: BucketEvening, Count: counts[2]},
		{Bucket: BucketNight, Count: counts[3]},
	}
}

// ActiveTimeBuckets drops empty buckets for chart rendering.
func ActiveTimeBuckets(distribution []TimeBucketCount) []TimeBucketCount {
	active := make([]TimeBucketCount, 0, len(distribution))
	for _, bucket := range distribution {
		if bucket.Count > 0 {
			active = append(active, bucket)
		}
	}
	return active
}

// TopTriggers counts trigger labels across all episodes and returns at most
// limit entries sorted by descending count, ties broken alphabetically. Share
// is the count relative to the total episode count, not to the top entry, so
// bars show prevalence across the whole log.
func TopTriggers(episodes []models.Episode, limit int) []TriggerCount {
	counts := make(map[string]int)
	for _, episode := range episodes {
		for _, trigger := range episode.Triggers {
			counts[trigger]++
		}
	}
	if len(counts) == 0 || limit <= 0 {
		return []TriggerCount{}
	}

	result := make([]TriggerCount, 0, len(counts))
	for label, count := range counts {
		result = append(result, TriggerCount{Label: label, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count == result[j].Count {
			return result[i].Label < result[j].Label
		}
		return result[i].Count > result[j].Count
	})
	if len(result) > limit {
		result = result[:limit]
	}

	total := len(episodes)
	for index := range result {
		if total > 0 {
			result[index].Share = float64(result[index].Count) / float64(total)
		}
	}
	return result
}

// Overview computes the dashboard summary: total episode count, mean
// intensity across all episodes rounded to one decimal, and full days since
// the most recent start.
func Overview(episodes []models.Episode, now time.Time) OverviewStats {
	if len(episodes) == 0 {
		return OverviewStats{}
	}

	sum := 0
	latest := episodes[0].StartedAt
	for _, episode := range episodes {
		sum += episode.Intensity
		if episode.StartedAt.After(latest) {
			latest = episode.StartedAt
		}
	}

	daysSince := int(now.Sub(latest).Hours() / 24)
	if daysSince < 0 {
		daysSince = 0
	}

	return OverviewStats{
		TotalEpisodes:    len(episodes),
		AverageIntensity: roundToOneDecimal(float64(sum) / float64(len(episodes))),
		DaysSinceLast:    daysSince,
		HasEpisodes:      true,
	}
}

// FilterByWindow keeps episodes whose start timestamp falls within the
// inclusive day window, without mutating the input.
func FilterByWindow(episodes []models.Episode, from time.Time, to time.Time, location *time.Location) []models.Episode {
	windowStart := DateAtLocation(from, location)
	windowEnd := DateAtLocation(to, location).AddDate(0, 0, 1)

	filtered := make([]models.Episode, 0, len(episodes))
	for _, episode := range episodes {
		if episode.StartedAt.IsZero() {
			continue
		}
		started := episode.StartedAt.In(location)
		if !started.Before(windowStart) && started.Before(windowEnd) {
			filtered = append(filtered, episode)
		}
	}
	return filtered
}

func roundToOneDecimal(value float64) float64 {
	return math.Round(value*10) / 10
}
