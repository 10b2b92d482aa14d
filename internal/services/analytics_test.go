package services

import (
	"testing"
	"time"

	"github.com/terraincognita07/cefalog/internal/models"
)

func testEpisode(startedAt time.Time, intensity int) models.Episode {
	return models.Episode{
		ID:        "ep-" + startedAt.Format("20060102-150405"),
		UserID:    1,
		StartedAt: startedAt,
		Intensity: intensity,
		Quality:   models.QualityPulsing,
		Zones:     []string{},
		Triggers:  []string{},
	}
}

func TestDailyTrendAveragesPerDay(t *testing.T) {
	day := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	episodes := []models.Episode{
		testEpisode(day.Add(8*time.Hour), 4),
		testEpisode(day.Add(20*time.Hour), 8),
	}

	points := DailyTrend(episodes, day, day.AddDate(0, 0, 2), time.UTC)
	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(points))
	}
	if points[0].Intensity != 6.0 {
		t.Errorf("expected day average 6.0, got %v", points[0].Intensity)
	}
	if points[1].Intensity != 0 || points[2].Intensity != 0 {
		t.Errorf("expected empty days to report 0, got %v and %v", points[1].Intensity, points[2].Intensity)
	}
	if points[0].FullDate != "10/03/2026" {
		t.Errorf("unexpected full date %q", points[0].FullDate)
	}
	if points[0].Label != "10" {
		t.Errorf("unexpected label %q", points[0].Label)
	}
}

func TestDailyTrendRoundsToOneDecimal(t *testing.T) {
	day := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	episodes := []models.Episode{
		testEpisode(day.Add(1*time.Hour), 5),
		testEpisode(day.Add(2*time.Hour), 5),
		testEpisode(day.Add(3*time.Hour), 6),
	}

	points := DailyTrend(episodes, day, day, time.UTC)
	if len(points) != 1 {
		t.Fatalf("expected 1 point, got %d", len(points))
	}
	if points[0].Intensity != 5.3 {
		t.Errorf("expected 5.3, got %v", points[0].Intensity)
	}
}

func TestDailyTrendCapsAtMaxDays(t *testing.T) {
	from := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(2, 0, 0)

	points := DailyTrend(nil, from, to, time.UTC)
	if len(points) != MaxTrendDays {
		t.Fatalf("expected cap at %d points, got %d", MaxTrendDays, len(points))
	}
}

func TestDailyTrendInvertedWindowIsEmpty(t *testing.T) {
	from := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	points := DailyTrend(nil, from, from.AddDate(0, 0, -1), time.UTC)
	if len(points) != 0 {
		t.Fatalf("expected empty series, got %d points", len(points))
	}
}

func TestDailyTrendSkipsZeroStart(t *testing.T) {
	day := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	episodes := []models.Episode{
		{Intensity: 9},
		testEpisode(day.Add(time.Hour), 4),
	}

	points := DailyTrend(episodes, day, day, time.UTC)
	if points[0].Intensity != 4.0 {
		t.Errorf("expected zero-start episode to be skipped, got %v", points[0].Intensity)
	}
}

func TestZoneFrequencyCountsAndOrder(t *testing.T) {
	day := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	first := testEpisode(day, 5)
	first.Zones = []string{models.ZoneForehead, models.ZoneNeck}
	second := testEpisode(day.Add(time.Hour), 5)
	second.Zones = []string{models.ZoneNeck, "somewhere else"}

	result := ZoneFrequency([]models.Episode{first, second})
	if len(result) != 3 {
		t.Fatalf("expected 3 zones, got %d", len(result))
	}
	if result[0].Zone != models.ZoneNeck || result[0].Count != 2 {
		t.Errorf("expected neck first with count 2, got %+v", result[0])
	}

	// Equal counts keep the fixed zone order, unrecognized last.
	if result[1].Zone != models.ZoneForehead {
		t.Errorf("expected forehead before unrecognized on tie, got %q", result[1].Zone)
	}
	if result[2].Zone != models.ZoneUnrecognized {
		t.Errorf("expected unrecognized bucket last, got %q", result[2].Zone)
	}
	if result[2].Color != models.ZoneDefaultColor {
		t.Errorf("expected default color for unrecognized zone, got %q", result[2].Color)
	}

	total := 0
	for _, zone := range result {
		total += zone.Count
	}
	if total != 4 {
		t.Errorf("expected zone counts to sum to pair count 4, got %d", total)
	}
	for i := 1; i < len(result); i++ {
		if result[i].Count > result[i-1].Count {
			t.Errorf("counts not in non-increasing order at %d", i)
		}
	}
}

func TestZoneFrequencyEmptyInput(t *testing.T) {
	if result := ZoneFrequency(nil); len(result) != 0 {
		t.Fatalf("expected empty result, got %d", len(result))
	}
}

func TestTimeOfDayDistributionBuckets(t *testing.T) {
	day := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	episodes := []models.Episode{
		testEpisode(day.Add(6*time.Hour), 5),                // morning lower bound
		testEpisode(day.Add(11*time.Hour+59*time.Minute), 5), // morning upper edge
		testEpisode(day.Add(12*time.Hour), 5),               // afternoon lower bound
		testEpisode(day.Add(23*time.Hour), 5),               // evening
		testEpisode(day.Add(5*time.Hour), 5),                // night
		testEpisode(day, 5),                                 // midnight is night
	}

	distribution := TimeOfDayDistribution(episodes, time.UTC)
	if len(distribution) != 4 {
		t.Fatalf("expected all 4 buckets, got %d", len(distribution))
	}

	counts := map[string]int{}
	total := 0
	for _, bucket := range distribution {
		counts[bucket.Bucket] = bucket.Count
		total += bucket.Count
	}
	if total != len(episodes) {
		t.Errorf("expected every episode in exactly one bucket, got total %d", total)
	}
	if counts[BucketMorning] != 2 || counts[BucketAfternoon] != 1 ||
		counts[BucketEvening] != 1 || counts[BucketNight] != 2 {
		t.Errorf("unexpected distribution %v", counts)
	}
}

func TestActiveTimeBucketsDropsEmpty(t *testing.T) {
	active := ActiveTimeBuckets([]TimeBucketCount{
		{Bucket: BucketMorning, Count: 2},
		{Bucket: BucketAfternoon, Count: 0},
		{Bucket: BucketEvening, Count: 1},
		{Bucket: BucketNight, Count: 0},
	})
	if len(active) != 2 {
		t.Fatalf("expected 2 active buckets, got %d", len(active))
	}
	if active[0].Bucket != BucketMorning || active[1].Bucket != BucketEvening {
		t.Errorf("unexpected active buckets %v", active)
	}
}

func TestTopTriggersLimitAndShare(t *testing.T) {
	day := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	episodes := make([]models.Episode, 0, 4)
	triggerSets := [][]string{
		{"stress", "screens"},
		{"stress", "alcohol"},
		{"stress", "caffeine", "dehydration", "weather"},
		{"screens"},
	}
	for i, triggers := range triggerSets {
		episode := testEpisode(day.Add(time.Duration(i)*time.Hour), 5)
		episode.Triggers = triggers
		episodes = append(episodes, episode)
	}

	result := TopTriggers(episodes, 5)
	if len(result) != 5 {
		t.Fatalf("expected 5 triggers, got %d", len(result))
	}
	if result[0].Label != "stress" || result[0].Count != 3 {
		t.Errorf("expected stress first with count 3, got %+v", result[0])
	}
	if result[0].Share != 0.75 {
		t.Errorf("expected share 3/4, got %v", result[0].Share)
	}
	if result[1].Label != "screens" || result[1].Count != 2 {
		t.Errorf("expected screens second, got %+v", result[1])
	}

	// Singles tie, so alphabetical order decides the remaining slots.
	if result[2].Label != "alcohol" || result[3].Label != "caffeine" || result[4].Label != "dehydration" {
		t.Errorf("unexpected tie-break order: %v %v %v", result[2].Label, result[3].Label, result[4].Label)
	}
}

func TestTopTriggersEmpty(t *testing.T) {
	if result := TopTriggers(nil, 5); len(result) != 0 {
		t.Fatalf("expected empty result, got %d", len(result))
	}
}

func TestOverviewStats(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	episodes := []models.Episode{
		testEpisode(now.AddDate(0, 0, -3), 4),
		testEpisode(now.AddDate(0, 0, -10), 8),
	}

	stats := Overview(episodes, now)
	if stats.TotalEpisodes != 2 {
		t.Errorf("expected 2 episodes, got %d", stats.TotalEpisodes)
	}
	if stats.AverageIntensity != 6.0 {
		t.Errorf("expected mean 6.0, got %v", stats.AverageIntensity)
	}
	if stats.DaysSinceLast != 3 {
		t.Errorf("expected 3 days since last, got %d", stats.DaysSinceLast)
	}
	if !stats.HasEpisodes {
		t.Error("expected HasEpisodes")
	}
}

func TestOverviewEmpty(t *testing.T) {
	stats := Overview(nil, time.Now())
	if stats.HasEpisodes || stats.TotalEpisodes != 0 || stats.AverageIntensity != 0 {
		t.Errorf("expected zero stats, got %+v", stats)
	}
}

func TestFilterByWindowInclusiveDays(t *testing.T) {
	location := time.UTC
	from := time.Date(2026, time.March, 10, 0, 0, 0, 0, location)
	to := time.Date(2026, time.March, 12, 0, 0, 0, 0, location)
	episodes := []models.Episode{
		testEpisode(time.Date(2026, time.March, 9, 23, 59, 0, 0, location), 5),
		testEpisode(time.Date(2026, time.March, 10, 0, 0, 0, 0, location), 5),
		testEpisode(time.Date(2026, time.March, 12, 23, 59, 0, 0, location), 5),
		testEpisode(time.Date(2026, time.March, 13, 0, 0, 0, 0, location), 5),
	}

	filtered := FilterByWindow(episodes, from, to, location)
	if len(filtered) != 2 {
		t.Fatalf("expected 2 episodes in window, got %d", len(filtered))
	}
}
