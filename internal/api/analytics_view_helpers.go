package api

import (
	"time"

	"github.com/terraincognita07/cefalog/internal/models"
	"github.com/terraincognita07/cefalog/internal/services"
)

type trendBarView struct {
	Label         string
	FullDate      string
	Intensity     float64
	HeightPercent float64
}

type zoneBarView struct {
	Zone         string
	Color        string
	Count        int
	WidthPercent float64
}

type bucketBarView struct {
	Bucket       string
	Count        int
	WidthPercent float64
}

type triggerBarView struct {
	Label        string
	Count        int
	WidthPercent float64
}

type analyticsViewData struct {
	Trend        []trendBarView
	Zones        []zoneBarView
	Buckets      []bucketBarView
	Triggers     []triggerBarView
	WindowStats  services.OverviewStats
	WindowTotal  int
	HasTrendData bool
}

// buildAnalyticsView shapes the aggregation output into simple bar
// geometries the templates can render without chart scripting. Trend bars
// scale against the 1..10 intensity scale, the other charts against their
// own maximum.
func buildAnalyticsView(episodes []models.Episode, from time.Time, to time.Time, now time.Time, location *time.Location) analyticsViewData {
	windowed := services.FilterByWindow(episodes, from, to, location)

	trend := services.DailyTrend(windowed, from, to, location)
	trendBars := make([]trendBarView, 0, len(trend))
	hasTrendData := false
	for _, point := range trend {
		if point.Intensity > 0 {
			hasTrendData = true
		}
		trendBars = append(trendBars, trendBarView{
			Label:         point.Label,
			FullDate:      point.FullDate,
			Intensity:     point.Intensity,
			HeightPercent: point.Intensity * 10,
		})
	}

	zones := services.ZoneFrequency(windowed)
	zoneBars := make([]zoneBarView, 0, len(zones))
	maxZone := 0
	for _, zone := range zones {
		if zone.Count > maxZone {
			maxZone = zone.Count
		}
	}
	for _, zone := range zones {
		zoneBars = append(zoneBars, zoneBarView{
			Zone:         zone.Zone,
			Color:        zone.Color,
			Count:        zone.Count,
			WidthPercent: barPercent(zone.Count, maxZone),
		})
	}

	buckets := services.ActiveTimeBuckets(services.TimeOfDayDistribution(windowed, location))
	bucketBars := make([]bucketBarView, 0, len(buckets))
	maxBucket := 0
	for _, bucket := range buckets {
		if bucket.Count > maxBucket {
			maxBucket = bucket.Count
		}
	}
	for _, bucket := range buckets {
		bucketBars = append(bucketBars, bucketBarView{
			Bucket:       bucket.Bucket,
			Count:        bucket.Count,
			WidthPercent: barPercent(bucket.Count, maxBucket),
		})
	}

	triggers := services.TopTriggers(windowed, 5)
	triggerBars := make([]triggerBarView, 0, len(triggers))
	for _, trigger := range triggers {
		triggerBars = append(triggerBars, triggerBarView{
			Label:        trigger.Label,
			Count:        trigger.Count,
			WidthPercent: trigger.Share * 100,
		})
	}

	return analyticsViewData{
		Trend:        trendBars,
		Zones:        zoneBars,
		Buckets:      bucketBars,
		Triggers:     triggerBars,
		WindowStats:  services.Overview(windowed, now),
		WindowTotal:  len(windowed),
		HasTrendData: hasTrendData,
	}
}

func barPercent(count int, max int) float64 {
	if max <= 0 {
		return 0
	}
	return float64(count) * 100 / float64(max)
}
