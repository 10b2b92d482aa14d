package services

import (
	"testing"
	"time"
)

func TestDateAtLocationTruncates(t *testing.T) {
	location, err := time.LoadLocation("Europe/Rome")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	// 23:30 UTC is already the next day in Rome.
	value := time.Date(2026, time.March, 10, 23, 30, 0, 0, time.UTC)
	day := DateAtLocation(value, location)
	if day.Day() != 11 || day.Hour() != 0 || day.Minute() != 0 {
		t.Errorf("unexpected local day %v", day)
	}
}

func TestDayRangeCoversWholeDay(t *testing.T) {
	value := time.Date(2026, time.March, 10, 15, 4, 5, 0, time.UTC)
	start, end := DayRange(value, time.UTC)
	if !start.Equal(time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected start %v", start)
	}
	if !end.Equal(start.AddDate(0, 0, 1)) {
		t.Errorf("unexpected end %v", end)
	}
}

func TestSameLocalDay(t *testing.T) {
	a := time.Date(2026, time.March, 10, 0, 1, 0, 0, time.UTC)
	b := time.Date(2026, time.March, 10, 23, 59, 0, 0, time.UTC)
	c := time.Date(2026, time.March, 11, 0, 0, 0, 0, time.UTC)

	if !SameLocalDay(a, b, time.UTC) {
		t.Error("expected same day")
	}
	if SameLocalDay(a, c, time.UTC) {
		t.Error("expected different days")
	}
}
