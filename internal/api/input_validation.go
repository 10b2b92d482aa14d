package api

import (
	"errors"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

func parseCredentials(c *fiber.Ctx) (credentialsInput, error) {
	credentials := credentialsInput{}
	if err := c.BodyParser(&credentials); err != nil {
		return credentialsInput{}, err
	}

	credentials.Email = strings.ToLower(strings.TrimSpace(credentials.Email))
	credentials.Password = strings.TrimSpace(credentials.Password)
	credentials.ConfirmPassword = strings.TrimSpace(credentials.ConfirmPassword)
	credentials.RememberMe = credentials.RememberMe || parseBoolValue(c.FormValue("remember_me"))

	if credentials.Email == "" || credentials.Password == "" {
		return credentialsInput{}, errors.New("missing credentials")
	}
	if _, err := mail.ParseAddress(credentials.Email); err != nil {
		return credentialsInput{}, errors.New("invalid email")
	}

	return credentials, nil
}

// parseEpisodePayload accepts the JSON API shape and the HTML form shape.
// Forms carry zones and triggers as repeated checkbox fields plus a
// free-text comma-separated triggers input.
func parseEpisodePayload(c *fiber.Ctx) (episodePayload, error) {
	payload := episodePayload{Zones: []string{}, Triggers: []string{}}
	contentType := strings.ToLower(c.Get("Content-Type"))

	if strings.Contains(contentType, "application/json") {
		if err := c.BodyParser(&payload); err != nil {
			return payload, err
		}
	} else {
		payload.ID = strings.TrimSpace(c.FormValue("id"))
		payload.StartedAt = strings.TrimSpace(c.FormValue("started_at"))
		payload.EndedAt = strings.TrimSpace(c.FormValue("ended_at"))
		payload.Quality = strings.TrimSpace(c.FormValue("quality"))
		payload.Medication = strings.TrimSpace(c.FormValue("medication"))
		payload.Food = strings.TrimSpace(c.FormValue("food"))
		payload.Notes = strings.TrimSpace(c.FormValue("notes"))

		intensity, err := strconv.Atoi(strings.TrimSpace(c.FormValue("intensity")))
		if err != nil {
			return payload, errors.New("invalid intensity")
		}
		payload.Intensity = intensity

		payload.HasAura = parseBoolValue(c.FormValue("has_aura"))
		payload.LightSensitive = parseBoolValue(c.FormValue("light_sensitive"))
		payload.SoundSensitive = parseBoolValue(c.FormValue("sound_sensitive"))
		payload.SmellSensitive = parseBoolValue(c.FormValue("smell_sensitive"))
		payload.HasNausea = parseBoolValue(c.FormValue("has_nausea"))
		payload.WorsenedByMovement = parseBoolValue(c.FormValue("worsened_by_movement"))

		for _, value := range c.Context().PostArgs().PeekMulti("zones") {
			zone := strings.TrimSpace(string(value))
			if zone != "" {
				payload.Zones = append(payload.Zones, zone)
			}
		}
		for _, value := range c.Context().PostArgs().PeekMulti("triggers") {
			trigger := strings.TrimSpace(string(value))
			if trigger != "" {
				payload.Triggers = append(payload.Triggers, trigger)
			}
		}
		for _, extra := range strings.Split(c.FormValue("triggers_custom"), ",") {
			trigger := strings.TrimSpace(extra)
			if trigger != "" {
				payload.Triggers = append(payload.Triggers, trigger)
			}
		}
	}

	if payload.Zones == nil {
		payload.Zones = []string{}
	}
	if payload.Triggers == nil {
		payload.Triggers = []string{}
	}
	return payload, nil
}

func parseBoolValue(value string) bool {
	normalized := strings.ToLower(strings.TrimSpace(value))
	return normalized == "1" || normalized == "true" || normalized == "on" || normalized == "yes"
}

// parseTimestampValue accepts the datetime-local form layout and RFC 3339.
func parseTimestampValue(raw string, location *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, errors.New("timestamp is required")
	}
	if parsed, err := time.ParseInLocation("2006-01-02T15:04", raw, location); err == nil {
		return parsed, nil
	}
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return parsed.In(location), nil
	}
	return time.Time{}, errors.New("invalid timestamp")
}

func parseDayParam(raw string, location *time.Location) (time.Time, error) {
	if raw == "" {
		return time.Time{}, errors.New("date is required")
	}
	parsed, err := time.ParseInLocation("2006-01-02", raw, location)
	if err != nil {
		return time.Time{}, err
	}
	return parsed, nil
}

func parseMonthQuery(raw string, now time.Time, location *time.Location) (time.Time, error) {
	if raw == "" {
		current := now.In(location)
		return time.Date(current.Year(), current.Month(), 1, 0, 0, 0, 0, location), nil
	}
	parsed, err := time.ParseInLocation("2006-01", raw, location)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(parsed.Year(), parsed.Month(), 1, 0, 0, 0, 0, location), nil
}

// parseRangeQuery reads optional from/to day bounds; to is widened to the
// end of its day so the range is inclusive.
func parseRangeQuery(c *fiber.Ctx, location *time.Location) (*time.Time, *time.Time, error) {
	var from *time.Time
	var to *time.Time

	if raw := strings.TrimSpace(c.Query("from")); raw != "" {
		parsed, err := parseDayParam(raw, location)
		if err != nil {
			return nil, nil, errors.New("invalid from date")
		}
		from = &parsed
	}
	if raw := strings.TrimSpace(c.Query("to")); raw != "" {
		parsed, err := parseDayParam(raw, location)
		if err != nil {
			return nil, nil, errors.New("invalid to date")
		}
		endOfDay := parsed.AddDate(0, 0, 1).Add(-time.Nanosecond)
		to = &endOfDay
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, errors.New("invalid date range")
	}
	return from, to, nil
}
