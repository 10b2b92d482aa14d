package api

import (
	"errors"
	"time"

	"github.com/terraincognita07/cefalog/internal/models"
)

// episodeFromPayload converts the transport shape into the stored record.
// The end timestamp stays nil while the attack is ongoing.
func (handler *Handler) episodeFromPayload(payload episodePayload) (models.Episode, error) {
	startedAt, err := parseTimestampValue(payload.StartedAt, handler.location)
	if err != nil {
		return models.Episode{}, errors.New("invalid start timestamp")
	}

	var endedAt *time.Time
	if payload.EndedAt != "" {
		parsed, err := parseTimestampValue(payload.EndedAt, handler.location)
		if err != nil {
			return models.Episode{}, errors.New("invalid end timestamp")
		}
		endedAt = &parsed
	}

	return models.Episode{
		ID:                 payload.ID,
		StartedAt:          startedAt,
		EndedAt:            endedAt,
		Intensity:          payload.Intensity,
		Quality:            payload.Quality,
		Zones:              payload.Zones,
		HasAura:            payload.HasAura,
		LightSensitive:     payload.LightSensitive,
		SoundSensitive:     payload.SoundSensitive,
		SmellSensitive:     payload.SmellSensitive,
		HasNausea:          payload.HasNausea,
		WorsenedByMovement: payload.WorsenedByMovement,
		Triggers:           payload.Triggers,
		Medication:         payload.Medication,
		Food:               payload.Food,
		Notes:              payload.Notes,
	}, nil
}
