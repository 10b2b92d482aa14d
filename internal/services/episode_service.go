package services

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/cefalog/internal/models"
)

var (
	ErrEpisodeNotFound  = errors.New("episode not found")
	ErrInvalidIntensity = errors.New("intensity out of range")
	ErrEndBeforeStart   = errors.New("end timestamp before start")
	ErrMissingStart     = errors.New("missing start timestamp")
)

type EpisodeStore interface {
	ListByUser(userID uint) ([]models.Episode, error)
	ListByUserRange(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.Episode, error)
	FindByIDForUser(userID uint, episodeID string) (models.Episode, bool, error)
	FindOpenForUser(userID uint) (models.Episode, bool, error)
	Create(episode *models.Episode) error
	Save(episode *models.Episode) error
	DeleteByIDForUser(userID uint, episodeID string) error
}

type EpisodeService struct {
	episodes EpisodeStore
}

func NewEpisodeService(episodes EpisodeStore) *EpisodeService {
	return &EpisodeService{episodes: episodes}
}

func (service *EpisodeService) ListForUser(userID uint) ([]models.Episode, error) {
	return service.episodes.ListByUser(userID)
}

func (service *EpisodeService) ListForUserWindow(userID uint, from time.Time, to time.Time, location *time.Location) ([]models.Episode, error) {
	windowStart := DateAtLocation(from, location)
	windowEnd := DateAtLocation(to, location).AddDate(0, 0, 1)
	return service.episodes.ListByUserRange(userID, &windowStart, &windowEnd)
}

func (service *EpisodeService) FindForUser(userID uint, episodeID string) (models.Episode, error) {
	episode, found, err := service.episodes.FindByIDForUser(userID, episodeID)
	if err != nil {
		return models.Episode{}, err
	}
	if !found {
		return models.Episode{}, ErrEpisodeNotFound
	}
	return episode, nil
}

// FindOpenForUser returns the newest ongoing episode, if any. At most one
// open episode is a convention kept by the form flow, not a schema
// constraint, so the newest one wins when history was backfilled.
func (service *EpisodeService) FindOpenForUser(userID uint) (models.Episode, bool, error) {
	return service.episodes.FindOpenForUser(userID)
}

func (service *EpisodeService) CreateForUser(userID uint, episode *models.Episode) error {
	NormalizeEpisode(episode)
	if err := ValidateEpisode(episode); err != nil {
		return err
	}
	if strings.TrimSpace(episode.ID) == "" {
		episode.ID = uuid.NewString()
	}
	episode.UserID = userID
	return service.episodes.Create(episode)
}

// UpdateForUser replaces the stored record wholesale, keyed by id.
func (service *EpisodeService) UpdateForUser(userID uint, episode *models.Episode) error {
	existing, found, err := service.episodes.FindByIDForUser(userID, episode.ID)
	if err != nil {
		return err
	}
	if !found {
		return ErrEpisodeNotFound
	}

	NormalizeEpisode(episode)
	if err := ValidateEpisode(episode); err != nil {
		return err
	}
	episode.UserID = userID
	episode.CreatedAt = existing.CreatedAt
	return service.episodes.Save(episode)
}

func (service *EpisodeService) DeleteForUser(userID uint, episodeID string) error {
	_, found, err := service.episodes.FindByIDForUser(userID, episodeID)
	if err != nil {
		return err
	}
	if !found {
		return ErrEpisodeNotFound
	}
	return service.episodes.DeleteByIDForUser(userID, episodeID)
}

// NormalizeEpisode applies field defaults once at the store boundary: nil
// sets become empty, free text is trimmed and the pain quality falls back to
// the other bucket. Downstream code never re-defaults.
func NormalizeEpisode(episode *models.Episode) {
	if episode.Zones == nil {
		episode.Zones = []string{}
	}
	if episode.Triggers == nil {
		episode.Triggers = []string{}
	}

	episode.Quality = strings.ToLower(strings.TrimSpace(episode.Quality))
	if !models.IsValidQuality(episode.Quality) {
		episode.Quality = models.QualityOther
	}

	trimmed := make([]string, 0, len(episode.Triggers))
	for _, trigger := range episode.Triggers {
		if value := strings.TrimSpace(trigger); value != "" {
			trimmed = append(trimmed, value)
		}
	}
	episode.Triggers = trimmed

	episode.Medication = strings.TrimSpace(episode.Medication)
	episode.Food = strings.TrimSpace(episode.Food)
	episode.Notes = strings.TrimSpace(episode.Notes)
}

func ValidateEpisode(episode *models.Episode) error {
	if episode.StartedAt.IsZero() {
		return ErrMissingStart
	}
	if episode.Intensity < 1 || episode.Intensity > 10 {
		return ErrInvalidIntensity
	}
	if episode.EndedAt != nil && episode.EndedAt.Before(episode.StartedAt) {
		return ErrEndBeforeStart
	}
	return nil
}

// EpisodeDuration reports the elapsed span of a closed episode; ok is false
// while the episode is still ongoing.
func EpisodeDuration(episode models.Episode) (time.Duration, bool) {
	if episode.EndedAt == nil {
		return 0, false
	}
	return episode.EndedAt.Sub(episode.StartedAt), true
}
