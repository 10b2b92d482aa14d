package db

import (
	"time"

	"github.com/terraincognita07/cefalog/internal/models"
	"gorm.io/gorm"
)

type EpisodeRepository struct {
	database *gorm.DB
}

func NewEpisodeRepository(database *gorm.DB) *EpisodeRepository {
	return &EpisodeRepository{database: database}
}

// ListByUser returns the user's episodes ordered by start timestamp
// descending, the order history views expect.
func (repo *EpisodeRepository) ListByUser(userID uint) ([]models.Episode, error) {
	episodes := make([]models.Episode, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("started_at DESC, id DESC").
		Find(&episodes).Error; err != nil {
		return nil, err
	}
	return episodes, nil
}

func (repo *EpisodeRepository) ListByUserRange(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.Episode, error) {
	query := repo.database.Model(&models.Episode{}).Where("user_id = ?", userID)
	if fromStart != nil {
		query = query.Where("started_at >= ?", *fromStart)
	}
	if toEnd != nil {
		query = query.Where("started_at < ?", *toEnd)
	}

	episodes := make([]models.Episode, 0)
	if err := query.Order("started_at DESC, id DESC").Find(&episodes).Error; err != nil {
		return nil, err
	}
	return episodes, nil
}

func (repo *EpisodeRepository) FindByIDForUser(userID uint, episodeID string) (models.Episode, bool, error) {
	episode := models.Episode{}
	result := repo.database.
		Where("user_id = ? AND id = ?", userID, episodeID).
		Limit(1).
		Find(&episode)
	if result.Error != nil {
		return models.Episode{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Episode{}, false, nil
	}
	return episode, true, nil
}

// FindOpenForUser returns the newest episode without an end timestamp.
func (repo *EpisodeRepository) FindOpenForUser(userID uint) (models.Episode, bool, error) {
	episode := models.Episode{}
	result := repo.database.
		Where("user_id = ? AND ended_at IS NULL", userID).
		Order("started_at DESC, id DESC").
		Limit(1).
		Find(&episode)
	if result.Error != nil {
		return models.Episode{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Episode{}, false, nil
	}
	return episode, true, nil
}

func (repo *EpisodeRepository) Create(episode *models.Episode) error {
	return repo.database.Create(episode).Error
}

// Save replaces the full row; partial-field patches are not part of the
// storage contract.
func (repo *EpisodeRepository) Save(episode *models.Episode) error {
	return repo.database.Save(episode).Error
}

func (repo *EpisodeRepository) DeleteByIDForUser(userID uint, episodeID string) error {
	return repo.database.
		Where("user_id = ? AND id = ?", userID, episodeID).
		Delete(&models.Episode{}).Error
}
