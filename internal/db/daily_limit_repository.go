package db

import (
	"context"

	"github.com/terraincognita07/dailybrew/internal/models"
	"gorm.io/gorm"
)

type DailyLimitRepository struct {
	database *gorm.DB
}

func NewDailyLimitRepository(database *gorm.DB) *DailyLimitRepository {
	return &DailyLimitRepository{database: database}
}

// FindLatest returns the most recently created limit row for the user.
func (repo *DailyLimitRepository) FindLatest(ctx context.Context, userID uint) (models.DailyLimit, bool, error) {
	var limit models.DailyLimit
	result := repo.database.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(1).
		Find(&limit)
	if result.Error != nil {
		return models.DailyLimit{}, false, result.Error
	}
	return limit, result.RowsAffected > 0, nil
}

func (repo *DailyLimitRepository) ListByUser(ctx context.Context, userID uint) ([]models.DailyLimit, error) {
	limits := make([]models.DailyLimit, 0)
	if err := repo.database.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&limits).Error; err != nil {
		return nil, err
	}
	return limits, nil
}

func (repo *DailyLimitRepository) Create(ctx context.Context, limit *models.DailyLimit) error {
	return repo.database.WithContext(ctx).Create(limit).Error
}
