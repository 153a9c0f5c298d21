package db

import (
	"context"

	"github.com/terraincognita07/dailybrew/internal/models"
	"gorm.io/gorm"
)

type IntakeRepository struct {
	database *gorm.DB
}

func NewIntakeRepository(database *gorm.DB) *IntakeRepository {
	return &IntakeRepository{database: database}
}

func (repo *IntakeRepository) SumSince(ctx context.Context, userID uint, start int64) (int, error) {
	var total int
	if err := repo.database.WithContext(ctx).
		Model(&models.Intake{}).
		Select("COALESCE(SUM(total_caffeine), 0)").
		Where("user_id = ? AND timestamp >= ?", userID, start).
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (repo *IntakeRepository) SumBetween(ctx context.Context, userID uint, start int64, end int64) (int, error) {
	var total int
	if err := repo.database.WithContext(ctx).
		Model(&models.Intake{}).
		Select("COALESCE(SUM(total_caffeine), 0)").
		Where("user_id = ? AND timestamp >= ? AND timestamp < ?", userID, start, end).
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (repo *IntakeRepository) SumByDrinkBetween(ctx context.Context, userID uint, start int64, end int64) ([]models.DrinkCaffeineAmount, error) {
	rows := make([]models.DrinkCaffeineAmount, 0)
	if err := repo.database.WithContext(ctx).
		Model(&models.Intake{}).
		Select("drink_id, SUM(total_caffeine) AS total_caffeine").
		Where("user_id = ? AND timestamp >= ? AND timestamp < ?", userID, start, end).
		Group("drink_id").
		Order("drink_id ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (repo *IntakeRepository) ListBetween(ctx context.Context, userID uint, start *int64, end *int64) ([]models.Intake, error) {
	query := repo.database.WithContext(ctx).Model(&models.Intake{}).Where("user_id = ?", userID)
	if start != nil {
		query = query.Where("timestamp >= ?", *start)
	}
	if end != nil {
		query = query.Where("timestamp < ?", *end)
	}

	intakes := make([]models.Intake, 0)
	if err := query.Order("timestamp ASC, id ASC").Find(&intakes).Error; err != nil {
		return nil, err
	}
	return intakes, nil
}

func (repo *IntakeRepository) ListByUser(ctx context.Context, userID uint) ([]models.Intake, error) {
	intakes := make([]models.Intake, 0)
	if err := repo.database.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC, id DESC").
		Find(&intakes).Error; err != nil {
		return nil, err
	}
	return intakes, nil
}

func (repo *IntakeRepository) FindByIDForUser(ctx context.Context, intakeID uint, userID uint) (models.Intake, bool, error) {
	var intake models.Intake
	result := repo.database.WithContext(ctx).
		Where("id = ? AND user_id = ?", intakeID, userID).
		Limit(1).
		Find(&intake)
	if result.Error != nil {
		return models.Intake{}, false, result.Error
	}
	return intake, result.RowsAffected > 0, nil
}

func (repo *IntakeRepository) Create(ctx context.Context, intake *models.Intake) error {
	return repo.database.WithContext(ctx).Create(intake).Error
}

func (repo *IntakeRepository) Delete(ctx context.Context, intake *models.Intake) error {
	return repo.database.WithContext(ctx).Delete(intake).Error
}
