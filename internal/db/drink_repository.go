package db

import (
	"context"

	"github.com/terraincognita07/dailybrew/internal/models"
	"gorm.io/gorm"
)

type DrinkRepository struct {
	database *gorm.DB
}

func NewDrinkRepository(database *gorm.DB) *DrinkRepository {
	return &DrinkRepository{database: database}
}

func (repo *DrinkRepository) List(ctx context.Context) ([]models.Drink, error) {
	drinks := make([]models.Drink, 0)
	if err := repo.database.WithContext(ctx).Order("name ASC, id ASC").Find(&drinks).Error; err != nil {
		return nil, err
	}
	return drinks, nil
}

func (repo *DrinkRepository) FindByID(ctx context.Context, drinkID uint) (models.Drink, bool, error) {
	var drink models.Drink
	result := repo.database.WithContext(ctx).Limit(1).Find(&drink, drinkID)
	if result.Error != nil {
		return models.Drink{}, false, result.Error
	}
	return drink, result.RowsAffected > 0, nil
}

func (repo *DrinkRepository) Create(ctx context.Context, drink *models.Drink) error {
	return repo.database.WithContext(ctx).Create(drink).Error
}

func (repo *DrinkRepository) Save(ctx context.Context, drink *models.Drink) error {
	return repo.database.WithContext(ctx).Save(drink).Error
}

func (repo *DrinkRepository) Delete(ctx context.Context, drinkID uint) error {
	return repo.database.WithContext(ctx).Delete(&models.Drink{}, drinkID).Error
}

func (repo *DrinkRepository) CountIntakes(ctx context.Context, drinkID uint) (int64, error) {
	var count int64
	if err := repo.database.WithContext(ctx).
		Model(&models.Intake{}).
		Where("drink_id = ?", drinkID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
