package db

import (
	"context"
	"time"

	"github.com/terraincognita07/dailybrew/internal/models"
	"gorm.io/gorm"
)

const (
	DefaultUserName  = "User"
	DefaultUserEmail = "user@example.com"
)

type SeedOptions struct {
	PasswordHash string
	Now          time.Time
}

// SeedDefaults creates the default drinks, user and daily limit on a fresh
// database. It does nothing once any user exists. The returned flag reports
// whether rows were written.
func SeedDefaults(ctx context.Context, database *gorm.DB, options SeedOptions) (bool, error) {
	var users int64
	if err := database.WithContext(ctx).Model(&models.User{}).Count(&users).Error; err != nil {
		return false, err
	}
	if users > 0 {
		return false, nil
	}

	now := options.Now
	if now.IsZero() {
		now = time.Now()
	}
	now = now.UTC()

	err := database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		defaults := models.DefaultDrinks()
		drinks := make([]models.Drink, 0, len(defaults))
		for _, drink := range defaults {
			drinks = append(drinks, models.Drink{
				Name:               drink.Name,
				CaffeinePerServing: drink.CaffeinePerServing,
				ServingSize:        drink.ServingSize,
			})
		}
		if err := tx.Create(&drinks).Error; err != nil {
			return err
		}

		user := models.User{
			Name:         DefaultUserName,
			Email:        DefaultUserEmail,
			PasswordHash: options.PasswordHash,
			CreatedAt:    now,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		return tx.Create(&models.DailyLimit{
			UserID:      user.ID,
			LimitAmount: models.DefaultDailyLimit,
			CreatedAt:   now,
		}).Error
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
