package services

import (
	"context"
	"fmt"
	"time"

	"github.com/terraincognita07/dailybrew/internal/models"
)

type DailyLimitRepository interface {
	FindLatest(ctx context.Context, userID uint) (models.DailyLimit, bool, error)
	ListByUser(ctx context.Context, userID uint) ([]models.DailyLimit, error)
	Create(ctx context.Context, limit *models.DailyLimit) error
}

type LimitService struct {
	limits DailyLimitRepository
	now    func() time.Time
}

func NewLimitService(limits DailyLimitRepository) *LimitService {
	return &LimitService{
		limits: limits,
		now:    time.Now,
	}
}

// Active returns the amount of the newest limit row, or DefaultDailyLimit
// when the user has none.
func (service *LimitService) Active(ctx context.Context, userID uint) (int, error) {
	limit, found, err := service.limits.FindLatest(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("load active limit: %w", err)
	}
	if !found {
		return models.DefaultDailyLimit, nil
	}
	return limit.LimitAmount, nil
}

// Set appends a new limit row. Earlier rows stay as history.
func (service *LimitService) Set(ctx context.Context, userID uint, amount int) (models.DailyLimit, error) {
	if amount <= 0 {
		return models.DailyLimit{}, ErrInvalidLimit
	}
	limit := models.DailyLimit{
		UserID:      userID,
		LimitAmount: amount,
		CreatedAt:   service.now().UTC(),
	}
	if err := service.limits.Create(ctx, &limit); err != nil {
		return models.DailyLimit{}, fmt.Errorf("create daily limit: %w", err)
	}
	return limit, nil
}

func (service *LimitService) History(ctx context.Context, userID uint) ([]models.DailyLimit, error) {
	return service.limits.ListByUser(ctx, userID)
}
