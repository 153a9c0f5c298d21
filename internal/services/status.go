package services

import (
	"context"
	"time"
)

const (
	WarningFraction  = 0.7
	ExceededFraction = 1.0
)

type StatusLevel string

const (
	StatusLevelOK       StatusLevel = "ok"
	StatusLevelWarning  StatusLevel = "warning"
	StatusLevelExceeded StatusLevel = "exceeded"
)

type CaffeineStatus struct {
	CurrentAmount   int     `json:"current_amount"`
	LimitAmount     int     `json:"limit_amount"`
	FractionOfLimit float64 `json:"fraction_of_limit"`
}

// ProjectStatus combines a day's total with the active limit. The fraction is
// not clamped and is 0 for a non-positive limit.
func ProjectStatus(currentAmount int, limitAmount int) CaffeineStatus {
	fraction := 0.0
	if limitAmount > 0 {
		fraction = float64(currentAmount) / float64(limitAmount)
	}
	return CaffeineStatus{
		CurrentAmount:   currentAmount,
		LimitAmount:     limitAmount,
		FractionOfLimit: fraction,
	}
}

func (status CaffeineStatus) Level() StatusLevel {
	switch {
	case status.LimitAmount <= 0:
		return StatusLevelOK
	case status.FractionOfLimit >= ExceededFraction:
		return StatusLevelExceeded
	case status.FractionOfLimit >= WarningFraction:
		return StatusLevelWarning
	default:
		return StatusLevelOK
	}
}

type ActiveLimitReader interface {
	Active(ctx context.Context, userID uint) (int, error)
}

type StatusService struct {
	aggregation *AggregationService
	limits      ActiveLimitReader
}

func NewStatusService(aggregation *AggregationService, limits ActiveLimitReader) *StatusService {
	return &StatusService{
		aggregation: aggregation,
		limits:      limits,
	}
}

func (service *StatusService) ForDay(ctx context.Context, userID uint, day time.Time) (CaffeineStatus, error) {
	total, err := service.aggregation.TotalForDay(ctx, userID, day)
	if err != nil {
		return CaffeineStatus{}, err
	}
	limit, err := service.limits.Active(ctx, userID)
	if err != nil {
		return CaffeineStatus{}, err
	}
	return ProjectStatus(total, limit), nil
}

func (service *StatusService) TotalSince(ctx context.Context, userID uint, start time.Time) (int, error) {
	return service.aggregation.TotalSince(ctx, userID, start)
}
