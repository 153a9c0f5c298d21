package services

import (
	"context"
	"fmt"
	"time"

	"github.com/terraincognita07/dailybrew/internal/models"
)

// WeeklySeriesDays is the length of the series returned by WeeklySeries.
const WeeklySeriesDays = 7

type IntakeAggregateReader interface {
	SumSince(ctx context.Context, userID uint, start int64) (int, error)
	SumBetween(ctx context.Context, userID uint, start int64, end int64) (int, error)
	SumByDrinkBetween(ctx context.Context, userID uint, start int64, end int64) ([]models.DrinkCaffeineAmount, error)
}

type WeekdayLabeler interface {
	ShortWeekday(weekday time.Weekday) string
}

type englishWeekdays struct{}

func (englishWeekdays) ShortWeekday(weekday time.Weekday) string {
	return weekday.String()[:3]
}

// DayAmount is one point of a weekly series.
type DayAmount struct {
	Date   time.Time `json:"date"`
	Label  string    `json:"label"`
	Amount int       `json:"amount"`
}

// AggregationService sums intake caffeine over local calendar windows. It
// never writes to the store.
type AggregationService struct {
	intakes  IntakeAggregateReader
	location *time.Location
}

func NewAggregationService(intakes IntakeAggregateReader, location *time.Location) *AggregationService {
	if location == nil {
		location = time.UTC
	}
	return &AggregationService{
		intakes:  intakes,
		location: location,
	}
}

func (service *AggregationService) Location() *time.Location {
	return service.location
}

func (service *AggregationService) TotalSince(ctx context.Context, userID uint, start time.Time) (int, error) {
	total, err := service.intakes.SumSince(ctx, userID, start.Unix())
	if err != nil {
		return 0, fmt.Errorf("sum caffeine since %s: %w", start.Format(time.RFC3339), err)
	}
	return total, nil
}

func (service *AggregationService) TotalForDay(ctx context.Context, userID uint, day time.Time) (int, error) {
	start, end := UnixDayRange(day, service.location)
	total, err := service.intakes.SumBetween(ctx, userID, start, end)
	if err != nil {
		return 0, fmt.Errorf("sum caffeine for %s: %w", DateAtLocation(day, service.location).Format(dayLayout), err)
	}
	return total, nil
}

// ByDrinkForDay groups the day's caffeine by drink. Drinks without intake in
// the window are absent from the result.
func (service *AggregationService) ByDrinkForDay(ctx context.Context, userID uint, day time.Time) (map[uint]int, error) {
	start, end := UnixDayRange(day, service.location)
	rows, err := service.intakes.SumByDrinkBetween(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("sum caffeine by drink for %s: %w", DateAtLocation(day, service.location).Format(dayLayout), err)
	}

	byDrink := make(map[uint]int, len(rows))
	for _, row := range rows {
		byDrink[row.DrinkID] += row.TotalCaffeine
	}
	return byDrink, nil
}

// WeeklySeries returns the daily totals of the seven days ending at
// referenceDate, oldest first. Days without intake are present with 0.
func (service *AggregationService) WeeklySeries(ctx context.Context, userID uint, referenceDate time.Time, labels WeekdayLabeler) ([]DayAmount, error) {
	if labels == nil {
		labels = englishWeekdays{}
	}

	reference := DateAtLocation(referenceDate, service.location)
	series := make([]DayAmount, 0, WeeklySeriesDays)
	for offset := WeeklySeriesDays - 1; offset >= 0; offset-- {
		day := reference.AddDate(0, 0, -offset)
		amount, err := service.TotalForDay(ctx, userID, day)
		if err != nil {
			return nil, err
		}
		series = append(series, DayAmount{
			Date:   day,
			Label:  labels.ShortWeekday(day.Weekday()),
			Amount: amount,
		})
	}
	return series, nil
}
