package services

import (
	"context"
	"time"

	"github.com/terraincognita07/dailybrew/internal/events"
	"github.com/terraincognita07/dailybrew/internal/models"
)

const (
	TableIntakes     = "intakes"
	TableDrinks      = "drinks"
	TableDailyLimits = "daily_limits"
)

type IntakeLogReader interface {
	Logs(ctx context.Context, userID uint) ([]LogEntry, error)
}

// LiveService derives push streams of the read models. Every stream emits
// once on subscription and again after each write to a table it reads from.
type LiveService struct {
	bus         *events.Bus
	aggregation *AggregationService
	limits      ActiveLimitReader
	history     *HistoryService
	logs        IntakeLogReader
}

func NewLiveService(bus *events.Bus, aggregation *AggregationService, limits ActiveLimitReader, history *HistoryService, logs IntakeLogReader) *LiveService {
	return &LiveService{
		bus:         bus,
		aggregation: aggregation,
		limits:      limits,
		history:     history,
		logs:        logs,
	}
}

// WatchStatus pairs the day's total with the active limit. The two inputs
// are observed separately so a limit change does not re-run the sum.
func (service *LiveService) WatchStatus(ctx context.Context, userID uint, day time.Time) <-chan events.Snapshot[CaffeineStatus] {
	totals := events.Observe(ctx, service.bus, func(ctx context.Context) (int, error) {
		return service.aggregation.TotalForDay(ctx, userID, day)
	}, TableIntakes)
	limits := events.Observe(ctx, service.bus, func(ctx context.Context) (int, error) {
		return service.limits.Active(ctx, userID)
	}, TableDailyLimits)

	return events.CombineLatest(ctx, totals, limits, func(total events.Snapshot[int], limit events.Snapshot[int]) events.Snapshot[CaffeineStatus] {
		if total.Err != nil {
			return events.Snapshot[CaffeineStatus]{Err: total.Err}
		}
		if limit.Err != nil {
			return events.Snapshot[CaffeineStatus]{Err: limit.Err}
		}
		return events.Snapshot[CaffeineStatus]{Value: ProjectStatus(total.Value, limit.Value)}
	})
}

func (service *LiveService) WatchTotalSince(ctx context.Context, userID uint, start time.Time) <-chan events.Snapshot[int] {
	return events.Observe(ctx, service.bus, func(ctx context.Context) (int, error) {
		return service.aggregation.TotalSince(ctx, userID, start)
	}, TableIntakes)
}

func (service *LiveService) WatchWeekly(ctx context.Context, userID uint, referenceDate time.Time, labels WeekdayLabeler) <-chan events.Snapshot[[]DayAmount] {
	return events.Observe(ctx, service.bus, func(ctx context.Context) ([]DayAmount, error) {
		return service.history.Weekly(ctx, userID, referenceDate, labels)
	}, TableIntakes)
}

// WatchBreakdown combines the drink list with the day's per-drink sums, so a
// rename re-runs only the drink query and a new intake only the grouped sum.
func (service *LiveService) WatchBreakdown(ctx context.Context, userID uint, day time.Time) <-chan events.Snapshot[DailyBreakdown] {
	drinks := events.Observe(ctx, service.bus, func(ctx context.Context) ([]models.Drink, error) {
		return service.history.drinks.List(ctx)
	}, TableDrinks)
	byDrink := events.Observe(ctx, service.bus, func(ctx context.Context) (map[uint]int, error) {
		return service.aggregation.ByDrinkForDay(ctx, userID, day)
	}, TableIntakes)
	localDay := DateAtLocation(day, service.aggregation.Location())

	return events.CombineLatest(ctx, drinks, byDrink, func(drinks events.Snapshot[[]models.Drink], amounts events.Snapshot[map[uint]int]) events.Snapshot[DailyBreakdown] {
		if drinks.Err != nil {
			return events.Snapshot[DailyBreakdown]{Err: drinks.Err}
		}
		if amounts.Err != nil {
			return events.Snapshot[DailyBreakdown]{Err: amounts.Err}
		}
		return events.Snapshot[DailyBreakdown]{Value: BuildDailyBreakdown(localDay, amounts.Value, drinks.Value)}
	})
}

func (service *LiveService) WatchLogs(ctx context.Context, userID uint) <-chan events.Snapshot[[]LogEntry] {
	return events.Observe(ctx, service.bus, func(ctx context.Context) ([]LogEntry, error) {
		return service.logs.Logs(ctx, userID)
	}, TableIntakes, TableDrinks)
}
