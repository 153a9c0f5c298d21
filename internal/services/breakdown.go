package services

import (
	"context"
	"sort"
	"time"

	"github.com/terraincognita07/dailybrew/internal/models"
)

// UnknownDrinkName labels amounts whose drink no longer resolves.
const UnknownDrinkName = "Unknown Drink"

type BreakdownItem struct {
	DrinkID    uint    `json:"drink_id"`
	DrinkName  string  `json:"drink_name"`
	Amount     int     `json:"amount"`
	Percentage float64 `json:"percentage"`
}

type DailyBreakdown struct {
	Date        time.Time       `json:"date"`
	TotalAmount int             `json:"total_amount"`
	Items       []BreakdownItem `json:"items"`
}

// ProjectBreakdown annotates per-drink amounts with names and their share of
// the total, largest first with ties ordered by drink id. A zero total yields
// an empty list.
func ProjectBreakdown(byDrink map[uint]int, drinkNames map[uint]string) []BreakdownItem {
	total := 0
	for _, amount := range byDrink {
		total += amount
	}
	if total == 0 {
		return []BreakdownItem{}
	}

	items := make([]BreakdownItem, 0, len(byDrink))
	for drinkID, amount := range byDrink {
		name, ok := drinkNames[drinkID]
		if !ok {
			name = UnknownDrinkName
		}
		items = append(items, BreakdownItem{
			DrinkID:    drinkID,
			DrinkName:  name,
			Amount:     amount,
			Percentage: float64(amount) / float64(total),
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Amount == items[j].Amount {
			return items[i].DrinkID < items[j].DrinkID
		}
		return items[i].Amount > items[j].Amount
	})
	return items
}

func DrinkNames(drinks []models.Drink) map[uint]string {
	names := make(map[uint]string, len(drinks))
	for _, drink := range drinks {
		names[drink.ID] = drink.Name
	}
	return names
}

func BuildDailyBreakdown(day time.Time, byDrink map[uint]int, drinks []models.Drink) DailyBreakdown {
	items := ProjectBreakdown(byDrink, DrinkNames(drinks))
	total := 0
	for _, item := range items {
		total += item.Amount
	}
	return DailyBreakdown{
		Date:        day,
		TotalAmount: total,
		Items:       items,
	}
}

type DrinkLister interface {
	List(ctx context.Context) ([]models.Drink, error)
}

type HistoryService struct {
	aggregation *AggregationService
	drinks      DrinkLister
}

func NewHistoryService(aggregation *AggregationService, drinks DrinkLister) *HistoryService {
	return &HistoryService{
		aggregation: aggregation,
		drinks:      drinks,
	}
}

func (service *HistoryService) Weekly(ctx context.Context, userID uint, referenceDate time.Time, labels WeekdayLabeler) ([]DayAmount, error) {
	return service.aggregation.WeeklySeries(ctx, userID, referenceDate, labels)
}

func (service *HistoryService) Breakdown(ctx context.Context, userID uint, day time.Time) (DailyBreakdown, error) {
	drinks, err := service.drinks.List(ctx)
	if err != nil {
		return DailyBreakdown{}, err
	}
	byDrink, err := service.aggregation.ByDrinkForDay(ctx, userID, day)
	if err != nil {
		return DailyBreakdown{}, err
	}
	return BuildDailyBreakdown(DateAtLocation(day, service.aggregation.Location()), byDrink, drinks), nil
}
