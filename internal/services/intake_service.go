package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/terraincognita07/dailybrew/internal/models"
)

type IntakeRepository interface {
	ListByUser(ctx context.Context, userID uint) ([]models.Intake, error)
	FindByIDForUser(ctx context.Context, intakeID uint, userID uint) (models.Intake, bool, error)
	Create(ctx context.Context, intake *models.Intake) error
	Delete(ctx context.Context, intake *models.Intake) error
}

type DrinkFinder interface {
	FindByID(ctx context.Context, drinkID uint) (models.Drink, bool, error)
	List(ctx context.Context) ([]models.Drink, error)
}

// LogEntry is an intake joined with its drink name for display.
type LogEntry struct {
	ID        uint      `json:"id"`
	DrinkID   uint      `json:"drink_id"`
	DrinkName string    `json:"drink_name"`
	Servings  float64   `json:"servings"`
	Amount    int       `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}

type IntakeService struct {
	intakes IntakeRepository
	drinks  DrinkFinder
	now     func() time.Time
}

func NewIntakeService(intakes IntakeRepository, drinks DrinkFinder) *IntakeService {
	return &IntakeService{
		intakes: intakes,
		drinks:  drinks,
		now:     time.Now,
	}
}

// MaxIntakeCaffeine bounds the caffeine snapshot of a single intake so that
// daily sums stay far from integer overflow.
const MaxIntakeCaffeine = 100_000

// CaffeineForServings is the caffeine snapshot stored on an intake:
// caffeinePerServing × servings, rounded down. Products above
// MaxIntakeCaffeine are rejected with ErrInvalidServings.
func CaffeineForServings(caffeinePerServing int, servings float64) (int, error) {
	if !ValidServings(servings) {
		return 0, ErrInvalidServings
	}
	amount := math.Floor(float64(caffeinePerServing) * servings)
	if amount < 0 || amount > MaxIntakeCaffeine {
		return 0, ErrInvalidServings
	}
	return int(amount), nil
}

func ValidServings(servings float64) bool {
	return servings > 0 && !math.IsInf(servings, 0) && !math.IsNaN(servings)
}

// Record stores an intake of servings of the drink at the given instant, or
// now when at is zero.
func (service *IntakeService) Record(ctx context.Context, userID uint, drinkID uint, servings float64, at time.Time) (models.Intake, error) {
	if !ValidServings(servings) {
		return models.Intake{}, ErrInvalidServings
	}

	drink, found, err := service.drinks.FindByID(ctx, drinkID)
	if err != nil {
		return models.Intake{}, fmt.Errorf("load drink %d: %w", drinkID, err)
	}
	if !found {
		return models.Intake{}, ErrDrinkNotFound
	}

	amount, err := CaffeineForServings(drink.CaffeinePerServing, servings)
	if err != nil {
		return models.Intake{}, err
	}

	if at.IsZero() {
		at = service.now()
	}
	intake := models.Intake{
		UserID:        userID,
		DrinkID:       drink.ID,
		Servings:      servings,
		TotalCaffeine: amount,
		Timestamp:     at.Unix(),
	}
	if err := service.intakes.Create(ctx, &intake); err != nil {
		return models.Intake{}, fmt.Errorf("create intake: %w", err)
	}
	return intake, nil
}

func (service *IntakeService) Delete(ctx context.Context, userID uint, intakeID uint) error {
	intake, found, err := service.intakes.FindByIDForUser(ctx, intakeID, userID)
	if err != nil {
		return fmt.Errorf("load intake %d: %w", intakeID, err)
	}
	if !found {
		return ErrIntakeNotFound
	}
	if err := service.intakes.Delete(ctx, &intake); err != nil {
		return fmt.Errorf("delete intake %d: %w", intakeID, err)
	}
	return nil
}

func (service *IntakeService) Logs(ctx context.Context, userID uint) ([]LogEntry, error) {
	intakes, err := service.intakes.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list intakes: %w", err)
	}
	drinks, err := service.drinks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list drinks: %w", err)
	}
	return BuildLogEntries(intakes, drinks), nil
}

// BuildLogEntries joins intakes with drink names, newest record first.
func BuildLogEntries(intakes []models.Intake, drinks []models.Drink) []LogEntry {
	names := DrinkNames(drinks)
	entries := make([]LogEntry, 0, len(intakes))
	for _, intake := range intakes {
		name, ok := names[intake.DrinkID]
		if !ok {
			name = UnknownDrinkName
		}
		entries = append(entries, LogEntry{
			ID:        intake.ID,
			DrinkID:   intake.DrinkID,
			DrinkName: name,
			Servings:  intake.Servings,
			Amount:    intake.TotalCaffeine,
			Timestamp: intake.Time(),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ID > entries[j].ID
	})
	return entries
}
