package services

import (
	"context"
	"errors"
	"sort"

	"github.com/terraincognita07/dailybrew/internal/models"
)

var errStubFailure = errors.New("stub failure")

type stubIntakeStore struct {
	intakes []models.Intake
	nextID  uint
	err     error
}

func (stub *stubIntakeStore) add(userID uint, drinkID uint, amount int, timestamp int64) {
	stub.nextID++
	stub.intakes = append(stub.intakes, models.Intake{
		ID:            stub.nextID,
		UserID:        userID,
		DrinkID:       drinkID,
		Servings:      1,
		TotalCaffeine: amount,
		Timestamp:     timestamp,
	})
}

func (stub *stubIntakeStore) matching(userID uint, start *int64, end *int64) []models.Intake {
	result := make([]models.Intake, 0)
	for _, intake := range stub.intakes {
		if intake.UserID != userID {
			continue
		}
		if start != nil && intake.Timestamp < *start {
			continue
		}
		if end != nil && intake.Timestamp >= *end {
			continue
		}
		result = append(result, intake)
	}
	return result
}

func (stub *stubIntakeStore) SumSince(_ context.Context, userID uint, start int64) (int, error) {
	if stub.err != nil {
		return 0, stub.err
	}
	total := 0
	for _, intake := range stub.matching(userID, &start, nil) {
		total += intake.TotalCaffeine
	}
	return total, nil
}

func (stub *stubIntakeStore) SumBetween(_ context.Context, userID uint, start int64, end int64) (int, error) {
	if stub.err != nil {
		return 0, stub.err
	}
	total := 0
	for _, intake := range stub.matching(userID, &start, &end) {
		total += intake.TotalCaffeine
	}
	return total, nil
}

func (stub *stubIntakeStore) SumByDrinkBetween(_ context.Context, userID uint, start int64, end int64) ([]models.DrinkCaffeineAmount, error) {
	if stub.err != nil {
		return nil, stub.err
	}
	byDrink := map[uint]int{}
	for _, intake := range stub.matching(userID, &start, &end) {
		byDrink[intake.DrinkID] += intake.TotalCaffeine
	}
	rows := make([]models.DrinkCaffeineAmount, 0, len(byDrink))
	for drinkID, total := range byDrink {
		rows = append(rows, models.DrinkCaffeineAmount{DrinkID: drinkID, TotalCaffeine: total})
	}
	return rows, nil
}

func (stub *stubIntakeStore) ListBetween(_ context.Context, userID uint, start *int64, end *int64) ([]models.Intake, error) {
	if stub.err != nil {
		return nil, stub.err
	}
	return stub.matching(userID, start, end), nil
}

func (stub *stubIntakeStore) ListByUser(_ context.Context, userID uint) ([]models.Intake, error) {
	if stub.err != nil {
		return nil, stub.err
	}
	return stub.matching(userID, nil, nil), nil
}

func (stub *stubIntakeStore) FindByIDForUser(_ context.Context, intakeID uint, userID uint) (models.Intake, bool, error) {
	for _, intake := range stub.intakes {
		if intake.ID == intakeID && intake.UserID == userID {
			return intake, true, nil
		}
	}
	return models.Intake{}, false, stub.err
}

func (stub *stubIntakeStore) Create(_ context.Context, intake *models.Intake) error {
	if stub.err != nil {
		return stub.err
	}
	stub.nextID++
	intake.ID = stub.nextID
	stub.intakes = append(stub.intakes, *intake)
	return nil
}

func (stub *stubIntakeStore) Delete(_ context.Context, intake *models.Intake) error {
	for index, existing := range stub.intakes {
		if existing.ID == intake.ID {
			stub.intakes = append(stub.intakes[:index], stub.intakes[index+1:]...)
			return nil
		}
	}
	return nil
}

type stubDrinkStore struct {
	drinks       []models.Drink
	intakeCounts map[uint]int64
	deleteErr    error
	listErr      error
	saved        []models.Drink
}

func newStubDrinkStore(drinks ...models.Drink) *stubDrinkStore {
	return &stubDrinkStore{drinks: drinks, intakeCounts: map[uint]int64{}}
}

func (stub *stubDrinkStore) List(context.Context) ([]models.Drink, error) {
	if stub.listErr != nil {
		return nil, stub.listErr
	}
	result := append([]models.Drink(nil), stub.drinks...)
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (stub *stubDrinkStore) FindByID(_ context.Context, drinkID uint) (models.Drink, bool, error) {
	for _, drink := range stub.drinks {
		if drink.ID == drinkID {
			return drink, true, nil
		}
	}
	return models.Drink{}, false, nil
}

func (stub *stubDrinkStore) Create(_ context.Context, drink *models.Drink) error {
	drink.ID = uint(len(stub.drinks) + 1)
	stub.drinks = append(stub.drinks, *drink)
	return nil
}

func (stub *stubDrinkStore) Save(_ context.Context, drink *models.Drink) error {
	stub.saved = append(stub.saved, *drink)
	for index := range stub.drinks {
		if stub.drinks[index].ID == drink.ID {
			stub.drinks[index] = *drink
		}
	}
	return nil
}

func (stub *stubDrinkStore) Delete(_ context.Context, drinkID uint) error {
	if stub.deleteErr != nil {
		return stub.deleteErr
	}
	for index, drink := range stub.drinks {
		if drink.ID == drinkID {
			stub.drinks = append(stub.drinks[:index], stub.drinks[index+1:]...)
			return nil
		}
	}
	return nil
}

func (stub *stubDrinkStore) CountIntakes(_ context.Context, drinkID uint) (int64, error) {
	return stub.intakeCounts[drinkID], nil
}

type stubLimitStore struct {
	limits []models.DailyLimit
	err    error
}

func (stub *stubLimitStore) FindLatest(_ context.Context, userID uint) (models.DailyLimit, bool, error) {
	if stub.err != nil {
		return models.DailyLimit{}, false, stub.err
	}
	for index := len(stub.limits) - 1; index >= 0; index-- {
		if stub.limits[index].UserID == userID {
			return stub.limits[index], true, nil
		}
	}
	return models.DailyLimit{}, false, nil
}

func (stub *stubLimitStore) ListByUser(_ context.Context, userID uint) ([]models.DailyLimit, error) {
	result := make([]models.DailyLimit, 0)
	for index := len(stub.limits) - 1; index >= 0; index-- {
		if stub.limits[index].UserID == userID {
			result = append(result, stub.limits[index])
		}
	}
	return result, stub.err
}

func (stub *stubLimitStore) Create(_ context.Context, limit *models.DailyLimit) error {
	if stub.err != nil {
		return stub.err
	}
	limit.ID = uint(len(stub.limits) + 1)
	stub.limits = append(stub.limits, *limit)
	return nil
}

type stubUserStore struct {
	users       []models.User
	updatedHash map[uint]string
	lookupErr   error
}

func (stub *stubUserStore) List(context.Context) ([]models.User, error) {
	if stub.lookupErr != nil {
		return nil, stub.lookupErr
	}
	return append([]models.User(nil), stub.users...), nil
}

func (stub *stubUserStore) FindByID(_ context.Context, userID uint) (models.User, bool, error) {
	for _, user := range stub.users {
		if user.ID == userID {
			return user, true, nil
		}
	}
	return models.User{}, false, stub.lookupErr
}

func (stub *stubUserStore) FindByNormalizedEmail(_ context.Context, email string) (models.User, bool, error) {
	if stub.lookupErr != nil {
		return models.User{}, false, stub.lookupErr
	}
	for _, user := range stub.users {
		if user.Email == email {
			return user, true, nil
		}
	}
	return models.User{}, false, nil
}

func (stub *stubUserStore) UpdatePasswordHash(_ context.Context, userID uint, passwordHash string) error {
	if stub.updatedHash == nil {
		stub.updatedHash = map[uint]string{}
	}
	stub.updatedHash[userID] = passwordHash
	return nil
}
