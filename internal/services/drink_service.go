package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/terraincognita07/dailybrew/internal/models"
)

type DrinkInput struct {
	Name               string
	CaffeinePerServing int
	ServingSize        int
	Icon               string
}

type DrinkRepository interface {
	List(ctx context.Context) ([]models.Drink, error)
	FindByID(ctx context.Context, drinkID uint) (models.Drink, bool, error)
	Create(ctx context.Context, drink *models.Drink) error
	Save(ctx context.Context, drink *models.Drink) error
	Delete(ctx context.Context, drinkID uint) error
	CountIntakes(ctx context.Context, drinkID uint) (int64, error)
}

type DrinkService struct {
	drinks           DrinkRepository
	isReferenceError func(error) bool
}

// NewDrinkService builds the service. isReferenceError classifies store
// errors caused by the intake foreign key; nil disables the classification.
func NewDrinkService(drinks DrinkRepository, isReferenceError func(error) bool) *DrinkService {
	if isReferenceError == nil {
		isReferenceError = func(error) bool { return false }
	}
	return &DrinkService{
		drinks:           drinks,
		isReferenceError: isReferenceError,
	}
}

// MaxCaffeinePerServing matches the per-intake cap so a single serving of any
// drink can always be recorded.
const MaxCaffeinePerServing = MaxIntakeCaffeine

func NormalizeDrinkInput(input DrinkInput) (DrinkInput, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Icon = strings.TrimSpace(input.Icon)
	if input.Name == "" || input.CaffeinePerServing <= 0 || input.ServingSize <= 0 {
		return DrinkInput{}, ErrInvalidDrink
	}
	if input.CaffeinePerServing > MaxCaffeinePerServing {
		return DrinkInput{}, ErrInvalidDrink
	}
	return input, nil
}

func (service *DrinkService) List(ctx context.Context) ([]models.Drink, error) {
	return service.drinks.List(ctx)
}

func (service *DrinkService) Get(ctx context.Context, drinkID uint) (models.Drink, error) {
	drink, found, err := service.drinks.FindByID(ctx, drinkID)
	if err != nil {
		return models.Drink{}, fmt.Errorf("load drink %d: %w", drinkID, err)
	}
	if !found {
		return models.Drink{}, ErrDrinkNotFound
	}
	return drink, nil
}

func (service *DrinkService) Create(ctx context.Context, input DrinkInput) (models.Drink, error) {
	normalized, err := NormalizeDrinkInput(input)
	if err != nil {
		return models.Drink{}, err
	}
	drink := models.Drink{
		Name:               normalized.Name,
		CaffeinePerServing: normalized.CaffeinePerServing,
		ServingSize:        normalized.ServingSize,
		Icon:               normalized.Icon,
	}
	if err := service.drinks.Create(ctx, &drink); err != nil {
		return models.Drink{}, fmt.Errorf("create drink: %w", err)
	}
	return drink, nil
}

// Update changes the drink definition. Intakes already recorded keep the
// caffeine total computed when they were created.
func (service *DrinkService) Update(ctx context.Context, drinkID uint, input DrinkInput) (models.Drink, error) {
	normalized, err := NormalizeDrinkInput(input)
	if err != nil {
		return models.Drink{}, err
	}
	drink, err := service.Get(ctx, drinkID)
	if err != nil {
		return models.Drink{}, err
	}

	drink.Name = normalized.Name
	drink.CaffeinePerServing = normalized.CaffeinePerServing
	drink.ServingSize = normalized.ServingSize
	drink.Icon = normalized.Icon
	if err := service.drinks.Save(ctx, &drink); err != nil {
		return models.Drink{}, fmt.Errorf("update drink %d: %w", drinkID, err)
	}
	return drink, nil
}

func (service *DrinkService) Delete(ctx context.Context, drinkID uint) error {
	if _, err := service.Get(ctx, drinkID); err != nil {
		return err
	}

	references, err := service.drinks.CountIntakes(ctx, drinkID)
	if err != nil {
		return fmt.Errorf("count intakes for drink %d: %w", drinkID, err)
	}
	if references > 0 {
		return ErrDrinkInUse
	}

	if err := service.drinks.Delete(ctx, drinkID); err != nil {
		if service.isReferenceError(err) {
			return ErrDrinkInUse
		}
		return fmt.Errorf("delete drink %d: %w", drinkID, err)
	}
	return nil
}
