package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/dailybrew/internal/services"
)

func (handler *Handler) ListDrinks(c *fiber.Ctx) error {
	drinks, err := handler.services.Drinks.List(c.UserContext())
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(newDrinkResponses(drinks))
}

func (handler *Handler) CreateDrink(c *fiber.Ctx) error {
	payload := drinkPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, "invalid_input")
	}

	drink, err := handler.services.Drinks.Create(c.UserContext(), payload.input())
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(newDrinkResponse(drink))
}

func (handler *Handler) UpdateDrink(c *fiber.Ctx) error {
	drinkID, ok := parseUintParam(c, "id")
	if !ok {
		return handler.apiError(c, fiber.StatusNotFound, "drink_not_found")
	}
	payload := drinkPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, "invalid_input")
	}

	drink, err := handler.services.Drinks.Update(c.UserContext(), drinkID, payload.input())
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(newDrinkResponse(drink))
}

func (handler *Handler) DeleteDrink(c *fiber.Ctx) error {
	drinkID, ok := parseUintParam(c, "id")
	if !ok {
		return handler.apiError(c, fiber.StatusNotFound, "drink_not_found")
	}
	if err := handler.services.Drinks.Delete(c.UserContext(), drinkID); err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (payload drinkPayload) input() services.DrinkInput {
	return services.DrinkInput{
		Name:               payload.Name,
		CaffeinePerServing: payload.CaffeinePerServing,
		ServingSize:        payload.ServingSize,
		Icon:               payload.Icon,
	}
}
