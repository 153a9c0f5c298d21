package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) GetLimit(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	amount, err := handler.services.Limits.Active(c.UserContext(), user.ID)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"limit_amount": amount})
}

func (handler *Handler) SetLimit(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	payload := limitPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, "invalid_input")
	}

	limit, err := handler.services.Limits.Set(c.UserContext(), user.ID, payload.Amount)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(limitResponse{
		ID:          limit.ID,
		LimitAmount: limit.LimitAmount,
		CreatedAt:   limit.CreatedAt,
	})
}

func (handler *Handler) LimitHistory(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	limits, err := handler.services.Limits.History(c.UserContext(), user.ID)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(newLimitResponses(limits))
}
