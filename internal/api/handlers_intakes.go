package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) ListIntakes(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	entries, err := handler.services.Intakes.Logs(c.UserContext(), user.ID)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(entries)
}

// RecordIntake defaults to one serving at the current time.
func (handler *Handler) RecordIntake(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	payload := intakePayload{}
	if err := c.BodyParser(&payload); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, "invalid_input")
	}

	servings := 1.0
	if payload.Servings != nil {
		servings = *payload.Servings
	}
	at := handler.now()
	if payload.Timestamp != nil {
		at = *payload.Timestamp
	}

	intake, err := handler.services.Intakes.Record(c.UserContext(), user.ID, payload.DrinkID, servings, at)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":        intake.ID,
		"drink_id":  intake.DrinkID,
		"servings":  intake.Servings,
		"amount":    intake.TotalCaffeine,
		"timestamp": intake.Time().Format(time.RFC3339),
	})
}

func (handler *Handler) DeleteIntake(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	intakeID, ok := parseUintParam(c, "id")
	if !ok {
		return handler.apiError(c, fiber.StatusNotFound, "intake_not_found")
	}
	if err := handler.services.Intakes.Delete(c.UserContext(), user.ID, intakeID); err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
