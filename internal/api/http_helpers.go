package api

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/terraincognita07/dailybrew/internal/services"
)

// apiError writes {"error": code, "message": localized text}.
func (handler *Handler) apiError(c *fiber.Ctx, status int, code string) error {
	return c.Status(status).JSON(fiber.Map{
		"error":   code,
		"message": handler.i18n.Translate(currentLanguage(c), "error."+code),
	})
}

type serviceErrorMapping struct {
	target error
	status int
	code   string
}

var serviceErrorMappings = []serviceErrorMapping{
	{services.ErrInvalidDay, fiber.StatusBadRequest, "invalid_day"},
	{services.ErrInvalidSince, fiber.StatusBadRequest, "invalid_since"},
	{services.ErrInvalidDrink, fiber.StatusBadRequest, "invalid_drink"},
	{services.ErrInvalidServings, fiber.StatusBadRequest, "invalid_servings"},
	{services.ErrInvalidLimit, fiber.StatusBadRequest, "invalid_limit"},
	{services.ErrExportFromDateInvalid, fiber.StatusBadRequest, "invalid_from_date"},
	{services.ErrExportToDateInvalid, fiber.StatusBadRequest, "invalid_to_date"},
	{services.ErrExportRangeInvalid, fiber.StatusBadRequest, "invalid_range"},
	{services.ErrInvalidCredentials, fiber.StatusUnauthorized, "invalid_credentials"},
	{services.ErrDrinkNotFound, fiber.StatusNotFound, "drink_not_found"},
	{services.ErrIntakeNotFound, fiber.StatusNotFound, "intake_not_found"},
	{services.ErrUserNotFound, fiber.StatusNotFound, "not_found"},
	{services.ErrDrinkInUse, fiber.StatusConflict, "drink_in_use"},
}

// respondServiceError maps service sentinels to statuses. Anything else is
// logged and reported as an internal error.
func (handler *Handler) respondServiceError(c *fiber.Ctx, err error) error {
	for _, mapping := range serviceErrorMappings {
		if errors.Is(err, mapping.target) {
			return handler.apiError(c, mapping.status, mapping.code)
		}
	}
	handler.log.Error("request failed",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	return handler.apiError(c, fiber.StatusInternalServerError, "internal")
}

func parseUintParam(c *fiber.Ctx, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || value == 0 {
		return 0, false
	}
	return uint(value), true
}
