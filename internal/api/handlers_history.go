package api

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/dailybrew/internal/services"
)

// requestDay reads ?date=YYYY-MM-DD, defaulting to today in the configured
// location.
func (handler *Handler) requestDay(c *fiber.Ctx) (time.Time, error) {
	return services.ParseDay(c.Query("date"), handler.now(), handler.location)
}

func (handler *Handler) GetStatus(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	day, err := handler.requestDay(c)
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	status, err := handler.services.Status.ForDay(c.UserContext(), user.ID, day)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(handler.newStatusResponse(day, status, currentLanguage(c)))
}

// GetTotalSince sums every intake at or after ?since=, an RFC 3339 instant.
func (handler *Handler) GetTotalSince(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	since, err := services.ParseInstant(c.Query("since"))
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	total, err := handler.services.Status.TotalSince(c.UserContext(), user.ID, since)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(totalSinceResponse{Since: since.Format(time.RFC3339), Amount: total})
}

func (handler *Handler) GetWeekly(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	day, err := handler.requestDay(c)
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	labels := handler.i18n.Weekdays(currentLanguage(c))
	series, err := handler.services.History.Weekly(c.UserContext(), user.ID, day, labels)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(newDayAmountResponses(series))
}

func (handler *Handler) GetBreakdown(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	day, err := handler.requestDay(c)
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	breakdown, err := handler.services.History.Breakdown(c.UserContext(), user.ID, day)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(newBreakdownResponse(breakdown))
}
