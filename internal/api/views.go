package api

import (
	"time"

	"github.com/terraincognita07/dailybrew/internal/models"
	"github.com/terraincognita07/dailybrew/internal/services"
)

const responseDayLayout = "2006-01-02"

type userResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type drinkResponse struct {
	ID                 uint   `json:"id"`
	Name               string `json:"name"`
	CaffeinePerServing int    `json:"caffeine_per_serving"`
	ServingSize        int    `json:"serving_size"`
	Icon               string `json:"icon"`
}

type limitResponse struct {
	ID          uint      `json:"id"`
	LimitAmount int       `json:"limit_amount"`
	CreatedAt   time.Time `json:"created_at"`
}

type statusResponse struct {
	Date string `json:"date"`
	services.CaffeineStatus
	Level services.StatusLevel `json:"level"`
	Label string               `json:"label"`
}

type totalSinceResponse struct {
	Since  string `json:"since"`
	Amount int    `json:"amount"`
}

type dayAmountResponse struct {
	Date   string `json:"date"`
	Label  string `json:"label"`
	Amount int    `json:"amount"`
}

type breakdownResponse struct {
	Date        string                   `json:"date"`
	TotalAmount int                      `json:"total_amount"`
	Items       []services.BreakdownItem `json:"items"`
}

func newUserResponse(user *models.User) userResponse {
	return userResponse{ID: user.ID, Name: user.Name, Email: user.Email}
}

func newDrinkResponse(drink models.Drink) drinkResponse {
	return drinkResponse{
		ID:                 drink.ID,
		Name:               drink.Name,
		CaffeinePerServing: drink.CaffeinePerServing,
		ServingSize:        drink.ServingSize,
		Icon:               drink.Icon,
	}
}

func newDrinkResponses(drinks []models.Drink) []drinkResponse {
	result := make([]drinkResponse, 0, len(drinks))
	for _, drink := range drinks {
		result = append(result, newDrinkResponse(drink))
	}
	return result
}

func newLimitResponses(limits []models.DailyLimit) []limitResponse {
	result := make([]limitResponse, 0, len(limits))
	for _, limit := range limits {
		result = append(result, limitResponse{ID: limit.ID, LimitAmount: limit.LimitAmount, CreatedAt: limit.CreatedAt})
	}
	return result
}

func (handler *Handler) newStatusResponse(day time.Time, status services.CaffeineStatus, language string) statusResponse {
	level := status.Level()
	return statusResponse{
		Date:           day.Format(responseDayLayout),
		CaffeineStatus: status,
		Level:          level,
		Label:          handler.i18n.Translate(language, "status."+string(level)),
	}
}

func newDayAmountResponses(series []services.DayAmount) []dayAmountResponse {
	result := make([]dayAmountResponse, 0, len(series))
	for _, point := range series {
		result = append(result, dayAmountResponse{
			Date:   point.Date.Format(responseDayLayout),
			Label:  point.Label,
			Amount: point.Amount,
		})
	}
	return result
}

func newBreakdownResponse(breakdown services.DailyBreakdown) breakdownResponse {
	return breakdownResponse{
		Date:        breakdown.Date.Format(responseDayLayout),
		TotalAmount: breakdown.TotalAmount,
		Items:       breakdown.Items,
	}
}
