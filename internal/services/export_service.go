package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/terraincognita07/dailybrew/internal/models"
)

var (
	ErrExportFromDateInvalid = errors.New("export invalid from date")
	ErrExportToDateInvalid   = errors.New("export invalid to date")
	ErrExportRangeInvalid    = errors.New("export invalid range")
)

var ExportCSVHeaders = []string{
	"Date",
	"Time",
	"Drink",
	"Servings",
	"Caffeine (mg)",
}

type ExportIntakeReader interface {
	ListBetween(ctx context.Context, userID uint, start *int64, end *int64) ([]models.Intake, error)
}

type ExportService struct {
	intakes ExportIntakeReader
	drinks  DrinkLister
}

type ExportRow struct {
	Date      string
	Time      string
	DrinkName string
	Servings  float64
	Amount    int
}

func NewExportService(intakes ExportIntakeReader, drinks DrinkLister) *ExportService {
	return &ExportService{
		intakes: intakes,
		drinks:  drinks,
	}
}

// ParseExportRange reads optional inclusive day bounds. Either side may be
// empty; a to day before the from day is rejected.
func ParseExportRange(rawFrom string, rawTo string, location *time.Location) (*time.Time, *time.Time, error) {
	from, err := parseOptionalExportDay(rawFrom, location)
	if err != nil {
		return nil, nil, ErrExportFromDateInvalid
	}
	to, err := parseOptionalExportDay(rawTo, location)
	if err != nil {
		return nil, nil, ErrExportToDateInvalid
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, ErrExportRangeInvalid
	}
	return from, to, nil
}

func parseOptionalExportDay(raw string, location *time.Location) (*time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := time.ParseInLocation(dayLayout, trimmed, location)
	if err != nil {
		return nil, err
	}
	day := DateAtLocation(parsed, location)
	return &day, nil
}

// BuildRows lists the user's intakes between the optional days, oldest first,
// with timestamps rendered in location.
func (service *ExportService) BuildRows(ctx context.Context, userID uint, from *time.Time, to *time.Time, location *time.Location) ([]ExportRow, error) {
	var start, end *int64
	if from != nil {
		value, _ := UnixDayRange(*from, location)
		start = &value
	}
	if to != nil {
		_, value := UnixDayRange(*to, location)
		end = &value
	}

	intakes, err := service.intakes.ListBetween(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("list intakes for export: %w", err)
	}
	drinks, err := service.drinks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list drinks for export: %w", err)
	}
	names := DrinkNames(drinks)

	sort.SliceStable(intakes, func(i, j int) bool {
		if intakes[i].Timestamp != intakes[j].Timestamp {
			return intakes[i].Timestamp < intakes[j].Timestamp
		}
		return intakes[i].ID < intakes[j].ID
	})

	rows := make([]ExportRow, 0, len(intakes))
	for _, intake := range intakes {
		name, ok := names[intake.DrinkID]
		if !ok {
			name = UnknownDrinkName
		}
		local := intake.Time().In(location)
		rows = append(rows, ExportRow{
			Date:      local.Format(dayLayout),
			Time:      local.Format("15:04"),
			DrinkName: name,
			Servings:  intake.Servings,
			Amount:    intake.TotalCaffeine,
		})
	}
	return rows, nil
}

func (row ExportRow) Columns() []string {
	return []string{
		row.Date,
		row.Time,
		row.DrinkName,
		strconv.FormatFloat(row.Servings, 'f', -1, 64),
		strconv.Itoa(row.Amount),
	}
}
