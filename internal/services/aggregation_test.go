package services

import (
	"context"
	"errors"
	"testing"
	"time"
)

func mustLoadLocation(t *testing.T, name string) *time.Location {
	t.Helper()
	location, err := time.LoadLocation(name)
	if err != nil {
		t.Fatalf("load location %s: %v", name, err)
	}
	return location
}

func TestTotalForDayUsesLocalCalendarDay(t *testing.T) {
	location := mustLoadLocation(t, "America/New_York")
	store := &stubIntakeStore{}
	// 2026-03-10 03:30 UTC is still 2026-03-09 in New York.
	store.add(1, 1, 63, time.Date(2026, time.March, 10, 3, 30, 0, 0, time.UTC).Unix())
	store.add(1, 1, 95, time.Date(2026, time.March, 10, 15, 0, 0, 0, time.UTC).Unix())
	store.add(2, 1, 500, time.Date(2026, time.March, 10, 15, 0, 0, 0, time.UTC).Unix())

	service := NewAggregationService(store, location)
	day := time.Date(2026, time.March, 10, 0, 0, 0, 0, location)

	total, err := service.TotalForDay(context.Background(), 1, day)
	if err != nil {
		t.Fatalf("TotalForDay() unexpected error: %v", err)
	}
	if total != 95 {
		t.Fatalf("expected 95 for the local day, got %d", total)
	}

	previous, err := service.TotalForDay(context.Background(), 1, day.AddDate(0, 0, -1))
	if err != nil {
		t.Fatalf("TotalForDay() unexpected error: %v", err)
	}
	if previous != 63 {
		t.Fatalf("expected 63 for the previous local day, got %d", previous)
	}
}

func TestTotalForDayWrapsStoreErrors(t *testing.T) {
	service := NewAggregationService(&stubIntakeStore{err: errStubFailure}, time.UTC)

	_, err := service.TotalForDay(context.Background(), 1, time.Now())
	if !errors.Is(err, errStubFailure) {
		t.Fatalf("expected wrapped stub failure, got %v", err)
	}
}

func TestTotalSinceIncludesStartInstant(t *testing.T) {
	store := &stubIntakeStore{}
	start := time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC)
	store.add(1, 1, 10, start.Add(-time.Second).Unix())
	store.add(1, 1, 20, start.Unix())
	store.add(1, 1, 30, start.Add(time.Hour).Unix())

	total, err := NewAggregationService(store, time.UTC).TotalSince(context.Background(), 1, start)
	if err != nil {
		t.Fatalf("TotalSince() unexpected error: %v", err)
	}
	if total != 50 {
		t.Fatalf("expected 50, got %d", total)
	}
}

func TestWeeklySeriesZeroFillsOldestFirst(t *testing.T) {
	store := &stubIntakeStore{}
	store.add(1, 1, 63, time.Date(2026, time.March, 4, 9, 0, 0, 0, time.UTC).Unix())
	store.add(1, 2, 95, time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC).Unix())
	store.add(1, 1, 63, time.Date(2026, time.March, 10, 18, 0, 0, 0, time.UTC).Unix())
	store.add(1, 1, 999, time.Date(2026, time.March, 3, 23, 59, 59, 0, time.UTC).Unix())

	service := NewAggregationService(store, time.UTC)
	series, err := service.WeeklySeries(context.Background(), 1, time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC), nil)
	if err != nil {
		t.Fatalf("WeeklySeries() unexpected error: %v", err)
	}
	if len(series) != WeeklySeriesDays {
		t.Fatalf("expected %d points, got %d", WeeklySeriesDays, len(series))
	}

	want := []struct {
		date   string
		label  string
		amount int
	}{
		{"2026-03-04", "Wed", 63},
		{"2026-03-05", "Thu", 0},
		{"2026-03-06", "Fri", 0},
		{"2026-03-07", "Sat", 0},
		{"2026-03-08", "Sun", 0},
		{"2026-03-09", "Mon", 0},
		{"2026-03-10", "Tue", 158},
	}
	for index, expected := range want {
		point := series[index]
		if point.Date.Format(dayLayout) != expected.date || point.Label != expected.label || point.Amount != expected.amount {
			t.Fatalf("point %d: expected %+v, got date=%s label=%s amount=%d",
				index, expected, point.Date.Format(dayLayout), point.Label, point.Amount)
		}
	}
}

type fixedLabels map[time.Weekday]string

func (labels fixedLabels) ShortWeekday(weekday time.Weekday) string {
	return labels[weekday]
}

func TestWeeklySeriesUsesLabeler(t *testing.T) {
	service := NewAggregationService(&stubIntakeStore{}, time.UTC)
	series, err := service.WeeklySeries(context.Background(), 1, time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC), fixedLabels{time.Tuesday: "Вт"})
	if err != nil {
		t.Fatalf("WeeklySeries() unexpected error: %v", err)
	}
	if got := series[len(series)-1].Label; got != "Вт" {
		t.Fatalf("expected labeler output, got %q", got)
	}
}

func TestByDrinkForDayGroupsAmounts(t *testing.T) {
	store := &stubIntakeStore{}
	at := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC).Unix()
	store.add(1, 1, 63, at)
	store.add(1, 1, 63, at+60)
	store.add(1, 2, 95, at+120)
	store.add(1, 3, 63, at-86400)

	byDrink, err := NewAggregationService(store, time.UTC).ByDrinkForDay(context.Background(), 1, time.Unix(at, 0))
	if err != nil {
		t.Fatalf("ByDrinkForDay() unexpected error: %v", err)
	}
	if len(byDrink) != 2 || byDrink[1] != 126 || byDrink[2] != 95 {
		t.Fatalf("unexpected grouping: %#v", byDrink)
	}

	total, err := NewAggregationService(store, time.UTC).TotalForDay(context.Background(), 1, time.Unix(at, 0))
	if err != nil {
		t.Fatalf("TotalForDay() unexpected error: %v", err)
	}
	grouped := 0
	for _, amount := range byDrink {
		grouped += amount
	}
	if grouped != total {
		t.Fatalf("grouped sum %d does not match day total %d", grouped, total)
	}
}
