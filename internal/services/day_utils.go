package services

import (
	"strings"
	"time"
)

const dayLayout = "2006-01-02"

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// DayRange returns the half-open local calendar day [start, end) containing value.
func DayRange(value time.Time, location *time.Location) (time.Time, time.Time) {
	start := DateAtLocation(value, location)
	return start, start.AddDate(0, 0, 1)
}

// UnixDayRange is DayRange expressed in the epoch seconds stored on intakes.
func UnixDayRange(value time.Time, location *time.Location) (int64, int64) {
	start, end := DayRange(value, location)
	return start.Unix(), end.Unix()
}

// ParseDay parses a YYYY-MM-DD value in location. An empty value yields the
// current day.
func ParseDay(raw string, now time.Time, location *time.Location) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return DateAtLocation(now, location), nil
	}
	if location == nil {
		location = time.UTC
	}
	parsed, err := time.ParseInLocation(dayLayout, trimmed, location)
	if err != nil {
		return time.Time{}, ErrInvalidDay
	}
	return DateAtLocation(parsed, location), nil
}

// ParseInstant reads an RFC 3339 instant such as 2026-03-10T06:00:00+02:00.
func ParseInstant(raw string) (time.Time, error) {
	parsed, err := time.Parse(time.RFC3339, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, ErrInvalidSince
	}
	return parsed, nil
}
