package handlers

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

// ParseLocalDateTime собирает момент начала из даты "YYYY-MM-DD" и времени "HH:MM" в зоне студии
func ParseLocalDateTime(date, startTime string, loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation(domain.DateFormat, date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}

	ts, err := types.NewTimeStringFromString(startTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid start time %q: %w", startTime, err)
	}
	minutes, err := ts.Minutes()
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid start time %q: %w", startTime, err)
	}

	return time.Date(day.Year(), day.Month(), day.Day(), minutes/60, minutes%60, 0, 0, loc), nil
}

// ParseLocalDate разбирает дату "YYYY-MM-DD" в зоне студии
func ParseLocalDate(date string, loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation(domain.DateFormat, date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return day, nil
}
