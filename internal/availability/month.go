package availability

import (
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

// DayOverview счетчики бронирований за день
type DayOverview struct {
	Date     time.Time
	Approved int
	Pending  int
	Blocks   int // подтвержденные бронирования без владельца
}

// MonthOverview считает бронирования по дням месяца в зоне loc
// Блокировки администратора учитываются только в Blocks
func MonthOverview(year int, month time.Month, bookings []*domain.Booking, loc *time.Location) []DayOverview {
	if loc == nil {
		loc = time.UTC
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	days := make([]DayOverview, daysInMonth)
	for i := range days {
		days[i].Date = first.AddDate(0, 0, i)
	}

	for _, b := range bookings {
		if b == nil || !b.IsLive() {
			continue
		}

		local := b.StartTime.In(loc)
		if local.Year() != year || local.Month() != month {
			continue
		}

		day := &days[local.Day()-1]
		switch {
		case b.IsBlock():
			day.Blocks++
		case b.Status == domain.StatusApproved:
			day.Approved++
		case b.Status == domain.StatusPending:
			day.Pending++
		}
	}

	return days
}
