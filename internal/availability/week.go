package availability

import (
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

// DaysInWeek количество дней в календарной неделе
const DaysInWeek = 7

// WeekStart возвращает понедельник 00:00 недели, содержащей t (ISO, в зоне loc)
func WeekStart(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	// Monday=0 ... Sunday=6
	offset := (int(local.Weekday()) + 6) % DaysInWeek
	y, m, d := local.Date()
	return time.Date(y, m, d-offset, 0, 0, 0, 0, loc)
}

// WeekEnd возвращает понедельник 00:00 следующей недели
func WeekEnd(t time.Time, loc *time.Location) time.Time {
	return WeekStart(t, loc).AddDate(0, 0, DaysInWeek)
}

// ISOWeek возвращает ISO год и номер недели для t в зоне loc
func ISOWeek(t time.Time, loc *time.Location) (year, week int) {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).ISOWeek()
}

// HasQuotaBooking проверяет, есть ли у пользователя другое подтвержденное бронирование
// в ISO-неделе ref, которое расходует недельную квоту (без флага isExtra)
func HasQuotaBooking(userID string, ref time.Time, bookings []*domain.Booking, loc *time.Location, excludeID string) bool {
	return QuotaBooking(userID, ref, bookings, loc, excludeID) != nil
}

// QuotaBooking возвращает бронирование, которое уже расходует квоту недели, или nil
func QuotaBooking(userID string, ref time.Time, bookings []*domain.Booking, loc *time.Location, excludeID string) *domain.Booking {
	from := WeekStart(ref, loc)
	to := from.AddDate(0, 0, DaysInWeek)

	for _, b := range bookings {
		if b == nil || b.Status != domain.StatusApproved || b.IsExtra {
			continue
		}
		if excludeID != "" && b.ID == excludeID {
			continue
		}
		if !b.IsOwnedBy(userID) {
			continue
		}
		if !b.StartTime.Before(from) && b.StartTime.Before(to) {
			return b
		}
	}
	return nil
}
