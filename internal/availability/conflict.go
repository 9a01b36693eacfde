package availability

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

// CheckConflict проверяет, может ли интервал [start, end) быть занят новым или измененным бронированием
//
// Порядок проверок:
//  1. start < end, иначе ErrInvalidInterval
//  2. интервал внутри [open, close) дня начала, иначе ErrExceedsBusinessHours
//  3. нет пересечения с [b.start-buffer, b.end+buffer) ни одного живого бронирования,
//     кроме excludeID, иначе *ConflictError
//
// Интервалы полуоткрытые: при нулевом буфере бронирование, заканчивающееся в 13:00,
// не конфликтует с бронированием, начинающимся в 13:00.
func CheckConflict(proposed domain.Interval, bookings []*domain.Booking, rules Rules, excludeID string) error {
	if !proposed.IsValid() {
		return ErrInvalidInterval
	}

	if proposed.Start.Before(rules.OpenAt(proposed.Start)) || proposed.End.After(rules.CloseAt(proposed.Start)) {
		return ErrExceedsBusinessHours
	}

	if b := FindConflict(proposed, bookings, rules.Buffer, excludeID); b != nil {
		return newConflictError(b, rules.location())
	}

	return nil
}

// FindConflict возвращает первое живое бронирование, чья буферная зона пересекается с интервалом
func FindConflict(proposed domain.Interval, bookings []*domain.Booking, buffer time.Duration, excludeID string) *domain.Booking {
	for _, b := range bookings {
		if b == nil || !b.IsLive() {
			continue
		}
		if excludeID != "" && b.ID == excludeID {
			continue
		}

		// start < b.end+buffer && end > b.start-buffer
		if proposed.Overlaps(b.Interval().Expand(buffer)) {
			return b
		}
	}
	return nil
}

// Исходы проверки для метрик
const (
	OutcomeOK              = "ok"
	OutcomeConflict        = "conflict"
	OutcomeOutsideHours    = "outside_hours"
	OutcomeInvalidInterval = "invalid_interval"
	OutcomeInvalidSettings = "invalid_settings"
)

// Outcome возвращает метку исхода CheckConflict
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, ErrConflict):
		return OutcomeConflict
	case errors.Is(err, ErrExceedsBusinessHours):
		return OutcomeOutsideHours
	case errors.Is(err, ErrInvalidInterval):
		return OutcomeInvalidInterval
	default:
		return OutcomeInvalidSettings
	}
}

// LookupWindow возвращает диапазон, в котором нужно загрузить живые бронирования
// для проверки интервала: буфер плюс сутки с каждой стороны
func LookupWindow(proposed domain.Interval, rules Rules) (from, to time.Time) {
	margin := rules.Buffer + 24*time.Hour
	return proposed.Start.Add(-margin), proposed.End.Add(margin)
}
