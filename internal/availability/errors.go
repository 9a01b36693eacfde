package availability

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

var (
	// ErrInvalidInterval начало не раньше конца или время не задано
	ErrInvalidInterval = errors.New("availability: invalid interval")
	// ErrExceedsBusinessHours интервал выходит за часы работы студии
	ErrExceedsBusinessHours = errors.New("availability: booking exceeds business hours")
	// ErrConflict интервал пересекается с буферной зоной живого бронирования
	ErrConflict = errors.New("availability: booking conflict")
	// ErrInvalidSettings настройки не удалось нормализовать
	ErrInvalidSettings = errors.New("availability: invalid settings")
)

// ConflictError несет бронирование, с которым возник конфликт
// errors.Is(err, ErrConflict) == true
type ConflictError struct {
	BookingID string
	Status    domain.BookingStatus
	Start     time.Time // во временной зоне студии
}

func newConflictError(b *domain.Booking, loc *time.Location) *ConflictError {
	return &ConflictError{
		BookingID: b.ID,
		Status:    b.Status,
		Start:     b.StartTime.In(loc),
	}
}

// Error возвращает сообщение в виде "Conflicts with approved booking at 14:00 on 2024-06-01"
func (e *ConflictError) Error() string {
	return fmt.Sprintf("Conflicts with %s booking at %s on %s",
		e.Status, e.Start.Format(domain.TimeFormat), e.Start.Format(domain.DateFormat))
}

// Is позволяет сравнивать с ErrConflict через errors.Is
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
