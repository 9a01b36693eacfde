package extend_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/availability"
	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	ListActive(ctx context.Context, from, to time.Time) ([]*domain.Booking, error)
	UpdateSchedule(ctx context.Context, id string, end time.Time, durationMinutes int, adminNotes *string) error
}

// SettingsProvider возвращает правила движка доступности по текущим настройкам студии
type SettingsProvider interface {
	Rules(ctx context.Context, loc *time.Location) (availability.Rules, error)
}

// CalendarCache интерфейс инвалидации кэша календаря
type CalendarCache interface {
	Invalidate(ctx context.Context) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс метрик проверок доступности
type Metrics interface {
	ObserveAvailabilityCheck(operation, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
