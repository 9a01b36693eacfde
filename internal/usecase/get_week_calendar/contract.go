package get_week_calendar

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/availability"
	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListActive(ctx context.Context, from, to time.Time) ([]*domain.Booking, error)
}

// SettingsProvider возвращает правила движка доступности по текущим настройкам студии
type SettingsProvider interface {
	Rules(ctx context.Context, loc *time.Location) (availability.Rules, error)
}

// CalendarCache кэш отрисованных недельных сеток
//
// GetWeek возвращает поколение кэша, под которым читал; SetWeek пишет под ним же
type CalendarCache interface {
	GetWeek(ctx context.Context, role domain.Role, weekStart time.Time) (*availability.WeekGrid, string, error)
	SetWeek(ctx context.Context, generation string, role domain.Role, weekStart time.Time, grid *availability.WeekGrid) error
}

// Metrics интерфейс метрик кэша календаря
type Metrics interface {
	ObserveCalendarCache(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
