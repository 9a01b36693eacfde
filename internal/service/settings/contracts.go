package settings

import (
	"context"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек студии
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.Settings, error)
	Upsert(ctx context.Context, settings *domain.Settings) (*domain.Settings, error)
	EnsureDefault(ctx context.Context) error
}

// CalendarCache интерфейс инвалидации кэша календаря
type CalendarCache interface {
	Invalidate(ctx context.Context) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
