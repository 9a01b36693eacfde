package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioBooking/pkg/psqlbuilder"
	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

const (
	tableSettings = "studio_settings"

	// singletonID настройки студии хранятся в единственной строке
	singletonID = 1
)

// DBExecutor интерфейс выполнения запросов
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий настроек студии
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get возвращает текущие настройки студии
func (r *Repository) Get(ctx context.Context) (*domain.Settings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// TIME отдаем строкой HH:MM, чтобы не зависеть от разбора типа драйвером
	query, args, err := psqlbuilder.Select(
		"to_char(open_time, 'HH24:MI')",
		"to_char(close_time, 'HH24:MI')",
		"buffer_minutes",
		"slot_interval_minutes",
		"updated_at",
	).
		From(tableSettings).
		Where(squirrel.Eq{"id": singletonID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var settings domain.Settings
	var updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&settings.OpenTime,
		&settings.CloseTime,
		&settings.BufferMinutes,
		&settings.SlotIntervalMinutes,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan settings: %w", ErrScanRow, err)
	}

	settings.UpdatedAt = updatedAt.Time

	return &settings, nil
}

// Upsert сохраняет настройки студии
func (r *Repository) Upsert(ctx context.Context, settings *domain.Settings) (*domain.Settings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableSettings).
		Columns("id", "open_time", "close_time", "buffer_minutes", "slot_interval_minutes").
		Values(
			singletonID,
			storedTime(settings.OpenTime),
			storedTime(settings.CloseTime),
			settings.BufferMinutes,
			settings.SlotIntervalMinutes,
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			open_time = EXCLUDED.open_time,
			close_time = EXCLUDED.close_time,
			buffer_minutes = EXCLUDED.buffer_minutes,
			slot_interval_minutes = EXCLUDED.slot_interval_minutes,
			updated_at = NOW()
		RETURNING updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %w", ErrExecQuery, err)
	}

	saved := *settings
	saved.UpdatedAt = updatedAt.Time

	return &saved, nil
}

// EnsureDefault создает строку настроек со значениями по умолчанию, если её нет
func (r *Repository) EnsureDefault(ctx context.Context) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	defaults := domain.DefaultSettings()

	query, args, err := psqlbuilder.Insert(tableSettings).
		Columns("id", "open_time", "close_time", "buffer_minutes", "slot_interval_minutes").
		Values(
			singletonID,
			storedTime(defaults.OpenTime),
			storedTime(defaults.CloseTime),
			defaults.BufferMinutes,
			defaults.SlotIntervalMinutes,
		).
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: EnsureDefault - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: EnsureDefault - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// storedTime полночь в конце дня хранится как 00:00
func storedTime(t types.TimeString) string {
	if t == "24:00" {
		return "00:00"
	}
	return t.String()
}
