package settings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/availability"
	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	settingsRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/settings"
	"github.com/m04kA/SMC-StudioBooking/internal/service/settings/models"
	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

// Service сервис настроек студии
type Service struct {
	settingsRepo SettingsRepository
	cache        CalendarCache
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(
	settingsRepo SettingsRepository,
	cache CalendarCache,
	logger Logger,
) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		cache:        cache,
		logger:       logger,
	}
}

// EnsureDefault создает строку настроек по умолчанию, если её нет
func (s *Service) EnsureDefault(ctx context.Context) error {
	if err := s.settingsRepo.EnsureDefault(ctx); err != nil {
		s.logger.Error("EnsureDefault: repository error: %v", err)
		return fmt.Errorf("%w: EnsureDefault - repository error: %v", ErrInternal, err)
	}
	return nil
}

// Get возвращает текущие настройки студии
// Если строка настроек отсутствует, возвращает значения по умолчанию
func (s *Service) Get(ctx context.Context) (*models.SettingsResponse, error) {
	settings, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return models.FromDomainSettings(settings), nil
}

// Update обновляет настройки студии (только администратор)
// Непереданные поля сохраняют текущие значения, результат валидируется целиком
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Update: updating studio settings")

	// 1. Получаем текущие настройки
	current, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	// 2. Применяем изменения
	updated := *current
	if req.OpenTime != nil {
		openTime, err := types.NewTimeStringFromString(*req.OpenTime)
		if err != nil {
			s.logger.Warn("Update: invalid openTime=%q", *req.OpenTime)
			return nil, fmt.Errorf("%w: openTime must be HH:MM", ErrInvalidInput)
		}
		updated.OpenTime = openTime
	}
	if req.CloseTime != nil {
		closeTime, err := types.NewTimeStringFromString(*req.CloseTime)
		if err != nil {
			s.logger.Warn("Update: invalid closeTime=%q", *req.CloseTime)
			return nil, fmt.Errorf("%w: closeTime must be HH:MM", ErrInvalidInput)
		}
		updated.CloseTime = closeTime
	}
	if req.BufferMinutes != nil {
		updated.BufferMinutes = *req.BufferMinutes
	}
	if req.SlotIntervalMinutes != nil {
		updated.SlotIntervalMinutes = *req.SlotIntervalMinutes
	}

	// 3. Валидируем результат
	if err := updated.Validate(); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 4. Сохраняем
	saved, err := s.settingsRepo.Upsert(ctx, &updated)
	if err != nil {
		s.logger.Error("Update: repository error: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	// 5. Сетки календаря зависят от часов работы и буфера
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("Update: failed to invalidate calendar cache: %v", err)
	}

	s.logger.Info("Update: settings saved open=%s close=%s buffer=%d slot=%d",
		saved.OpenTime, saved.CloseTime, saved.BufferMinutes, saved.SlotIntervalMinutes)
	return models.FromDomainSettings(saved), nil
}

// Rules возвращает нормализованные правила движка доступности для зоны loc
// Внутри транзакции читает настройки через неё
func (s *Service) Rules(ctx context.Context, loc *time.Location) (availability.Rules, error) {
	settings, err := s.load(ctx)
	if err != nil {
		return availability.Rules{}, err
	}

	rules, err := availability.NewRules(*settings, loc)
	if err != nil {
		s.logger.Error("Rules: stored settings are invalid: %v", err)
		return availability.Rules{}, fmt.Errorf("%w: %w", ErrInternal, err)
	}
	return rules, nil
}

func (s *Service) load(ctx context.Context) (*domain.Settings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
		s.logger.Warn("load: settings row missing, using defaults")
		defaults := domain.DefaultSettings()
		return &defaults, nil
	}
	if err != nil {
		s.logger.Error("load: repository error: %v", err)
		return nil, fmt.Errorf("%w: repository error: %w", ErrInternal, err)
	}
	return settings, nil
}
