package request_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioBooking/internal/availability"
	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-StudioBooking/pkg/ptr"
	"github.com/m04kA/SMC-StudioBooking/pkg/txmanager"
)

const operation = "request_booking"

// UseCase use case для запроса бронирования пользователем
type UseCase struct {
	bookingRepo  BookingRepository
	settings     SettingsProvider
	cache        CalendarCache
	txManager    TransactionManager
	metrics      Metrics
	timeProvider TimeProvider
	location     *time.Location
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	settings SettingsProvider,
	cache CalendarCache,
	txManager TransactionManager,
	metrics Metrics,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		settings:     settings,
		cache:        cache,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		location:     location,
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute создает бронирование в статусе pending
// Проверка конфликта и вставка выполняются в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.BookingResponse, error) {
	uc.logger.Info("RequestBooking: user=%s, start=%s, duration=%d",
		req.UserID, req.Start.Format(time.RFC3339), req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RequestBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Бронирование не может начинаться в прошлом
	if err := validateStart(req.Start, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("RequestBooking: start=%s is in the past", req.Start.Format(time.RFC3339))
		return nil, err
	}

	proposed := domain.Interval{
		Start: req.Start,
		End:   req.Start.Add(time.Duration(req.DurationMinutes) * time.Minute),
	}

	var result *domain.Booking

	// 3. Проверка и запись в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Загружаем настройки студии
		rules, err := uc.settings.Rules(txCtx, uc.location)
		if err != nil {
			uc.logger.Error("RequestBooking: failed to load settings: %v", err)
			return fmt.Errorf("%w: failed to load settings: %w", ErrInternal, err)
		}

		// 3.2. Получаем живые бронирования вокруг интервала с блокировкой (FOR UPDATE)
		from, to := availability.LookupWindow(proposed, rules)
		bookings, err := uc.bookingRepo.ListActive(txCtx, from, to)
		if err != nil {
			uc.logger.Error("RequestBooking: failed to list bookings: %v", err)
			return fmt.Errorf("%w: failed to list bookings: %w", ErrInternal, err)
		}

		// 3.3. Проверяем конфликт
		err = availability.CheckConflict(proposed, bookings, rules, "")
		uc.metrics.ObserveAvailabilityCheck(operation, availability.Outcome(err))
		if err != nil {
			uc.logger.Warn("RequestBooking: check failed for user=%s: %v", req.UserID, err)
			return err
		}

		// 3.4. Создаем бронирование
		booking := &domain.Booking{
			ID:        uuid.NewString(),
			UserID:    ptr.Ptr(req.UserID),
			StartTime: proposed.Start,
			EndTime:   proposed.End,
			Status:    domain.StatusPending,
			UserNotes: req.Notes,
		}
		if req.Email != "" {
			booking.UserEmail = ptr.Ptr(req.Email)
		}
		booking.SyncDuration()

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("RequestBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerialization) {
			uc.logger.Warn("RequestBooking: serialization failure for user=%s: %v", req.UserID, err)
			return nil, fmt.Errorf("%w: %v", ErrRetry, err)
		}
		return nil, err
	}

	// 4. Сбрасываем кэш календаря
	if err := uc.cache.Invalidate(ctx); err != nil {
		uc.logger.Warn("RequestBooking: failed to invalidate calendar cache: %v", err)
	}

	uc.logger.Info("RequestBooking: successfully created booking id=%s", result.ID)
	return models.FromDomainBooking(result, uc.location, domain.RoleUser), nil
}
