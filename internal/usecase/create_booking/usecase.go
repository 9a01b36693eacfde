package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioBooking/internal/availability"
	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-StudioBooking/pkg/txmanager"
)

const operation = "create_booking"

// UseCase use case для создания бронирования администратором (walk-in или блокировка)
type UseCase struct {
	bookingRepo BookingRepository
	settings    SettingsProvider
	cache       CalendarCache
	txManager   TransactionManager
	metrics     Metrics
	location    *time.Location
	logger      Logger
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
		bookingRepo: bookingRepo,
		settings:    settings,
		cache:       cache,
		txManager:   txManager,
		metrics:     metrics,
		location:    location,
		logger:      logger,
	}
}

// Execute выполняет use case создания бронирования
// Бронирование сразу создается в статусе approved, квота не проверяется
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.BookingResponse, error) {
	uc.logger.Info("CreateBooking: admin=%s, block=%t, start=%s, duration=%d",
		req.AdminID, req.IsBlock(), req.Start.Format(time.RFC3339), req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	proposed := domain.Interval{
		Start: req.Start,
		End:   req.Start.Add(time.Duration(req.DurationMinutes) * time.Minute),
	}

	var result *domain.Booking

	// 2. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Загружаем настройки студии
		rules, err := uc.settings.Rules(txCtx, uc.location)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to load settings: %v", err)
			return fmt.Errorf("%w: failed to load settings: %w", ErrInternal, err)
		}

		// 2.2. Получаем живые бронирования вокруг интервала с блокировкой (FOR UPDATE)
		from, to := availability.LookupWindow(proposed, rules)
		bookings, err := uc.bookingRepo.ListActive(txCtx, from, to)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to list bookings: %v", err)
			return fmt.Errorf("%w: failed to list bookings: %w", ErrInternal, err)
		}

		// 2.3. Проверяем конфликт
		err = availability.CheckConflict(proposed, bookings, rules, "")
		uc.metrics.ObserveAvailabilityCheck(operation, availability.Outcome(err))
		if err != nil {
			uc.logger.Warn("CreateBooking: check failed: %v", err)
			return err
		}

		// 2.4. Создаем бронирование
		booking := &domain.Booking{
			ID:        uuid.NewString(),
			UserID:    req.UserID,
			UserEmail: req.UserEmail,
			StartTime: proposed.Start,
			EndTime:   proposed.End,
			Status:    domain.StatusApproved,
			UserNotes: req.Notes,
		}
		booking.SyncDuration()

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerialization) {
			uc.logger.Warn("CreateBooking: serialization failure: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrRetry, err)
		}
		return nil, err
	}

	// 3. Сбрасываем кэш календаря
	if err := uc.cache.Invalidate(ctx); err != nil {
		uc.logger.Warn("CreateBooking: failed to invalidate calendar cache: %v", err)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s, block=%t", result.ID, result.IsBlock())
	return models.FromDomainBooking(result, uc.location, domain.RoleAdmin), nil
}
