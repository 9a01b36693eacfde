package extend_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/availability"
	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-StudioBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-StudioBooking/pkg/txmanager"
)

const operation = "extend_booking"

// UseCase use case изменения длительности бронирования администратором
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

// Execute пересчитывает окончание бронирования от прежнего начала
// Новый интервал проверяется на конфликт без учета самого бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.BookingResponse, error) {
	uc.logger.Info("ExtendBooking: booking id=%s, duration=%d", req.BookingID, req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ExtendBooking: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Booking

	// 2. Проверка и запись в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем бронирование с блокировкой
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("ExtendBooking: booking id=%s not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("ExtendBooking: failed to get booking id=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}

		if !booking.CanBeEdited() {
			uc.logger.Warn("ExtendBooking: booking id=%s has status=%s", req.BookingID, booking.Status)
			return ErrNotEditable
		}

		// 2.2. Загружаем настройки студии
		rules, err := uc.settings.Rules(txCtx, uc.location)
		if err != nil {
			uc.logger.Error("ExtendBooking: failed to load settings: %v", err)
			return fmt.Errorf("%w: failed to load settings: %w", ErrInternal, err)
		}

		// 2.3. Новый интервал от того же начала
		booking.SetDuration(req.DurationMinutes)
		proposed := booking.Interval()

		from, to := availability.LookupWindow(proposed, rules)
		bookings, err := uc.bookingRepo.ListActive(txCtx, from, to)
		if err != nil {
			uc.logger.Error("ExtendBooking: failed to list bookings: %v", err)
			return fmt.Errorf("%w: failed to list bookings: %w", ErrInternal, err)
		}

		// 2.4. Проверяем конфликт
		err = availability.CheckConflict(proposed, bookings, rules, booking.ID)
		uc.metrics.ObserveAvailabilityCheck(operation, availability.Outcome(err))
		if err != nil {
			uc.logger.Warn("ExtendBooking: check failed for booking id=%s: %v", req.BookingID, err)
			return err
		}

		// 2.5. Сохраняем
		err = uc.bookingRepo.UpdateSchedule(txCtx, booking.ID, booking.EndTime, booking.DurationMinutes, req.AdminNotes)
		if err != nil {
			switch {
			case errors.Is(err, bookingRepo.ErrBookingNotFound):
				return ErrBookingNotFound
			case errors.Is(err, bookingRepo.ErrStatusChanged):
				return ErrNotEditable
			}
			uc.logger.Error("ExtendBooking: failed to update booking id=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to update booking: %w", ErrInternal, err)
		}

		if req.AdminNotes != nil {
			booking.AdminNotes = *req.AdminNotes
		}
		result = booking
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerialization) {
			uc.logger.Warn("ExtendBooking: serialization failure for booking id=%s: %v", req.BookingID, err)
			return nil, fmt.Errorf("%w: %v", ErrRetry, err)
		}
		return nil, err
	}

	// 3. Сбрасываем кэш календаря
	if err := uc.cache.Invalidate(ctx); err != nil {
		uc.logger.Warn("ExtendBooking: failed to invalidate calendar cache: %v", err)
	}

	uc.logger.Info("ExtendBooking: booking id=%s now ends at %s", result.ID, result.EndTime.Format(time.RFC3339))
	return models.FromDomainBooking(result, uc.location, domain.RoleAdmin), nil
}
