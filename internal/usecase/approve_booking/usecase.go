package approve_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioBooking/internal/availability"
	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/booking"
	userClient "github.com/m04kA/SMC-StudioBooking/internal/integrations/userservice"
	"github.com/m04kA/SMC-StudioBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-StudioBooking/pkg/txmanager"
)

const operation = "approve_booking"

// UseCase use case подтверждения бронирования администратором
type UseCase struct {
	bookingRepo BookingRepository
	settings    SettingsProvider
	userClient  UserServiceClient
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
	userClient UserServiceClient,
	cache CalendarCache,
	txManager TransactionManager,
	metrics Metrics,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		settings:    settings,
		userClient:  userClient,
		cache:       cache,
		txManager:   txManager,
		metrics:     metrics,
		location:    location,
		logger:      logger,
	}
}

// AttemptApprove подтверждает бронирование, если не превышена недельная квота участника
// При превышении квоты ничего не меняет и возвращает NeedsOverrideConfirmation
func (uc *UseCase) AttemptApprove(ctx context.Context, bookingID string) (*Response, error) {
	return uc.approve(ctx, "AttemptApprove", bookingID, false)
}

// ApproveWithOverride подтверждает бронирование без проверки квоты
// Если квота была бы превышена, бронирование помечается как дополнительное (isExtra)
func (uc *UseCase) ApproveWithOverride(ctx context.Context, bookingID string) (*Response, error) {
	return uc.approve(ctx, "ApproveWithOverride", bookingID, true)
}

func (uc *UseCase) approve(ctx context.Context, op string, bookingID string, override bool) (*Response, error) {
	uc.logger.Info("%s: booking id=%s", op, bookingID)

	// 1. Валидация входных данных
	if _, err := uuid.Parse(bookingID); err != nil {
		uc.logger.Warn("%s: invalid booking id=%q", op, bookingID)
		return nil, fmt.Errorf("%w: invalid booking id", ErrInvalidInput)
	}

	// 2. Получаем бронирование, чтобы узнать владельца
	booking, err := uc.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("%s: booking id=%s not found", op, bookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("%s: failed to get booking id=%s: %v", op, bookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	if !booking.CanBeApproved() {
		uc.logger.Warn("%s: booking id=%s has status=%s", op, bookingID, booking.Status)
		return nil, ErrNotPending
	}

	// 3. Определяем, действует ли недельная квота (вне транзакции, сетевой вызов)
	quota, err := uc.resolveQuota(ctx, op, booking)
	if err != nil {
		return nil, err
	}

	var (
		reason  string
		isExtra bool
		result  *domain.Booking
	)

	// 4. Проверки и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Перечитываем бронирование с блокировкой
		current, err := uc.bookingRepo.GetByID(txCtx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}
		if !current.CanBeApproved() {
			return ErrNotPending
		}

		// 4.2. Загружаем настройки студии
		rules, err := uc.settings.Rules(txCtx, uc.location)
		if err != nil {
			uc.logger.Error("%s: failed to load settings: %v", op, err)
			return fmt.Errorf("%w: failed to load settings: %w", ErrInternal, err)
		}

		// 4.3. Живые бронирования вокруг интервала и за всю неделю (для квоты)
		proposed := current.Interval()
		from, to := availability.LookupWindow(proposed, rules)
		if weekStart := availability.WeekStart(current.StartTime, uc.location); weekStart.Before(from) {
			from = weekStart
		}
		if weekEnd := availability.WeekEnd(current.StartTime, uc.location); weekEnd.After(to) {
			to = weekEnd
		}

		bookings, err := uc.bookingRepo.ListActive(txCtx, from, to)
		if err != nil {
			uc.logger.Error("%s: failed to list bookings: %v", op, err)
			return fmt.Errorf("%w: failed to list bookings: %w", ErrInternal, err)
		}

		// 4.4. Повторная проверка конфликта, само бронирование исключается
		err = availability.CheckConflict(proposed, bookings, rules, current.ID)
		uc.metrics.ObserveAvailabilityCheck(operation, availability.Outcome(err))
		if err != nil {
			uc.logger.Warn("%s: check failed for booking id=%s: %v", op, bookingID, err)
			return err
		}

		// 4.5. Недельная квота
		if quota.applies && current.UserID != nil &&
			availability.HasQuotaBooking(*current.UserID, current.StartTime, bookings, uc.location, current.ID) {
			if !override {
				reason = quota.reason
				uc.logger.Info("%s: booking id=%s needs override: %s", op, bookingID, reason)
				return nil
			}
			isExtra = true
		}

		// 4.6. Подтверждаем
		if err := uc.bookingRepo.Approve(txCtx, bookingID, isExtra); err != nil {
			if errors.Is(err, bookingRepo.ErrStatusChanged) {
				return ErrNotPending
			}
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("%s: failed to approve booking id=%s: %v", op, bookingID, err)
			return fmt.Errorf("%w: failed to approve booking: %w", ErrInternal, err)
		}

		current.Status = domain.StatusApproved
		current.IsExtra = isExtra
		result = current
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerialization) {
			uc.logger.Warn("%s: serialization failure for booking id=%s: %v", op, bookingID, err)
			return nil, fmt.Errorf("%w: %v", ErrRetry, err)
		}
		return nil, err
	}

	if reason != "" {
		return &Response{NeedsOverrideConfirmation: true, Reason: reason}, nil
	}

	// 5. Сбрасываем кэш календаря
	if err := uc.cache.Invalidate(ctx); err != nil {
		uc.logger.Warn("%s: failed to invalidate calendar cache: %v", op, err)
	}

	uc.logger.Info("%s: booking id=%s approved, isExtra=%t", op, bookingID, isExtra)
	return &Response{
		Approved: true,
		Booking:  models.FromDomainBooking(result, uc.location, domain.RoleAdmin),
	}, nil
}

// quotaDecision действует ли квота и какой текст показать администратору
type quotaDecision struct {
	applies bool
	reason  string
}

// resolveQuota квота действует для subscribed участников
// Если UserService недоступен, участник считается subscribed, но администратор видит другую причину
func (uc *UseCase) resolveQuota(ctx context.Context, op string, booking *domain.Booking) (quotaDecision, error) {
	if booking.UserID == nil {
		return quotaDecision{}, nil
	}

	member, err := uc.userClient.GetMemberWithGracefulDegradation(ctx, *booking.UserID)
	switch {
	case err == nil:
		return quotaDecision{applies: member.HasWeeklyQuota(), reason: ReasonWeeklyQuota}, nil
	case errors.Is(err, userClient.ErrUserNotFound):
		uc.logger.Warn("%s: member user=%s not found", op, *booking.UserID)
		return quotaDecision{}, ErrMemberNotFound
	case errors.Is(err, userClient.ErrServiceDegraded):
		uc.logger.Warn("%s: membership of user=%s unknown: %v", op, *booking.UserID, err)
		return quotaDecision{applies: true, reason: ReasonMembershipUnknown}, nil
	default:
		uc.logger.Error("%s: failed to get member user=%s: %v", op, *booking.UserID, err)
		return quotaDecision{}, fmt.Errorf("%w: failed to get member: %v", ErrInternal, err)
	}
}
