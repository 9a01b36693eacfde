package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioBooking/internal/availability"
	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-StudioBooking/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	cache       CalendarCache
	location    *time.Location
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	cache CalendarCache,
	location *time.Location,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		cache:       cache,
		location:    location,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь видит только своё бронирование, администратор - любое
func (s *Service) GetByID(ctx context.Context, id string, caller domain.Caller) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for user=%s", id, caller.UserID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !caller.CanAccess(booking) {
		s.logger.Warn("GetByID: access denied for user=%s to booking id=%s", caller.UserID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched booking id=%s", id)
	return models.FromDomainBooking(booking, s.location, caller.Role), nil
}

// GetUserBookings получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%s, status=%v", req.UserID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%s", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%s", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings, s.location, domain.RoleUser), nil
}

// GetBookings получает бронирования с фильтрацией (для администратора)
func (s *Service) GetBookings(ctx context.Context, req *models.GetBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetBookings: from=%v, to=%v, status=%v, includeInactive=%t",
		req.From, req.To, req.Status, req.IncludeInactive)

	if req.From != nil && req.To != nil && !req.From.Before(*req.To) {
		s.logger.Warn("GetBookings: invalid period from=%s to=%s", req.From, req.To)
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetBookings: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("GetBookings: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetBookings: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings, s.location, domain.RoleAdmin), nil
}

// Decline отклоняет ожидающее бронирование (только администратор)
func (s *Service) Decline(ctx context.Context, id string) error {
	s.logger.Info("Decline: declining booking id=%s", id)

	booking, err := s.getBooking(ctx, "Decline", id)
	if err != nil {
		return err
	}

	if !booking.CanBeDeclined() {
		s.logger.Warn("Decline: booking id=%s cannot be declined, status=%s", id, booking.Status)
		return ErrCannotDecline
	}

	err = s.bookingRepo.UpdateStatus(ctx, id, domain.StatusDeclined, []domain.BookingStatus{domain.StatusPending})
	if err != nil {
		return s.mapUpdateError("Decline", id, err, ErrCannotDecline)
	}

	s.invalidateCache(ctx, "Decline")
	s.logger.Info("Decline: successfully declined booking id=%s", id)
	return nil
}

// Cancel отменяет бронирование
// Пользователь может отменить только своё бронирование, администратор - любое
func (s *Service) Cancel(ctx context.Context, id string, caller domain.Caller) error {
	s.logger.Info("Cancel: cancelling booking id=%s by user=%s", id, caller.UserID)

	booking, err := s.getBooking(ctx, "Cancel", id)
	if err != nil {
		return err
	}

	if !caller.CanAccess(booking) {
		s.logger.Warn("Cancel: access denied for user=%s to cancel booking id=%s", caller.UserID, id)
		return ErrAccessDenied
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%s cannot be cancelled, status=%s", id, booking.Status)
		return ErrCannotCancel
	}

	err = s.bookingRepo.UpdateStatus(ctx, id, domain.StatusCancelled, domain.LiveStatuses)
	if err != nil {
		return s.mapUpdateError("Cancel", id, err, ErrCannotCancel)
	}

	s.invalidateCache(ctx, "Cancel")
	s.logger.Info("Cancel: successfully cancelled booking id=%s", id)
	return nil
}

// Delete удаляет бронирование без возможности восстановления (только администратор)
func (s *Service) Delete(ctx context.Context, id string) error {
	s.logger.Info("Delete: deleting booking id=%s", id)

	if err := validateID(id); err != nil {
		return err
	}

	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Delete: booking id=%s not found", id)
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: repository error for booking id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.invalidateCache(ctx, "Delete")
	s.logger.Info("Delete: successfully deleted booking id=%s", id)
	return nil
}

// UpdateAdminNotes обновляет заметки администратора
func (s *Service) UpdateAdminNotes(ctx context.Context, id string, notes string) (*models.BookingResponse, error) {
	s.logger.Info("UpdateAdminNotes: booking id=%s", id)

	if utf8.RuneCountInString(notes) > domain.MaxAdminNotesLength {
		return nil, fmt.Errorf("%w: admin notes must not exceed %d characters", ErrInvalidInput, domain.MaxAdminNotesLength)
	}

	if err := validateID(id); err != nil {
		return nil, err
	}

	if err := s.bookingRepo.UpdateAdminNotes(ctx, id, notes); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateAdminNotes: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("UpdateAdminNotes: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateAdminNotes - repository error: %v", ErrInternal, err)
	}

	booking, err := s.getBooking(ctx, "UpdateAdminNotes", id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainBooking(booking, s.location, domain.RoleAdmin), nil
}

// GetMonthOverview возвращает счетчики бронирований по дням месяца
func (s *Service) GetMonthOverview(ctx context.Context, year int, month time.Month) (*models.MonthOverviewResponse, error) {
	s.logger.Info("GetMonthOverview: year=%d, month=%d", year, month)

	if month < time.January || month > time.December || year < 1970 || year > 9999 {
		return nil, fmt.Errorf("%w: invalid year or month", ErrInvalidInput)
	}

	from := time.Date(year, month, 1, 0, 0, 0, 0, s.location)
	to := from.AddDate(0, 1, 0)

	bookings, err := s.bookingRepo.List(ctx, domain.BookingsFilter{From: &from, To: &to})
	if err != nil {
		s.logger.Error("GetMonthOverview: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetMonthOverview - repository error: %v", ErrInternal, err)
	}

	days := availability.MonthOverview(year, month, bookings, s.location)
	return models.FromMonthOverview(year, month, days), nil
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, op string, id string) (*domain.Booking, error) {
	if err := validateID(id); err != nil {
		s.logger.Warn("%s: invalid booking id=%q", op, id)
		return nil, err
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	return booking, nil
}

// mapUpdateError переводит ошибку условного UPDATE в ошибку сервиса
// ErrStatusChanged означает, что статус изменился между чтением и записью
func (s *Service) mapUpdateError(op string, id string, err error, statusErr error) error {
	switch {
	case errors.Is(err, bookingRepo.ErrBookingNotFound):
		s.logger.Warn("%s: booking id=%s not found during update", op, id)
		return ErrBookingNotFound
	case errors.Is(err, bookingRepo.ErrStatusChanged):
		s.logger.Warn("%s: booking id=%s status changed concurrently", op, id)
		return statusErr
	default:
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
}

// invalidateCache сбрасывает кэш календаря, ошибка не прерывает операцию
func (s *Service) invalidateCache(ctx context.Context, op string) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("%s: failed to invalidate calendar cache: %v", op, err)
	}
}

func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: invalid booking id", ErrInvalidInput)
	}
	return nil
}
