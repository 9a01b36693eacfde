package update_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBooking/internal/service/bookings"
	"github.com/m04kA/SMC-StudioBooking/internal/service/bookings/models"
	extendBooking "github.com/m04kA/SMC-StudioBooking/internal/usecase/extend_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNothingToUpdate    = "не передано ни одного поля для обновления"
	msgInvalidInput       = "некорректные данные бронирования"
	msgNotFound           = "бронирование не найдено"
	msgNotEditable        = "изменить можно только ожидающее или подтвержденное бронирование"
)

type Handler struct {
	useCase ExtendBookingUseCase
	service BookingService
	logger  Logger
}

func NewHandler(useCase ExtendBookingUseCase, service BookingService, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/admin/bookings/{bookingId}
// С durationMinutes бронирование продлевается с проверкой конфликтов,
// иначе обновляются только заметки администратора
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	var req UpdateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/bookings/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.IsEmpty() {
		h.logger.Warn("PATCH /admin/bookings/{id} - Nothing to update: booking_id=%s", bookingID)
		handlers.RespondBadRequest(w, msgNothingToUpdate)
		return
	}

	var (
		result *models.BookingResponse
		err    error
	)
	if req.DurationMinutes != nil {
		result, err = h.useCase.Execute(r.Context(), &extendBooking.Request{
			BookingID:       bookingID,
			DurationMinutes: *req.DurationMinutes,
			AdminNotes:      req.AdminNotes,
		})
	} else {
		result, err = h.service.UpdateAdminNotes(r.Context(), bookingID, *req.AdminNotes)
	}

	if err != nil {
		if handlers.RespondAvailabilityError(w, err) {
			h.logger.Warn("PATCH /admin/bookings/{id} - Slot rejected: booking_id=%s, error=%v", bookingID, err)
			return
		}

		switch {
		case errors.Is(err, extendBooking.ErrInvalidInput), errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("PATCH /admin/bookings/{id} - Invalid input: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, extendBooking.ErrBookingNotFound), errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /admin/bookings/{id} - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, extendBooking.ErrNotEditable):
			h.logger.Warn("PATCH /admin/bookings/{id} - Not editable: booking_id=%s", bookingID)
			handlers.RespondConflict(w, msgNotEditable)

		case errors.Is(err, extendBooking.ErrRetry):
			h.logger.Warn("PATCH /admin/bookings/{id} - Concurrent update: booking_id=%s", bookingID)
			handlers.RespondConflict(w, handlers.MsgRetry)

		default:
			h.logger.Error("PATCH /admin/bookings/{id} - Failed to update booking: booking_id=%s, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/bookings/{id} - Booking updated successfully: booking_id=%s, duration=%d",
		bookingID, result.DurationMinutes)
	handlers.RespondJSON(w, http.StatusOK, result)
}
