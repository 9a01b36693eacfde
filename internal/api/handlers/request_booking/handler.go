package request_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBooking/internal/api/middleware"
	requestBooking "github.com/m04kA/SMC-StudioBooking/internal/usecase/request_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректная дата или время начала, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidInput       = "некорректные данные бронирования"
	msgStartInPast        = "нельзя забронировать время в прошлом"
)

type Handler struct {
	useCase  RequestBookingUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase RequestBookingUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req RequestBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(caller, h.location)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		if handlers.RespondAvailabilityError(w, err) {
			h.logger.Warn("POST /bookings - Slot rejected: user_id=%s, error=%v", caller.UserID, err)
			return
		}

		switch {
		case errors.Is(err, requestBooking.ErrRetry):
			h.logger.Warn("POST /bookings - Concurrent update: user_id=%s", caller.UserID)
			handlers.RespondConflict(w, handlers.MsgRetry)

		case errors.Is(err, requestBooking.ErrStartInPast):
			h.logger.Warn("POST /bookings - Start in past: user_id=%s", caller.UserID)
			handlers.RespondBadRequest(w, msgStartInPast)

		case errors.Is(err, requestBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%s, error=%v", caller.UserID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to request booking: user_id=%s, error=%v", caller.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking requested successfully: booking_id=%s, user_id=%s",
		result.ID, caller.UserID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
