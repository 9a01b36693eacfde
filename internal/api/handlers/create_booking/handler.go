package create_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBooking/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-StudioBooking/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректная дата или время начала, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidInput       = "некорректные данные бронирования"
)

type Handler struct {
	useCase  CreateBookingUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase CreateBookingUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle POST /api/v1/admin/bookings
// Создает подтвержденное бронирование за участника или блокировку студии
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.GetCaller(r.Context())

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(caller.UserID, h.location)
	if err != nil {
		h.logger.Warn("POST /admin/bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		if handlers.RespondAvailabilityError(w, err) {
			h.logger.Warn("POST /admin/bookings - Slot rejected: admin_id=%s, error=%v", caller.UserID, err)
			return
		}

		switch {
		case errors.Is(err, createBooking.ErrRetry):
			h.logger.Warn("POST /admin/bookings - Concurrent update: admin_id=%s", caller.UserID)
			handlers.RespondConflict(w, handlers.MsgRetry)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /admin/bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /admin/bookings - Failed to create booking: admin_id=%s, error=%v", caller.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/bookings - Booking created successfully: booking_id=%s, block=%t",
		result.ID, result.IsBlock)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
