package approve_booking

import (
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers"
	approveBooking "github.com/m04kA/SMC-StudioBooking/internal/usecase/approve_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgNotFound           = "бронирование не найдено"
	msgMemberNotFound     = "User not found"
	msgNotPending         = "подтвердить можно только ожидающее бронирование"
)

type Handler struct {
	useCase ApproveBookingUseCase
	logger  Logger
}

func NewHandler(useCase ApproveBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/bookings/{bookingId}/approve
// Тело опционально: {"override": true} после подтверждения администратором
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	var req ApproveBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /admin/bookings/{id}/approve - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	var (
		result *approveBooking.Response
		err    error
	)
	if req.Override {
		result, err = h.useCase.ApproveWithOverride(r.Context(), bookingID)
	} else {
		result, err = h.useCase.AttemptApprove(r.Context(), bookingID)
	}

	if err != nil {
		if handlers.RespondAvailabilityError(w, err) {
			h.logger.Warn("POST /admin/bookings/{id}/approve - Slot rejected: booking_id=%s, error=%v", bookingID, err)
			return
		}

		switch {
		case errors.Is(err, approveBooking.ErrInvalidInput):
			h.logger.Warn("POST /admin/bookings/{id}/approve - Invalid booking ID: %q", bookingID)
			handlers.RespondBadRequest(w, msgInvalidBookingID)

		case errors.Is(err, approveBooking.ErrBookingNotFound):
			h.logger.Warn("POST /admin/bookings/{id}/approve - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, approveBooking.ErrMemberNotFound):
			h.logger.Warn("POST /admin/bookings/{id}/approve - Member not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgMemberNotFound)

		case errors.Is(err, approveBooking.ErrNotPending):
			h.logger.Warn("POST /admin/bookings/{id}/approve - Not pending: booking_id=%s", bookingID)
			handlers.RespondConflict(w, msgNotPending)

		case errors.Is(err, approveBooking.ErrRetry):
			h.logger.Warn("POST /admin/bookings/{id}/approve - Concurrent update: booking_id=%s", bookingID)
			handlers.RespondConflict(w, handlers.MsgRetry)

		default:
			h.logger.Error("POST /admin/bookings/{id}/approve - Failed to approve booking: booking_id=%s, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if result.NeedsOverrideConfirmation {
		h.logger.Info("POST /admin/bookings/{id}/approve - Override confirmation required: booking_id=%s", bookingID)
	} else {
		h.logger.Info("POST /admin/bookings/{id}/approve - Booking approved successfully: booking_id=%s, override=%t",
			bookingID, req.Override)
	}
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
