package get_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBooking/internal/api/middleware"
	"github.com/m04kA/SMC-StudioBooking/internal/service/bookings"
)

const (
	msgInvalidBookingID = "ID бронирования студии должен быть UUID"
	msgSlotNotFound     = "бронирование студии не найдено"
	msgUnauthenticated  = "для просмотра бронирования нужно войти"
	msgNotOwner         = "бронирование может просматривать только его владелец или администратор студии"
)

// Handler отдает одно бронирование студии: владельцу или администратору
type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/{id} - Anonymous request for studio booking %s", bookingID)
		handlers.RespondUnauthorized(w, msgUnauthenticated)
		return
	}

	// Админские заметки сервис скрывает от не-администраторов
	booking, err := h.service.GetByID(r.Context(), bookingID, caller)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings/{id} - Malformed studio booking id: %q", bookingID)
			handlers.RespondBadRequest(w, msgInvalidBookingID)

		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{id} - No studio booking: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /bookings/{id} - %s tried to view someone else's slot: booking_id=%s, role=%s",
				caller.UserID, bookingID, caller.Role)
			handlers.RespondForbidden(w, msgNotOwner)

		default:
			h.logger.Error("GET /bookings/{id} - Failed to load studio booking: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/{id} - Studio slot %s %s-%s (%s) shown to %s %s",
		booking.Date, booking.StartTime, booking.EndTime, booking.Status, caller.Role, caller.UserID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
