package handlers

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StudioBooking/internal/availability"
)

const (
	MsgInvalidInterval      = "Booking must end after it starts"
	MsgExceedsBusinessHours = "Booking exceeds closing time"
	MsgRetry                = "Booking was changed concurrently, please retry"
)

// RespondAvailabilityError отвечает на ошибки движка доступности
// Возвращает false, если err не относится к движку
func RespondAvailabilityError(w http.ResponseWriter, err error) bool {
	var conflict *availability.ConflictError

	switch {
	case errors.As(err, &conflict):
		RespondConflict(w, conflict.Error())
	case errors.Is(err, availability.ErrInvalidInterval):
		RespondBadRequest(w, MsgInvalidInterval)
	case errors.Is(err, availability.ErrExceedsBusinessHours):
		RespondError(w, http.StatusUnprocessableEntity, MsgExceedsBusinessHours)
	default:
		return false
	}
	return true
}
