package extend_booking

import (
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if _, err := uuid.Parse(req.BookingID); err != nil {
		return fmt.Errorf("%w: invalid booking id", ErrInvalidInput)
	}

	if req.DurationMinutes <= 0 || req.DurationMinutes > types.MinutesPerDay {
		return fmt.Errorf("%w: duration must be between 1 and %d minutes", ErrInvalidInput, types.MinutesPerDay)
	}

	if req.AdminNotes != nil && utf8.RuneCountInString(*req.AdminNotes) > domain.MaxAdminNotesLength {
		return fmt.Errorf("%w: admin notes must not exceed %d characters", ErrInvalidInput, domain.MaxAdminNotesLength)
	}

	return nil
}
