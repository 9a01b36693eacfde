package create_booking

import (
	"fmt"
	"unicode/utf8"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

// validateRequest валидирует входные данные запроса
// Длительность администратора ограничена только сутками, часы работы проверяет движок
func validateRequest(req *Request) error {
	if req.Start.IsZero() {
		return fmt.Errorf("%w: start is required", ErrInvalidInput)
	}

	if req.DurationMinutes <= 0 || req.DurationMinutes > types.MinutesPerDay {
		return fmt.Errorf("%w: duration must be between 1 and %d minutes", ErrInvalidInput, types.MinutesPerDay)
	}

	if req.UserID != nil && *req.UserID == "" {
		return fmt.Errorf("%w: userID must not be empty", ErrInvalidInput)
	}

	if req.UserID == nil && req.UserEmail != nil {
		return fmt.Errorf("%w: userEmail requires userID", ErrInvalidInput)
	}

	if utf8.RuneCountInString(req.Notes) > domain.MaxUserNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxUserNotesLength)
	}

	return nil
}
