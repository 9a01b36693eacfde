package create_booking

import (
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-StudioBooking/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
// Без userId создается блокировка студии
type CreateBookingRequest struct {
	UserID          *string `json:"userId,omitempty"`
	UserEmail       *string `json:"userEmail,omitempty"`
	Date            string  `json:"date"`      // "2024-06-03"
	StartTime       string  `json:"startTime"` // "14:00"
	DurationMinutes int     `json:"durationMinutes"`
	Notes           string  `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(adminID string, loc *time.Location) (*createBooking.Request, error) {
	start, err := handlers.ParseLocalDateTime(r.Date, r.StartTime, loc)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		AdminID:         adminID,
		UserID:          r.UserID,
		UserEmail:       r.UserEmail,
		Start:           start,
		DurationMinutes: r.DurationMinutes,
		Notes:           r.Notes,
	}, nil
}
