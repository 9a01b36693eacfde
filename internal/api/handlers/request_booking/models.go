package request_booking

import (
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	requestBooking "github.com/m04kA/SMC-StudioBooking/internal/usecase/request_booking"
)

// RequestBookingRequest HTTP request model
type RequestBookingRequest struct {
	Date            string `json:"date"`      // "2024-06-03" в зоне студии
	StartTime       string `json:"startTime"` // "14:00"
	DurationMinutes int    `json:"durationMinutes"`
	Notes           string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// Владелец бронирования берется из контекста вызывающего
func (r *RequestBookingRequest) ToUseCaseRequest(caller domain.Caller, loc *time.Location) (*requestBooking.Request, error) {
	start, err := handlers.ParseLocalDateTime(r.Date, r.StartTime, loc)
	if err != nil {
		return nil, err
	}

	return &requestBooking.Request{
		UserID:          caller.UserID,
		Email:           caller.Email,
		Start:           start,
		DurationMinutes: r.DurationMinutes,
		Notes:           r.Notes,
	}, nil
}
