package approve_booking

import (
	"github.com/m04kA/SMC-StudioBooking/internal/service/bookings/models"
	approveBooking "github.com/m04kA/SMC-StudioBooking/internal/usecase/approve_booking"
)

// ApproveBookingRequest HTTP request model
// override=true подтверждает бронирование сверх недельной квоты
type ApproveBookingRequest struct {
	Override bool `json:"override"`
}

// ApproveBookingResponse HTTP response model
type ApproveBookingResponse struct {
	Approved                  bool                    `json:"approved"`
	NeedsOverrideConfirmation bool                    `json:"needsOverrideConfirmation"`
	Reason                    string                  `json:"reason,omitempty"`
	Booking                   *models.BookingResponse `json:"booking,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *approveBooking.Response) *ApproveBookingResponse {
	return &ApproveBookingResponse{
		Approved:                  resp.Approved,
		NeedsOverrideConfirmation: resp.NeedsOverrideConfirmation,
		Reason:                    resp.Reason,
		Booking:                   resp.Booking,
	}
}
