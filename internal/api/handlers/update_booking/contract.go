package update_booking

import (
	"context"

	"github.com/m04kA/SMC-StudioBooking/internal/service/bookings/models"
	extendBooking "github.com/m04kA/SMC-StudioBooking/internal/usecase/extend_booking"
)

type ExtendBookingUseCase interface {
	Execute(ctx context.Context, req *extendBooking.Request) (*models.BookingResponse, error)
}

type BookingService interface {
	UpdateAdminNotes(ctx context.Context, id string, notes string) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
