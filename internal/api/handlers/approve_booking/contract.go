package approve_booking

import (
	"context"

	approveBooking "github.com/m04kA/SMC-StudioBooking/internal/usecase/approve_booking"
)

type ApproveBookingUseCase interface {
	AttemptApprove(ctx context.Context, bookingID string) (*approveBooking.Response, error)
	ApproveWithOverride(ctx context.Context, bookingID string) (*approveBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
