package get_month_overview

import (
	"context"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/service/bookings/models"
)

type BookingService interface {
	GetMonthOverview(ctx context.Context, year int, month time.Month) (*models.MonthOverviewResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
