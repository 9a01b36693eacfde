package get_bookings

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBooking/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
// from/to - даты YYYY-MM-DD в зоне студии, to включительно
func ToServiceRequest(fromStr, toStr, statusStr, userIDStr, includeInactiveStr string, loc *time.Location) (*models.GetBookingsRequest, error) {
	req := &models.GetBookingsRequest{}

	if fromStr != "" {
		from, err := handlers.ParseLocalDate(fromStr, loc)
		if err != nil {
			return nil, err
		}
		req.From = &from
	}

	if toStr != "" {
		to, err := handlers.ParseLocalDate(toStr, loc)
		if err != nil {
			return nil, err
		}
		to = to.AddDate(0, 0, 1)
		req.To = &to
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if userIDStr != "" {
		req.UserID = &userIDStr
	}

	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive %q: %w", includeInactiveStr, err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
