package get_month_overview

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBooking/internal/service/bookings"
)

const (
	msgInvalidParams = "некорректные параметры year и month"
)

type Handler struct {
	service  BookingService
	location *time.Location
	now      func() time.Time
	logger   Logger
}

func NewHandler(service BookingService, location *time.Location, logger Logger) *Handler {
	return &Handler{
		service:  service,
		location: location,
		now:      time.Now,
		logger:   logger,
	}
}

// Handle GET /api/v1/admin/calendar/month
// Query params: year, month (опционально, по умолчанию текущий месяц)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	now := h.now().In(h.location)
	year, month := now.Year(), now.Month()

	if yearStr := r.URL.Query().Get("year"); yearStr != "" {
		parsed, err := strconv.Atoi(yearStr)
		if err != nil {
			h.logger.Warn("GET /admin/calendar/month - Invalid year: %q", yearStr)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		year = parsed
	}

	if monthStr := r.URL.Query().Get("month"); monthStr != "" {
		parsed, err := strconv.Atoi(monthStr)
		if err != nil {
			h.logger.Warn("GET /admin/calendar/month - Invalid month: %q", monthStr)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		month = time.Month(parsed)
	}

	result, err := h.service.GetMonthOverview(r.Context(), year, month)
	if err != nil {
		if errors.Is(err, bookings.ErrInvalidInput) {
			h.logger.Warn("GET /admin/calendar/month - Invalid parameters: year=%d, month=%d", year, month)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}

		h.logger.Error("GET /admin/calendar/month - Failed to get overview: year=%d, month=%d, error=%v",
			year, month, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/calendar/month - Overview retrieved successfully: year=%d, month=%d", year, month)
	handlers.RespondJSON(w, http.StatusOK, result)
}
