package get_week_calendar

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBooking/internal/api/middleware"
	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	getWeekCalendar "github.com/m04kA/SMC-StudioBooking/internal/usecase/get_week_calendar"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	useCase  WeekCalendarUseCase
	location *time.Location
	now      func() time.Time
	logger   Logger
}

func NewHandler(useCase WeekCalendarUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		now:      time.Now,
		logger:   logger,
	}
}

// Handle GET /api/v1/calendar/week
// Query params: date (опционально, по умолчанию текущая неделя)
// Вид сетки зависит от роли вызывающего
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		h.logger.Warn("GET /calendar/week - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	date := h.now().In(h.location)
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		parsed, err := handlers.ParseLocalDate(dateStr, h.location)
		if err != nil {
			h.logger.Warn("GET /calendar/week - Invalid date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		date = parsed
	}

	result, err := h.useCase.Execute(r.Context(), &getWeekCalendar.Request{Date: date, Role: caller.Role})
	if err != nil {
		if errors.Is(err, getWeekCalendar.ErrInvalidInput) {
			h.logger.Warn("GET /calendar/week - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}

		h.logger.Error("GET /calendar/week - Failed to build calendar: date=%s, error=%v",
			date.Format(domain.DateFormat), err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /calendar/week - Calendar retrieved successfully: week_start=%s, role=%s",
		result.WeekStart, caller.Role)
	handlers.RespondJSON(w, http.StatusOK, result)
}
