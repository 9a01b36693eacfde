package get_week_calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/availability"
	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	calendarCache "github.com/m04kA/SMC-StudioBooking/internal/infra/cache/calendar"
)

// Результаты обращения к кэшу для метрик
const (
	cacheHit   = "hit"
	cacheMiss  = "miss"
	cacheError = "error"
)

// UseCase use case получения недельной сетки календаря
type UseCase struct {
	bookingRepo BookingRepository
	settings    SettingsProvider
	cache       CalendarCache
	metrics     Metrics
	location    *time.Location
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	settings SettingsProvider,
	cache CalendarCache,
	metrics Metrics,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		settings:    settings,
		cache:       cache,
		metrics:     metrics,
		location:    location,
		logger:      logger,
	}
}

// Execute возвращает сетку недели, содержащей req.Date
// Ошибки кэша не прерывают запрос, сетка строится из БД
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.Role != domain.RoleUser && req.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, req.Role)
	}

	weekStart := availability.WeekStart(req.Date, uc.location)
	uc.logger.Info("GetWeekCalendar: week=%s, role=%s", weekStart.Format(domain.DateFormat), req.Role)

	// 2. Пробуем кэш
	grid, generation, err := uc.cache.GetWeek(ctx, req.Role, weekStart)
	switch {
	case err == nil:
		uc.metrics.ObserveCalendarCache(cacheHit)
		return fromWeekGrid(grid, uc.location), nil
	case errors.Is(err, calendarCache.ErrCacheMiss):
		uc.metrics.ObserveCalendarCache(cacheMiss)
	default:
		uc.metrics.ObserveCalendarCache(cacheError)
		uc.logger.Warn("GetWeekCalendar: cache read failed: %v", err)
	}

	// 3. Загружаем настройки студии
	rules, err := uc.settings.Rules(ctx, uc.location)
	if err != nil {
		uc.logger.Error("GetWeekCalendar: failed to load settings: %v", err)
		return nil, fmt.Errorf("%w: failed to load settings: %v", ErrInternal, err)
	}

	// 4. Живые бронирования, чьи буферные зоны могут задеть неделю
	from, to := availability.LookupWindow(domain.Interval{
		Start: weekStart,
		End:   availability.WeekEnd(weekStart, uc.location),
	}, rules)

	bookings, err := uc.bookingRepo.ListActive(ctx, from, to)
	if err != nil {
		uc.logger.Error("GetWeekCalendar: failed to list bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
	}

	// 5. Строим сетку и кладем в кэш под тем поколением, под которым читали
	grid = availability.BuildWeekGrid(weekStart, bookings, rules, req.Role)

	if generation != "" {
		if err := uc.cache.SetWeek(ctx, generation, req.Role, weekStart, grid); err != nil {
			uc.logger.Warn("GetWeekCalendar: cache write failed: %v", err)
		}
	}

	uc.logger.Info("GetWeekCalendar: built grid with %d rows from %d bookings", len(grid.Rows), len(bookings))
	return fromWeekGrid(grid, uc.location), nil
}
