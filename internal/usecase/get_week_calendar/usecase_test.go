package get_week_calendar_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBooking/internal/availability"
	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	calendarCache "github.com/m04kA/SMC-StudioBooking/internal/infra/cache/calendar"
	getWeekCalendar "github.com/m04kA/SMC-StudioBooking/internal/usecase/get_week_calendar"
	"github.com/m04kA/SMC-StudioBooking/pkg/logger"
	"github.com/m04kA/SMC-StudioBooking/pkg/ptr"
)

type mockBookingRepository struct {
	mock.Mock
}

func (m *mockBookingRepository) ListActive(ctx context.Context, from, to time.Time) ([]*domain.Booking, error) {
	args := m.Called(ctx, from, to)
	bookings, _ := args.Get(0).([]*domain.Booking)
	return bookings, args.Error(1)
}

type mockSettings struct {
	mock.Mock
}

func (m *mockSettings) Rules(ctx context.Context, loc *time.Location) (availability.Rules, error) {
	args := m.Called(ctx, loc)
	rules, _ := args.Get(0).(availability.Rules)
	return rules, args.Error(1)
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) GetWeek(ctx context.Context, role domain.Role, weekStart time.Time) (*availability.WeekGrid, string, error) {
	args := m.Called(ctx, role, weekStart)
	grid, _ := args.Get(0).(*availability.WeekGrid)
	return grid, args.String(1), args.Error(2)
}

func (m *mockCache) SetWeek(ctx context.Context, generation string, role domain.Role, weekStart time.Time, grid *availability.WeekGrid) error {
	return m.Called(ctx, generation, role, weekStart, grid).Error(0)
}

type fakeMetrics struct {
	results []string
}

func (f *fakeMetrics) ObserveCalendarCache(result string) {
	f.results = append(f.results, result)
}

type fixture struct {
	uc       *getWeekCalendar.UseCase
	repo     *mockBookingRepository
	settings *mockSettings
	cache    *mockCache
	metrics  *fakeMetrics
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		repo:     &mockBookingRepository{},
		settings: &mockSettings{},
		cache:    &mockCache{},
		metrics:  &fakeMetrics{},
	}
	t.Cleanup(func() {
		f.repo.AssertExpectations(t)
		f.settings.AssertExpectations(t)
		f.cache.AssertExpectations(t)
	})
	f.uc = getWeekCalendar.NewUseCase(f.repo, f.settings, f.cache, f.metrics, time.UTC, logger.NewNop())
	return f
}

// 2024-06-03 - понедельник, 2024-06-05 - среда той же недели
var (
	monday    = time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC)
	wednesday = time.Date(2024, time.June, 5, 15, 30, 0, 0, time.UTC)
)

func (f *fixture) expectBuild(t *testing.T, ctx context.Context, bookings []*domain.Booking) {
	t.Helper()
	rules, err := availability.NewRules(domain.DefaultSettings(), time.UTC)
	require.NoError(t, err)
	f.settings.On("Rules", ctx, time.UTC).Return(rules, nil)
	f.repo.On("ListActive", ctx, mock.Anything, mock.Anything).Return(bookings, nil)
}

func (f *fixture) expectStore(ctx context.Context, generation string, role domain.Role) {
	f.cache.On("SetWeek", ctx, generation, role, monday, mock.AnythingOfType("*availability.WeekGrid")).Return(nil)
}

func approved(start time.Time, hours int) *domain.Booking {
	return &domain.Booking{
		ID:        uuid.NewString(),
		UserID:    ptr.Ptr("u-1"),
		StartTime: start,
		EndTime:   start.Add(time.Duration(hours) * time.Hour),
		Status:    domain.StatusApproved,
	}
}

func TestExecute_CacheMissBuildsGrid(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	b := approved(monday.Add(14*time.Hour), 2)
	f.cache.On("GetWeek", ctx, domain.RoleUser, monday).Return(nil, "4", calendarCache.ErrCacheMiss)
	f.expectBuild(t, ctx, []*domain.Booking{b})
	f.expectStore(ctx, "4", domain.RoleUser)

	resp, err := f.uc.Execute(ctx, &getWeekCalendar.Request{Date: wednesday, Role: domain.RoleUser})

	require.NoError(t, err)
	assert.Equal(t, "2024-06-03", resp.WeekStart)
	assert.Equal(t, 23, resp.Week)
	require.Len(t, resp.Days, 7)
	assert.Equal(t, "2024-06-09", resp.Days[6])

	// 06:00 .. 23:30 с шагом 30 минут
	require.Len(t, resp.Rows, 36)
	row := resp.Rows[16]
	assert.Equal(t, "14:00", row.Time)
	assert.Equal(t, "blocked", row.Cells[0].State)
	assert.Equal(t, domain.LabelBooked, row.Cells[0].Label)
	assert.Empty(t, row.Cells[0].BookingIDs)
	assert.Equal(t, "available", row.Cells[1].State)

	assert.Equal(t, []string{"miss"}, f.metrics.results)
}

func TestExecute_AdminSeesBookingIDs(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	b := approved(monday.Add(14*time.Hour), 2)
	f.cache.On("GetWeek", ctx, domain.RoleAdmin, monday).Return(nil, "0", calendarCache.ErrCacheMiss)
	f.expectBuild(t, ctx, []*domain.Booking{b})
	f.expectStore(ctx, "0", domain.RoleAdmin)

	resp, err := f.uc.Execute(ctx, &getWeekCalendar.Request{Date: monday, Role: domain.RoleAdmin})

	require.NoError(t, err)
	cell := resp.Rows[16].Cells[0]
	assert.Equal(t, []string{b.ID}, cell.BookingIDs)
	assert.Equal(t, 1, cell.ApprovedCount)
}

func TestExecute_CacheHit(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	cached := &availability.WeekGrid{
		WeekStart: monday,
		Days:      []time.Time{monday},
		Rows: []availability.GridRow{{
			Time:  "06:00",
			Cells: []availability.GridCell{{Start: monday.Add(6 * time.Hour), State: availability.SlotTentative, Label: domain.LabelPending}},
		}},
	}
	f.cache.On("GetWeek", ctx, domain.RoleUser, monday).Return(cached, "2", nil)

	resp, err := f.uc.Execute(ctx, &getWeekCalendar.Request{Date: wednesday, Role: domain.RoleUser})

	require.NoError(t, err)
	assert.Equal(t, "tentative", resp.Rows[0].Cells[0].State)
	assert.Equal(t, []string{"hit"}, f.metrics.results)
	f.repo.AssertNotCalled(t, "ListActive", mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_CacheErrorFallsBackToDatabase(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.cache.On("GetWeek", ctx, domain.RoleUser, monday).Return(nil, "", errors.New("redis down"))
	f.expectBuild(t, ctx, []*domain.Booking{})

	resp, err := f.uc.Execute(ctx, &getWeekCalendar.Request{Date: wednesday, Role: domain.RoleUser})

	require.NoError(t, err)
	assert.Len(t, resp.Rows, 36)
	assert.Equal(t, []string{"error"}, f.metrics.results)

	// поколение неизвестно, сетку не сохраняем
	f.cache.AssertNotCalled(t, "SetWeek", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_StoresGridUnderReadGeneration(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.cache.On("GetWeek", ctx, domain.RoleUser, monday).Return(nil, "5", calendarCache.ErrCacheMiss)
	f.expectBuild(t, ctx, []*domain.Booking{approved(monday.Add(10*time.Hour), 1)})
	f.expectStore(ctx, "5", domain.RoleUser)

	_, err := f.uc.Execute(ctx, &getWeekCalendar.Request{Date: monday, Role: domain.RoleUser})

	require.NoError(t, err)
	f.cache.AssertCalled(t, "SetWeek", ctx, "5", domain.RoleUser, monday, mock.AnythingOfType("*availability.WeekGrid"))
}

func TestExecute_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid role", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.uc.Execute(ctx, &getWeekCalendar.Request{Date: monday, Role: "guest"})
		assert.ErrorIs(t, err, getWeekCalendar.ErrInvalidInput)
	})

	t.Run("missing date", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.uc.Execute(ctx, &getWeekCalendar.Request{Role: domain.RoleUser})
		assert.ErrorIs(t, err, getWeekCalendar.ErrInvalidInput)
	})

	t.Run("repository failure", func(t *testing.T) {
		f := newFixture(t)
		rules, err := availability.NewRules(domain.DefaultSettings(), time.UTC)
		require.NoError(t, err)
		f.cache.On("GetWeek", ctx, domain.RoleUser, monday).Return(nil, "0", calendarCache.ErrCacheMiss)
		f.settings.On("Rules", ctx, time.UTC).Return(rules, nil)
		f.repo.On("ListActive", ctx, mock.Anything, mock.Anything).Return(nil, errors.New("connection reset"))

		_, err = f.uc.Execute(ctx, &getWeekCalendar.Request{Date: monday, Role: domain.RoleUser})
		assert.ErrorIs(t, err, getWeekCalendar.ErrInternal)
	})
}
