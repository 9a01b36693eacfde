package create_booking_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBooking/internal/availability"
	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-StudioBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-StudioBooking/pkg/logger"
	"github.com/m04kA/SMC-StudioBooking/pkg/ptr"
	"github.com/m04kA/SMC-StudioBooking/pkg/txmanager"
)

type fixture struct {
	uc       *createBooking.UseCase
	repo     *mockBookingRepository
	settings *mockSettings
	cache    *mockCache
	tx       *fakeTxManager
	metrics  *fakeMetrics
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		repo:     &mockBookingRepository{},
		settings: &mockSettings{},
		cache:    &mockCache{},
		tx:       &fakeTxManager{},
		metrics:  &fakeMetrics{},
	}
	t.Cleanup(func() {
		f.repo.AssertExpectations(t)
		f.settings.AssertExpectations(t)
		f.cache.AssertExpectations(t)
	})
	f.uc = createBooking.NewUseCase(f.repo, f.settings, f.cache, f.tx, f.metrics, time.UTC, logger.NewNop())
	return f
}

func at(hour, minute int) time.Time {
	return time.Date(2024, time.June, 3, hour, minute, 0, 0, time.UTC)
}

func (f *fixture) expectLookup(t *testing.T, ctx context.Context, active []*domain.Booking) {
	t.Helper()
	rules, err := availability.NewRules(domain.DefaultSettings(), time.UTC)
	require.NoError(t, err)
	f.settings.On("Rules", ctx, time.UTC).Return(rules, nil)
	f.repo.On("ListActive", ctx, mock.Anything, mock.Anything).Return(active, nil)
}

func TestExecute_BlockOut(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.expectLookup(t, ctx, []*domain.Booking{})
	f.repo.On("Create", ctx, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.UserID == nil && b.Status == domain.StatusApproved && b.IsBlock() && b.DurationMinutes == 240
	})).Return(nil, nil)
	f.cache.On("Invalidate", ctx).Return(nil)

	resp, err := f.uc.Execute(ctx, &createBooking.Request{
		AdminID:         "admin",
		Start:           at(8, 0),
		DurationMinutes: 240,
		Notes:           "maintenance",
	})

	require.NoError(t, err)
	assert.True(t, resp.IsBlock)
	assert.Equal(t, "approved", resp.Status)
	assert.NotNil(t, resp.AdminNotes)
	assert.Equal(t, []string{availability.OutcomeOK}, f.metrics.results)
}

func TestExecute_WalkIn(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.expectLookup(t, ctx, []*domain.Booking{})
	f.repo.On("Create", ctx, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.UserID != nil && *b.UserID == "u-7" && !b.IsBlock() && b.Status == domain.StatusApproved
	})).Return(nil, nil)
	f.cache.On("Invalidate", ctx).Return(nil)

	resp, err := f.uc.Execute(ctx, &createBooking.Request{
		AdminID:         "admin",
		UserID:          ptr.Ptr("u-7"),
		UserEmail:       ptr.Ptr("walkin@example.com"),
		Start:           at(10, 0),
		DurationMinutes: 60,
	})

	require.NoError(t, err)
	assert.False(t, resp.IsBlock)
	assert.Equal(t, "walkin@example.com", *resp.UserEmail)
}

func TestExecute_PendingBookingAlsoBlocks(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	pending := &domain.Booking{
		ID:        uuid.NewString(),
		UserID:    ptr.Ptr("u-1"),
		StartTime: at(11, 0),
		EndTime:   at(12, 0),
		Status:    domain.StatusPending,
	}
	f.expectLookup(t, ctx, []*domain.Booking{pending})

	_, err := f.uc.Execute(ctx, &createBooking.Request{Start: at(12, 0), DurationMinutes: 60})

	assert.ErrorIs(t, err, availability.ErrConflict)
	assert.Equal(t, "Conflicts with pending booking at 11:00 on 2024-06-03", err.Error())
}

func TestExecute_BeforeOpening(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.expectLookup(t, ctx, []*domain.Booking{})

	_, err := f.uc.Execute(ctx, &createBooking.Request{Start: at(5, 0), DurationMinutes: 120})

	assert.ErrorIs(t, err, availability.ErrExceedsBusinessHours)
}

func TestExecute_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		req  *createBooking.Request
	}{
		{name: "no start", req: &createBooking.Request{DurationMinutes: 60}},
		{name: "zero duration", req: &createBooking.Request{Start: at(10, 0)}},
		{name: "longer than a day", req: &createBooking.Request{Start: at(10, 0), DurationMinutes: 1441}},
		{name: "empty user id", req: &createBooking.Request{Start: at(10, 0), DurationMinutes: 60, UserID: ptr.Ptr("")}},
		{name: "email without user", req: &createBooking.Request{Start: at(10, 0), DurationMinutes: 60, UserEmail: ptr.Ptr("a@b.c")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, createBooking.ErrInvalidInput)
		})
	}
}

func TestExecute_SerializationFailure(t *testing.T) {
	f := newFixture(t)
	f.tx.err = fmt.Errorf("%w: deadlock", txmanager.ErrSerialization)

	_, err := f.uc.Execute(context.Background(), &createBooking.Request{Start: at(10, 0), DurationMinutes: 60})

	assert.ErrorIs(t, err, createBooking.ErrRetry)
}
