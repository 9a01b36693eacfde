package approve_booking_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-StudioBooking/internal/availability"
	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

type mockBookingRepository struct {
	mock.Mock
}

func (m *mockBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	booking, _ := args.Get(0).(*domain.Booking)
	return booking, args.Error(1)
}

func (m *mockBookingRepository) ListActive(ctx context.Context, from, to time.Time) ([]*domain.Booking, error) {
	args := m.Called(ctx, from, to)
	bookings, _ := args.Get(0).([]*domain.Booking)
	return bookings, args.Error(1)
}

func (m *mockBookingRepository) Approve(ctx context.Context, id string, isExtra bool) error {
	return m.Called(ctx, id, isExtra).Error(0)
}

type mockSettings struct {
	mock.Mock
}

func (m *mockSettings) Rules(ctx context.Context, loc *time.Location) (availability.Rules, error) {
	args := m.Called(ctx, loc)
	rules, _ := args.Get(0).(availability.Rules)
	return rules, args.Error(1)
}

type mockUserClient struct {
	mock.Mock
}

func (m *mockUserClient) GetMemberWithGracefulDegradation(ctx context.Context, userID string) (*domain.Member, error) {
	args := m.Called(ctx, userID)
	member, _ := args.Get(0).(*domain.Member)
	return member, args.Error(1)
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Invalidate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type fakeTxManager struct {
	err error
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if f.err != nil {
		return f.err
	}
	return fn(ctx)
}

type fakeMetrics struct {
	results []string
}

func (f *fakeMetrics) ObserveAvailabilityCheck(_, result string) {
	f.results = append(f.results, result)
}
