package bookings_test

import (
	"context"

	"github.com/stretchr/testify/mock"

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

func (m *mockBookingRepository) GetByUserID(ctx context.Context, userID string, status *domain.BookingStatus) ([]*domain.Booking, error) {
	args := m.Called(ctx, userID, status)
	bookings, _ := args.Get(0).([]*domain.Booking)
	return bookings, args.Error(1)
}

func (m *mockBookingRepository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	args := m.Called(ctx, filter)
	bookings, _ := args.Get(0).([]*domain.Booking)
	return bookings, args.Error(1)
}

func (m *mockBookingRepository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus, from []domain.BookingStatus) error {
	return m.Called(ctx, id, status, from).Error(0)
}

func (m *mockBookingRepository) UpdateAdminNotes(ctx context.Context, id string, notes string) error {
	return m.Called(ctx, id, notes).Error(0)
}

func (m *mockBookingRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Invalidate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
