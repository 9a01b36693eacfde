package delete_booking_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers/delete_booking"
	"github.com/m04kA/SMC-StudioBooking/internal/service/bookings"
	"github.com/m04kA/SMC-StudioBooking/pkg/logger"
)

const bookingID = "5f0c6a8e-8f57-4a63-9d5a-2a4c1f1b7f10"

type mockService struct {
	mock.Mock
}

func (m *mockService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func serve(svc *mockService) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/admin/bookings/{bookingId}", delete_booking.NewHandler(svc, logger.NewNop()).Handle)

	req := httptest.NewRequest(http.MethodDelete, "/admin/bookings/"+bookingID, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Deleted(t *testing.T) {
	svc := &mockService{}
	defer svc.AssertExpectations(t)
	svc.On("Delete", mock.Anything, bookingID).Return(nil)

	rec := serve(svc)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not a uuid", fmt.Errorf("%w: id", bookings.ErrInvalidInput), http.StatusBadRequest},
		{"unknown booking", bookings.ErrBookingNotFound, http.StatusNotFound},
		{"database down", fmt.Errorf("%w: db", bookings.ErrInternal), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			svc.On("Delete", mock.Anything, bookingID).Return(tt.err)

			assert.Equal(t, tt.wantStatus, serve(svc).Code)
		})
	}
}
