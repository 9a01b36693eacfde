package request_booking_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers/request_booking"
	"github.com/m04kA/SMC-StudioBooking/internal/api/middleware"
	"github.com/m04kA/SMC-StudioBooking/internal/availability"
	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/internal/service/bookings/models"
	requestBooking "github.com/m04kA/SMC-StudioBooking/internal/usecase/request_booking"
	"github.com/m04kA/SMC-StudioBooking/pkg/logger"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *requestBooking.Request) (*models.BookingResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*models.BookingResponse)
	return resp, args.Error(1)
}

var caller = domain.Caller{UserID: "u-1", Email: "ann@example.com", Role: domain.RoleUser}

func serve(t *testing.T, uc *mockUseCase, body string, withCaller bool) *httptest.ResponseRecorder {
	t.Helper()
	loc, err := time.LoadLocation("Europe/London")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if withCaller {
		req = req.WithContext(middleware.WithCaller(req.Context(), caller))
	}
	rec := httptest.NewRecorder()
	request_booking.NewHandler(uc, loc, logger.NewNop()).Handle(rec, req)
	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp handlers.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.Error
}

func TestHandle_Created(t *testing.T) {
	uc := &mockUseCase{}
	defer uc.AssertExpectations(t)

	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *requestBooking.Request) bool {
		// 14:00 по Лондону летом = 13:00 UTC
		return req.UserID == "u-1" &&
			req.Email == "ann@example.com" &&
			req.DurationMinutes == 120 &&
			req.Start.UTC().Equal(time.Date(2024, time.June, 3, 13, 0, 0, 0, time.UTC))
	})).Return(&models.BookingResponse{ID: "b-1", Status: "pending"}, nil)

	rec := serve(t, uc, `{"date":"2024-06-03","startTime":"14:00","durationMinutes":120}`, true)

	assert.Equal(t, http.StatusCreated, rec.Code)
	var resp models.BookingResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "b-1", resp.ID)
}

func TestHandle_Errors(t *testing.T) {
	start := time.Date(2024, time.June, 3, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "conflict",
			err:        &availability.ConflictError{BookingID: "b-0", Status: domain.StatusApproved, Start: start},
			wantStatus: http.StatusConflict,
			wantMsg:    "Conflicts with approved booking at 14:00 on 2024-06-03",
		},
		{
			name:       "exceeds closing time",
			err:        fmt.Errorf("check: %w", availability.ErrExceedsBusinessHours),
			wantStatus: http.StatusUnprocessableEntity,
			wantMsg:    handlers.MsgExceedsBusinessHours,
		},
		{
			name:       "serialization failure",
			err:        fmt.Errorf("%w: tx", requestBooking.ErrRetry),
			wantStatus: http.StatusConflict,
			wantMsg:    handlers.MsgRetry,
		},
		{
			name:       "invalid duration",
			err:        fmt.Errorf("%w: duration", requestBooking.ErrInvalidInput),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "internal",
			err:        fmt.Errorf("%w: db", requestBooking.ErrInternal),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := serve(t, uc, `{"date":"2024-06-03","startTime":"14:00","durationMinutes":120}`, true)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, errorMessage(t, rec))
			}
		})
	}
}

func TestHandle_BadRequests(t *testing.T) {
	uc := &mockUseCase{}
	defer uc.AssertExpectations(t)

	assert.Equal(t, http.StatusBadRequest, serve(t, uc, `{"date":"03.06.2024","startTime":"14:00","durationMinutes":60}`, true).Code)
	assert.Equal(t, http.StatusBadRequest, serve(t, uc, `{"date":"2024-06-03","startTime":"2pm","durationMinutes":60}`, true).Code)
	assert.Equal(t, http.StatusBadRequest, serve(t, uc, `{"date":"2024-06-03","unknown":1}`, true).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(t, uc, `{}`, false).Code)
}
