package userservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/pkg/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, time.Second, logger.NewNop())
}

func TestClient_GetMember(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/users/u-1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"u-1","email":"ann@example.com","name":"Ann","membership":"subscribed"}`))
	})

	member, err := client.GetMember(context.Background(), "u-1")
	require.NoError(t, err)

	assert.Equal(t, "u-1", member.ID)
	assert.Equal(t, "ann@example.com", member.Email)
	assert.Equal(t, domain.MembershipSubscribed, member.Membership)
	assert.True(t, member.HasWeeklyQuota())
}

func TestClient_GetMember_UnknownMembershipIsStandard(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"u-1","membership":"gold"}`))
	})

	member, err := client.GetMember(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, domain.MembershipStandard, member.Membership)
	assert.False(t, member.HasWeeklyQuota())
}

func TestClient_GetMember_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "not found", status: http.StatusNotFound, wantErr: ErrUserNotFound},
		{name: "bad request", status: http.StatusBadRequest, wantErr: ErrInvalidResponse},
		{name: "server error", status: http.StatusInternalServerError, body: "boom", wantErr: ErrInvalidResponse},
		{name: "malformed body", status: http.StatusOK, body: "{", wantErr: ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.GetMember(context.Background(), "u-1")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestClient_GetMemberWithGracefulDegradation(t *testing.T) {
	t.Run("not found passes through", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		_, err := client.GetMemberWithGracefulDegradation(context.Background(), "u-1")
		assert.ErrorIs(t, err, ErrUserNotFound)
		assert.NotErrorIs(t, err, ErrServiceDegraded)
	})

	t.Run("failure degrades", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		_, err := client.GetMemberWithGracefulDegradation(context.Background(), "u-1")
		assert.ErrorIs(t, err, ErrServiceDegraded)
	})

	t.Run("unreachable degrades", func(t *testing.T) {
		client := NewClient("http://127.0.0.1:1", 100*time.Millisecond, logger.NewNop())

		_, err := client.GetMemberWithGracefulDegradation(context.Background(), "u-1")
		assert.ErrorIs(t, err, ErrServiceDegraded)
	})
}
