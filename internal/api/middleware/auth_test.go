package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
)

func captureCaller(got *domain.Caller) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, ok := GetCaller(r.Context())
		if ok {
			*got = caller
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		wantStatus int
		wantCaller domain.Caller
	}{
		{
			name:       "user by default",
			headers:    map[string]string{HeaderUserID: "u-1", HeaderUserEmail: "ann@example.com"},
			wantStatus: http.StatusOK,
			wantCaller: domain.Caller{UserID: "u-1", Email: "ann@example.com", Role: domain.RoleUser},
		},
		{
			name:       "admin role is case insensitive",
			headers:    map[string]string{HeaderUserID: "a-1", HeaderUserRole: "Admin"},
			wantStatus: http.StatusOK,
			wantCaller: domain.Caller{UserID: "a-1", Role: domain.RoleAdmin},
		},
		{
			name:       "missing user id",
			headers:    map[string]string{HeaderUserRole: "admin"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "unknown role",
			headers:    map[string]string{HeaderUserID: "u-1", HeaderUserRole: "owner"},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			var got domain.Caller

			Auth(captureCaller(&got)).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCaller, got)
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })
	handler := Auth(RequireAdmin(ok))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderUserID, "u-1")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req.Header.Set(HeaderUserRole, "admin")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	RequireAdmin(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
