package handler

import (
	"go-wallet-api/service"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAuthMiddleware(t *testing.T) {
	auth := service.NewAuthService("test-secret", time.Hour)
	middleware := AuthMiddleware(auth)

	var seenUserID int
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUserID, _ = r.Context().Value(UserIDKey).(int)
		w.WriteHeader(http.StatusOK)
	})

	t.Run("valid token injects user id", func(t *testing.T) {
		token, err := auth.GenerateToken(42)
		assert.NoError(t, err)

		req := httptest.NewRequest("GET", "/api/v1/account/balance", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()

		middleware(next).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, 42, seenUserID)
	})

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/account/balance", nil)
		rr := httptest.NewRecorder()

		middleware(next).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/account/balance", nil)
		req.Header.Set("Authorization", "Token abc")
		rr := httptest.NewRecorder()

		middleware(next).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("token signed with a different key", func(t *testing.T) {
		other := service.NewAuthService("other-secret", time.Hour)
		token, err := other.GenerateToken(42)
		assert.NoError(t, err)

		req := httptest.NewRequest("GET", "/api/v1/account/balance", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()

		middleware(next).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
