package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAuthService_PasswordHashing(t *testing.T) {
	auth := NewAuthService("test-secret", time.Hour)

	hash, err := auth.HashPassword("password123")
	assert.NoError(t, err)
	assert.NotEqual(t, "password123", hash)

	assert.True(t, auth.CheckPasswordHash("password123", hash))
	assert.False(t, auth.CheckPasswordHash("wrongpassword", hash))
}

func TestAuthService_TokenRoundTrip(t *testing.T) {
	auth := NewAuthService("test-secret", time.Hour)

	token, err := auth.GenerateToken(42)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := auth.ParseToken(token)
	assert.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
}

func TestAuthService_ParseToken_Failures(t *testing.T) {
	auth := NewAuthService("test-secret", time.Hour)

	t.Run("garbage token", func(t *testing.T) {
		_, err := auth.ParseToken("not.a.token")
		assert.Error(t, err)
	})

	t.Run("wrong signing key", func(t *testing.T) {
		other := NewAuthService("different-secret", time.Hour)
		token, err := other.GenerateToken(1)
		assert.NoError(t, err)

		_, err = auth.ParseToken(token)
		assert.Error(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := NewAuthService("test-secret", -time.Hour)
		token, err := expired.GenerateToken(1)
		assert.NoError(t, err)

		_, err = auth.ParseToken(token)
		assert.Error(t, err)
	})
}
