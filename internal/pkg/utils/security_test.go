package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	secret := "test-secret"

	t.Run("Valid Token", func(t *testing.T) {
		token, err := GenerateJWT("session-123", secret, time.Hour)
		require.NoError(t, err)

		sessionID, err := ParseJWT(token, secret)
		require.NoError(t, err)
		assert.Equal(t, "session-123", sessionID)
	})

	t.Run("Wrong Secret", func(t *testing.T) {
		token, err := GenerateJWT("session-123", secret, time.Hour)
		require.NoError(t, err)

		_, err = ParseJWT(token, "other-secret")
		assert.Error(t, err)
	})

	t.Run("Expired Token", func(t *testing.T) {
		token, err := GenerateJWT("session-123", secret, -time.Minute)
		require.NoError(t, err)

		_, err = ParseJWT(token, secret)
		assert.Error(t, err)
	})
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("Secret123!")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("Secret123!", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}
