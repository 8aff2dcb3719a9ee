package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("secret", "HS256", time.Hour)

	token, issued, err := m.GenerateToken(7, "a@example.com", true)
	require.NoError(t, err)
	require.NotEmpty(t, issued.ID)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "a@example.com", claims.Email)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, issued.ID, claims.ID)
	assert.InDelta(t, time.Hour.Seconds(), claims.TTL().Seconds(), 5)
}

func TestJWTManager_UniqueTokenIDs(t *testing.T) {
	m := NewJWTManager("secret", "HS256", time.Hour)
	_, a, err := m.GenerateToken(1, "a@example.com", false)
	require.NoError(t, err)
	_, b, err := m.GenerateToken(1, "a@example.com", false)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestJWTManager_Rejects(t *testing.T) {
	m := NewJWTManager("secret", "HS256", time.Hour)
	token, _, err := m.GenerateToken(1, "a@example.com", false)
	require.NoError(t, err)

	_, err = NewJWTManager("other", "HS256", time.Hour).ValidateToken(token)
	assert.Error(t, err)

	_, err = NewJWTManager("secret", "HS384", time.Hour).ValidateToken(token)
	assert.Error(t, err)

	expired, _, err := NewJWTManager("secret", "HS256", -time.Minute).GenerateToken(1, "a@example.com", false)
	require.NoError(t, err)
	_, err = m.ValidateToken(expired)
	assert.Error(t, err)

	_, err = m.ValidateToken("not-a-token")
	assert.Error(t, err)
}
