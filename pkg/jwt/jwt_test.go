package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_RoundTrip(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	token, err := m.GenerateToken("0d6f4bd2-6f5e-4a36-9d5e-2f7c9b1c1a11", "alice")
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "0d6f4bd2-6f5e-4a36-9d5e-2f7c9b1c1a11", claims.UserID)
	assert.NotNil(t, claims.ExpiresAt)
}

func TestManager_ZeroTTLIsDeterministic(t *testing.T) {
	m := NewManager("test-secret", 0)

	first, err := m.GenerateToken("id-1", "alice")
	require.NoError(t, err)
	second, err := m.GenerateToken("id-1", "alice")
	require.NoError(t, err)

	assert.Equal(t, first, second)

	claims, err := m.ValidateToken(first)
	require.NoError(t, err)
	assert.Nil(t, claims.ExpiresAt)
}

func TestManager_RejectsBadTokens(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	other := NewManager("another-secret", time.Hour)

	valid, err := m.GenerateToken("id-1", "alice")
	require.NoError(t, err)
	foreign, err := other.GenerateToken("id-1", "alice")
	require.NoError(t, err)

	expiring := NewManager("test-secret", time.Minute)
	expiring.now = func() time.Time { return time.Now().Add(-time.Hour) }
	expired, err := expiring.GenerateToken("id-1", "alice")
	require.NoError(t, err)

	noSubject, err := m.GenerateToken("", "alice")
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-token"},
		{name: "tampered signature", token: valid[:len(valid)-2] + "xx"},
		{name: "foreign secret", token: foreign},
		{name: "expired", token: expired},
		{name: "missing user id", token: noSubject},
		{name: "empty", token: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.ValidateToken(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
