package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_RoundTrip(t *testing.T) {
	t.Parallel()

	m := NewManager("test-secret", 15*time.Minute)

	token, err := m.GenerateAccessToken("0b7c3c1e-5a0e-4b8e-9d7a-2f8e1c2d3b4a", "leo", "user")
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "0b7c3c1e-5a0e-4b8e-9d7a-2f8e1c2d3b4a", claims.UserID)
	assert.Equal(t, "leo", claims.Username)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, TokenTypeAccess, claims.Type)
}

func TestManager_RejectsWrongSecret(t *testing.T) {
	t.Parallel()

	token, err := NewManager("secret-a", time.Minute).GenerateAccessToken("id", "leo", "user")
	require.NoError(t, err)

	_, err = NewManager("secret-b", time.Minute).ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestManager_RejectsExpired(t *testing.T) {
	t.Parallel()

	m := NewManager("secret", -time.Minute)
	token, err := m.GenerateAccessToken("id", "leo", "user")
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestManager_RejectsNonAccessType(t *testing.T) {
	t.Parallel()

	claims := Claims{
		UserID: "id",
		Type:   "refresh",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewManager("secret", time.Hour).ValidateAccessToken(token)
	assert.ErrorContains(t, err, "invalid token type")
}
