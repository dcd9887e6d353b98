package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerRoundTrip(t *testing.T) {
	m, err := NewManager("secret")
	require.NoError(t, err)

	token, err := m.NewJWT(7, "owner@example.com", time.Hour)
	require.NoError(t, err)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, "owner@example.com", claims.Email)
	assert.Equal(t, "7", claims.Subject)
}

func TestManagerRejects(t *testing.T) {
	m, err := NewManager("secret")
	require.NoError(t, err)
	other, err := NewManager("other")
	require.NoError(t, err)

	foreign, err := other.NewJWT(7, "", 0)
	require.NoError(t, err)
	_, err = m.Parse(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)

	past := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{ExpiresAt: time.Now().Add(-time.Minute).Unix()})
	signed, err := past.SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = m.Parse(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)

	anonymous, err := m.NewJWT(0, "", time.Hour)
	require.NoError(t, err)
	_, err = m.Parse(anonymous)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = NewManager("")
	assert.Error(t, err)
}
