package tokenx

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte("test-key"))
	require.NoError(t, err)
	return s
}

func TestExpiresAt_JWTWithExp(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	s := signedToken(t, jwt.MapClaims{"sub": "1", "exp": exp.Unix()})

	got, ok := ExpiresAt(s)
	require.True(t, ok)
	assert.True(t, got.Equal(exp))
}

func TestExpiresAt_JWTWithoutExp(t *testing.T) {
	s := signedToken(t, jwt.MapClaims{"sub": "1"})

	_, ok := ExpiresAt(s)
	assert.False(t, ok)
}

func TestExpiresAt_OpaqueToken(t *testing.T) {
	_, ok := ExpiresAt("t1")
	assert.False(t, ok)
}
