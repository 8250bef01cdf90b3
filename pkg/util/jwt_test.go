package util

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestParseSessionClaims(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{
		"userId": "u-1",
		"email":  "user@example.com",
		"role":   "user",
		"exp":    time.Now().Add(time.Hour).Unix(),
	})

	claims, err := ParseSessionClaims(token)

	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
}

func TestParseSessionClaimsRejectsGarbage(t *testing.T) {
	_, err := ParseSessionClaims("not-a-jwt")
	assert.Error(t, err)
}

func TestIsTokenExpired(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{
			name:  "expired token",
			token: signedToken(t, jwt.MapClaims{"exp": time.Now().Add(-time.Hour).Unix()}),
			want:  true,
		},
		{
			name:  "valid token",
			token: signedToken(t, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()}),
			want:  false,
		},
		{
			name:  "token without exp never expires locally",
			token: signedToken(t, jwt.MapClaims{"userId": "u-1"}),
			want:  false,
		},
		{
			name:  "opaque token is left to the server",
			token: "opaque-session-token",
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTokenExpired(tt.token))
		})
	}
}
