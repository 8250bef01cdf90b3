package util

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims are the claims the backend embeds in a session token.
type SessionClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// ParseSessionClaims decodes a session token without verifying the
// signature. The client never holds the signing secret; claims are only
// inspected locally, the server remains the authority.
func ParseSessionClaims(token string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("failed to parse session token: %w", err)
	}
	return claims, nil
}

// IsTokenExpired reports whether the token carries an exp claim in the
// past. Tokens that are not JWTs (or carry no exp) are treated as
// non-expiring; only the server can reject those.
func IsTokenExpired(token string) bool {
	claims, err := ParseSessionClaims(token)
	if err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(time.Now())
}
