package crypto

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrOpaqueToken means the token is not a JWT. Opaque tokens are valid session
// tokens; they just cannot be inspected locally.
var ErrOpaqueToken = errors.New("token is not a JWT")

type Claims struct {
	Sub  string `json:"sub"`  // user id
	Role string `json:"role"` // admin/user
	jwt.RegisteredClaims
}

// InspectToken decodes the claims of a JWT without verifying its signature. The
// client never holds the signing secret, so the result is informational only.
func InspectToken(tokenStr string) (*Claims, error) {
	tokenStr = strings.TrimSpace(tokenStr)
	if strings.Count(tokenStr, ".") != 2 {
		return nil, ErrOpaqueToken
	}
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenStr, claims); err != nil {
		return nil, errors.Join(ErrOpaqueToken, err)
	}
	return claims, nil
}

// Expired reports whether the token carries an exp claim that lies before now.
func (c *Claims) Expired(now time.Time) bool {
	if c == nil || c.ExpiresAt == nil {
		return false
	}
	return c.ExpiresAt.Time.Before(now)
}

// ExpiresIn returns the time left before exp, or zero when no exp is set.
func (c *Claims) ExpiresIn(now time.Time) time.Duration {
	if c == nil || c.ExpiresAt == nil {
		return 0
	}
	return c.ExpiresAt.Time.Sub(now)
}
