// Package tokenx inspects bearer tokens issued by the backend. The client
// never validates signatures (it has no key); it only peeks at the expiry
// claim to bound how long a token is persisted locally.
package tokenx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ExpiresAt returns the exp claim of the token, if the token is a parseable
// JWT carrying one. Opaque tokens return ok=false and the caller falls back
// to its own TTL.
func ExpiresAt(token string) (time.Time, bool) {
	parser := jwt.NewParser()

	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
