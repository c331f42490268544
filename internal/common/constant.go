// Package common contains shared constants and sentinel errors used across
// TesteMatch client components.
package common

import "time"

// AuthHeaderName is the HTTP header that carries the bearer token on
// outbound requests.
const AuthHeaderName = "Authorization"

// TokenRecordKey is the name of the persisted token record. Deliberately
// product-specific so it never collides with a generic "token" entry left
// behind by another tool.
const TokenRecordKey = "testematch_token"

// TokenRecordTTL is how long a persisted token record stays valid.
const TokenRecordTTL = 7 * 24 * time.Hour

// CacheBustParam is the query parameter appended to every request so
// intermediate caches never serve stale data.
const CacheBustParam = "_t"

// RequestIDHeaderName carries a client-generated correlation id.
const RequestIDHeaderName = "X-Request-Id"
