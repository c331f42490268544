// Package tokenstore persists the auth token across client restarts.
//
// The store is the terminal counterpart of the product's session cookie:
// one named record with an expiry, written on every successful login,
// register or refresh, and deleted on logout. The storage medium hides
// behind the Store interface so session logic never touches sqlite.
package tokenstore

import (
	"context"
	"time"
)

// Store is the durable key-value surface the session store writes the token
// record through.
type Store interface {
	// Load returns the persisted token, or "" when no unexpired record
	// exists.
	Load(ctx context.Context) (string, error)

	// Save writes (or overwrites) the record with the given expiry.
	Save(ctx context.Context, token string, expiresAt time.Time) error

	// Delete removes the record. Deleting an absent record is not an error.
	Delete(ctx context.Context) error
}
