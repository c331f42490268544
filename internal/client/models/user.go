// Package models defines the typed records exchanged with the TesteMatch
// backend. Unknown fields in server payloads are ignored so the client stays
// forward-compatible with backend additions.
package models

import "time"

// User is the server-owned account record. The session holds the only copy;
// the Credits field may be locally patched for immediate UI feedback, but any
// server round-trip is authoritative and overwrites it.
type User struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Email       string         `json:"email"`
	Credits     int            `json:"credits"`
	Plan        string         `json:"plan"`
	Preferences map[string]any `json:"preferences"`
	NeedsEmail  bool           `json:"needsEmail"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}
