package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/testematch/cli/internal/common"
)

// Error is a structured non-2xx response: the HTTP status plus the
// user-displayable message the backend put in its "error" field, when
// present. Callers that need a message for display should fall back to
// their own generic text when Message is empty.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: status %d", e.Status)
	}
	return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
}

// Is maps well-known statuses onto the shared sentinels, so callers can use
// errors.Is(err, common.ErrUnauthorized) without reaching into the struct.
func (e *Error) Is(target error) bool {
	switch target {
	case common.ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case common.ErrNotFound:
		return e.Status == http.StatusNotFound
	case common.ErrInsufficientCredits:
		return e.Status == http.StatusPaymentRequired
	}
	return false
}

// MessageOr returns the server-supplied message from err when err is an
// *Error carrying one, otherwise the fallback. This is the single place the
// "prefer server message, fall back to a generic default" rule lives.
func MessageOr(err error, fallback string) string {
	if apiErr, ok := asAPIError(err); ok && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

func asAPIError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
