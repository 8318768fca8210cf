package mealdb

import (
	"context"
	"errors"
	"net"
)

// Every operation returns one of these (wrapped) on failure, together with the
// zero value of its result. Callers that only check the value for nil see a
// plain "no result"; callers that care use errors.Is.
var (
	// ErrNoResults is returned when the expected field is absent, null or empty.
	ErrNoResults = errors.New("mealdb: no results")

	// ErrTransport is returned for connection failures, timeouts and non-2xx responses.
	ErrTransport = errors.New("mealdb: request failed")

	// ErrEmptyBody is returned when the API answered with an empty body.
	ErrEmptyBody = errors.New("mealdb: empty response body")

	// ErrDecode is returned when the body is not JSON or the field has an unexpected shape.
	ErrDecode = errors.New("mealdb: malformed response")
)

// IsTimeout reports whether err was caused by a deadline or a transport timeout.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
