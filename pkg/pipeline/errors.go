package pipeline

import "github.com/pkg/errors"

// Error kinds surfaced to the dashboard. Wrapped with pkg/errors so callers
// classify with errors.Is and still see the request context in the message.
var (
	// ErrDataUnavailable: the APIs hold no data for the requested
	// year/race/session, e.g. a race that has not happened yet.
	ErrDataUnavailable = errors.New("session data unavailable")

	// ErrNotFound: a driver or team is not part of the loaded session.
	ErrNotFound = errors.New("not found in session")

	// ErrUpstream: the API or the network failed; the request may succeed
	// when retried by the user.
	ErrUpstream = errors.New("upstream API failure")
)
