package llm

import "errors"

// Error classes reported by clients. Callers match with errors.Is; the
// wrapped message keeps the underlying cause for logging.
var (
	// ErrNotConfigured means a required credential is absent. No network
	// call is attempted.
	ErrNotConfigured = errors.New("llm: client not configured")

	// ErrUnavailable covers connection failures and timeouts.
	ErrUnavailable = errors.New("llm: upstream unavailable")

	// ErrBadStatus means the upstream answered with a non-2xx status.
	ErrBadStatus = errors.New("llm: upstream returned error status")

	// ErrMalformed means the upstream body did not match any known
	// response shape.
	ErrMalformed = errors.New("llm: malformed upstream response")
)
