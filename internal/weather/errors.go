package weather

import "errors"

var (
	// ErrNotFound means the query resolved to zero locations. The user can
	// correct it; presentation should render it distinctly.
	ErrNotFound = errors.New("location not found")

	// ErrUpstream covers transport failures and non-2xx responses from an
	// upstream provider. Retryable.
	ErrUpstream = errors.New("upstream request failed")

	// ErrMalformedPayload means a response had a shape or parallel-array
	// length mismatch. Not retryable; it signals a provider contract change.
	ErrMalformedPayload = errors.New("malformed provider payload")

	// ErrEmptyQuery is returned for blank lookups. The orchestrator rejects
	// them before any state transition or network call.
	ErrEmptyQuery = errors.New("empty query")
)
