package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Authentication errors
	ErrMissingAuth   = fmt.Errorf("authorization header is missing")
	ErrMissingCode   = fmt.Errorf("authorization code is missing")
	ErrTokenExchange = fmt.Errorf("failed to exchange code for token")

	// Input validation errors
	ErrEmptyTrackList = fmt.Errorf("no track URIs provided")
	ErrInvalidInput   = fmt.Errorf("invalid input")

	// Upstream API errors
	ErrUpstream       = fmt.Errorf("upstream request failed")
	ErrPlaylistCreate = fmt.Errorf("could not create playlist")
	ErrTrackAttach    = fmt.Errorf("failed to add tracks")
)

// StatusError wraps a sentinel error with the HTTP status returned by the
// upstream API, so handlers can propagate that status verbatim.
type StatusError struct {
	Err    error
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%v: status %d", e.Err, e.Status)
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// Upstream builds a [StatusError] for a non-200 upstream response.
func Upstream(err error, status int) *StatusError {
	return &StatusError{Err: err, Status: status}
}
