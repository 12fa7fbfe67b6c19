package remote

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

var (
	// ErrNetwork is returned when a request never produced a response.
	ErrNetwork = errors.New("network failure")

	// ErrDecode is returned when a 2xx response body could not be parsed.
	ErrDecode = errors.New("malformed response body")

	// ErrTooLarge is returned when a response body is over the read cap.
	ErrTooLarge = errors.New("response body too large")
)

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
}

// failure tags err with one of the sentinels above while keeping the cause.
func failure(kind error, method, path string, err error) error {
	return errors.WithStack(fmt.Errorf("%s %s: %w: %w", method, path, kind, err))
}
