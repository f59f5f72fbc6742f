package bookstore

import (
	"errors"
	"fmt"
)

// ErrMalformedResponse is returned when a 2xx body cannot be decoded into the
// expected shape.
var ErrMalformedResponse = errors.New("bookstore: malformed response body")

// ErrInvalidBookID is returned before any request for a book ID that cannot be
// sent as a single path segment.
var ErrInvalidBookID = errors.New("bookstore: invalid book id")

// APIError is a non-2xx answer from the bookstore API. It is the application-level
// rejection class: anything else returned by Client is a transport failure.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Message != "" {
		return fmt.Sprintf("bookstore: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("bookstore: unexpected status code: %d", e.StatusCode)
}

// IsRejection reports whether err carries an APIError, and returns it.
func IsRejection(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
