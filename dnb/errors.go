package dnb

import (
	"errors"
	"fmt"
	"net/http"
	"unicode/utf8"
)

// ErrorPrefix marks every user facing error message
const ErrorPrefix = "!! ERROR "

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid dnb client configuration")
	// ErrMissingCredentials indicates an authenticated call without username
	ErrMissingCredentials = errors.New("dnb username and password are required for this operation")
	// ErrTransport indicates that no response was received
	ErrTransport = errors.New("failed to reach the URN service")
	// ErrDecode indicates a successful response with an unreadable body
	ErrDecode = errors.New("failed to decode URN service response")
)

// APIError represents a response with a status outside the expected range
type APIError struct {
	StatusCode int
	Message    string
	Body       string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("dnb API error: status %d: %s", e.StatusCode, e.Message)
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsConflict checks if the error indicates a conflict, which the service
// returns when a URL is already registered to another URN
func (e *APIError) IsConflict() bool {
	return e.StatusCode == http.StatusConflict
}

// TransportError wraps a connection level failure
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() []error {
	return []error{ErrTransport, e.Err}
}

// DecodeError wraps a JSON decoding failure of a 2xx response
type DecodeError struct {
	StatusCode int
	Err        error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("status %d: %v", e.StatusCode, e.Err)
}

func (e *DecodeError) Unwrap() []error {
	return []error{ErrDecode, e.Err}
}

// SuccessorLookupError is returned when the canonical link of a successor
// URN could not be determined
type SuccessorLookupError struct {
	URN string
	Err error
}

func (e *SuccessorLookupError) Error() string {
	return fmt.Sprintf("failed to resolve successor %s: %v", e.URN, e.Err)
}

func (e *SuccessorLookupError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status carried by err, or 0 when no response
// was involved
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) {
		return decodeErr.StatusCode
	}
	return 0
}

// ErrorMessage renders err for display. It returns an empty string for nil.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return fmt.Sprintf("%sdnb client - status of last response: %d", ErrorPrefix, apiErr.StatusCode)
	}
	return ErrorPrefix + err.Error()
}

func newAPIError(status int, body []byte) *APIError {
	const maxBody = 512

	if len(body) > maxBody {
		n := maxBody
		// cut on a rune boundary
		for n > 0 && !utf8.RuneStart(body[n]) {
			n--
		}
		body = body[:n]
	}
	b := string(body)

	return &APIError{
		StatusCode: status,
		Message:    http.StatusText(status),
		Body:       b,
	}
}
