package mirra

import (
	"encoding/json"
	"fmt"
)

// ErrorKind classifies where a failed call went wrong.
type ErrorKind string

const (
	// KindTransport covers network-level failures: DNS, connection
	// refused, timeouts. The underlying error is available via Unwrap.
	KindTransport ErrorKind = "transport_failure"
	// KindInvalidResponse means the server answered with a body that is
	// not valid JSON.
	KindInvalidResponse ErrorKind = "invalid_response"
	// KindAPI means the server answered with success=false or an HTTP
	// status >= 400.
	KindAPI ErrorKind = "api_failure"
)

// Error is the single error type returned by every SDK call.
type Error struct {
	Kind       ErrorKind
	Message    string
	Code       string
	StatusCode int
	Details    json.RawMessage

	cause error
}

func (e *Error) Error() string {
	switch {
	case e.Code != "" && e.StatusCode != 0:
		return fmt.Sprintf("mirra: %s (code=%s, status=%d)", e.Message, e.Code, e.StatusCode)
	case e.StatusCode != 0:
		return fmt.Sprintf("mirra: %s (status=%d)", e.Message, e.StatusCode)
	case e.Code != "":
		return fmt.Sprintf("mirra: %s (code=%s)", e.Message, e.Code)
	}
	return "mirra: " + e.Message
}

// Unwrap exposes the transport-level cause, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

func transportError(err error) *Error {
	return &Error{
		Kind:    KindTransport,
		Message: fmt.Sprintf("request failed: %v", err),
		cause:   err,
	}
}

func invalidResponseError(statusCode int) *Error {
	return &Error{
		Kind:       KindInvalidResponse,
		Message:    "invalid JSON response from API",
		StatusCode: statusCode,
	}
}
