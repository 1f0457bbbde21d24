package errors

import (
	"errors"
	"fmt"
)

// ErrEmptyBody is returned when a successful response carries no body to decode.
var ErrEmptyBody = errors.New("response body is empty")

// TransportError is an underlying network failure: refused, reset, DNS, connect timeout.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error for %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// RequestFailedError means the server answered with a non-success status.
type RequestFailedError struct {
	Message    string
	StatusCode int
}

func (e *RequestFailedError) Error() string {
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Message)
}

// DecodeError means the body did not parse into the expected shape.
type DecodeError struct {
	Cause error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cannot decode response: %v", e.Cause)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// Check if err (or anything it wraps) is instance of T for custom error types
func Is[T error](err error) bool {
	var target T
	return errors.As(err, &target)
}

// Kind names the taxonomy class of err for logs and metric labels.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case Is[*TransportError](err):
		return "transport"
	case Is[*RequestFailedError](err):
		return "request_failed"
	case errors.Is(err, ErrEmptyBody):
		return "empty_body"
	case Is[*DecodeError](err):
		return "decode"
	default:
		return "unknown"
	}
}
