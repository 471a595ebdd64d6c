package client

import (
	"errors"
	"fmt"
	"time"
)

// Common errors returned by the client.
var (
	// ErrRetryExhausted is returned when all retry attempts are exhausted.
	ErrRetryExhausted = errors.New("retry attempts exhausted")

	// ErrContextCancelled is returned when the context is cancelled during retry.
	ErrContextCancelled = errors.New("context cancelled")

	// ErrRateLimited is returned when the rate limit gate refuses a request
	// without contacting the API.
	ErrRateLimited = errors.New("rate limited")
)

// ErrorClass represents a classification of request errors.
type ErrorClass string

const (
	// ErrorClassClient represents 4xx client errors.
	ErrorClassClient ErrorClass = "client"

	// ErrorClassServer represents 5xx server errors.
	ErrorClassServer ErrorClass = "server"

	// ErrorClassRateLimit represents 429 Too Many Requests.
	ErrorClassRateLimit ErrorClass = "rate_limit"

	// ErrorClassNetwork represents connection, DNS, TLS and timeout errors.
	ErrorClassNetwork ErrorClass = "network"

	// ErrorClassDecode represents bodies that do not match the expected schema.
	ErrorClassDecode ErrorClass = "decode"

	// ErrorClassValue represents decoded JSON with an unexpected shape.
	ErrorClassValue ErrorClass = "value"
)

// classForStatus maps a non-success HTTP status to its error class.
func classForStatus(status int) ErrorClass {
	switch {
	case status == 429:
		return ErrorClassRateLimit
	case status >= 500:
		return ErrorClassServer
	default:
		return ErrorClassClient
	}
}

// TransportError is a failure to get any HTTP response at all.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("helium transport error: %s %s: %v", e.Method, e.URL, e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusError is a response with a non-success HTTP status.
type StatusError struct {
	StatusCode int
	ErrorClass ErrorClass
	Endpoint   string
	Message    string

	// Body holds at most maxErrorBody bytes of the response body.
	Body string

	// RetryAfter is the server's Retry-After hint, if one was sent.
	RetryAfter time.Duration

	// Err is ErrRateLimited when the request was refused locally.
	Err error
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("helium %s error (status %d) on %s: %s: %s",
			e.ErrorClass, e.StatusCode, e.Endpoint, e.Message, e.Body)
	}
	return fmt.Sprintf("helium %s error (status %d) on %s: %s",
		e.ErrorClass, e.StatusCode, e.Endpoint, e.Message)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *StatusError) Unwrap() error {
	return e.Err
}

// DecodeError is a successful response whose body does not match the
// expected envelope or item schema.
type DecodeError struct {
	Endpoint string
	Err      error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("helium decode error on %s: %v", e.Endpoint, e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ValueError is a decoded JSON value that does not have the structure the
// caller needs.
type ValueError struct {
	// Value is the offending raw JSON (or text) value.
	Value  string
	Reason string
}

// Error implements the error interface.
func (e *ValueError) Error() string {
	return fmt.Sprintf("unexpected value %s: %s", truncate(e.Value, maxErrorBody), e.Reason)
}

// IsStatus reports whether err carries an HTTP status error with the given code.
func IsStatus(err error, code int) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == code
}

// classOf returns the error class carried by err, or "" when err is not a
// request error.
func classOf(err error) ErrorClass {
	var statusErr *StatusError
	var transportErr *TransportError
	var decodeErr *DecodeError
	var valueErr *ValueError
	switch {
	case errors.As(err, &statusErr):
		return statusErr.ErrorClass
	case errors.As(err, &transportErr):
		return ErrorClassNetwork
	case errors.As(err, &decodeErr):
		return ErrorClassDecode
	case errors.As(err, &valueErr):
		return ErrorClassValue
	default:
		return ""
	}
}

// shouldRetry determines if an error should be retried based on its classification.
func shouldRetry(errorClass ErrorClass) bool {
	switch errorClass {
	case ErrorClassServer, ErrorClassRateLimit, ErrorClassNetwork:
		return true
	default:
		// 4xx, decode and value errors repeat identically on retry
		return false
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
