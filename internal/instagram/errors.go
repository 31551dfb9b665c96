package instagram

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrMissingToken is matched by every *MissingTokenError.
	ErrMissingToken = errors.New("missing session token")
	// ErrMalformedResponse is matched by every *MalformedResponseError.
	ErrMalformedResponse = errors.New("malformed validation response")
)

// NetworkError reports a transport level failure (DNS, connect, timeout,
// read) on either the sign-up or the validation request.
type NetworkError struct {
	Op  string
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// StatusError reports a non-success HTTP status whose body could not be used.
type StatusError struct {
	Op         string
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %s", e.Op, e.URL, e.Status)
}

// MissingTokenError means the sign-up page did not hand out a required cookie.
// The session cannot be used.
type MissingTokenError struct {
	Cookie string
}

func (e *MissingTokenError) Error() string {
	return fmt.Sprintf("%s: cookie %q not set by sign-up page", ErrMissingToken, e.Cookie)
}

func (e *MissingTokenError) Is(target error) bool { return target == ErrMissingToken }

// MalformedResponseError means a validation response body was not JSON or
// did not carry the errors object. Only the failing call is affected.
type MalformedResponseError struct {
	Reason  string
	Snippet string
	Err     error
}

func (e *MalformedResponseError) Error() string {
	msg := fmt.Sprintf("%s: %s", ErrMalformedResponse, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Snippet != "" {
		msg += fmt.Sprintf(" (body=%q)", e.Snippet)
	}
	return msg
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

func (e *MalformedResponseError) Is(target error) bool { return target == ErrMalformedResponse }

// InvalidValueError rejects a check before anything is sent.
type InvalidValueError struct {
	Field  Field
	Value  string
	Reason string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

func snippet(body []byte) string {
	const limit = 256
	if len(body) > limit {
		return string(body[:limit]) + "..."
	}
	return string(body)
}
