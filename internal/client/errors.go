package client

import (
	"errors"
	"fmt"
	"net/url"
)

// Operation names as they appear in user-facing failure text.
const (
	OpSignup = "Signup"
	OpLogin  = "Login"
	OpChat   = "Chat"
)

// StatusError is a response outside the 2xx range.
type StatusError struct {
	Op   string
	Code int
	// Body holds the first bytes of the error body, for logging only.
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s failed: %d", e.Op, e.Code)
}

// TransportError means no usable response arrived: DNS, connect, timeout,
// or a body that could not be read or decoded.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return "Network error: " + describe(e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// describe drops the "Post <url>:" prefix net/http adds so the message
// reads like the underlying cause.
func describe(err error) string {
	if err == nil {
		return "unknown error"
	}
	var uerr *url.Error
	if errors.As(err, &uerr) && uerr.Err != nil {
		return uerr.Err.Error()
	}
	return err.Error()
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var serr *StatusError
	if errors.As(err, &serr) {
		return serr.Code
	}
	return 0
}
