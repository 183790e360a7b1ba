package mealdb

import (
	"context"
	"errors"
	"fmt"
	"net"
)

var (
	// ErrEmptyCategory is returned when FetchByCategory is called with a blank category.
	ErrEmptyCategory = errors.New("category is required")
	// ErrEmptyID is returned when FetchByID is called with a blank identifier.
	ErrEmptyID = errors.New("recipe id is required")
)

// NetworkError reports a transport failure or a non-2xx response.
type NetworkError struct {
	Op         string
	URL        string
	StatusCode int // zero when no response was received
	Err        error
}

// Error implements the standard Go error.
func (e *NetworkError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s returned status %d", e.Op, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.URL, e.Err)
}

// Unwrap implements Go error unwrapping.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Code returns the HTTP status code, or zero.
func (e *NetworkError) Code() int {
	return e.StatusCode
}

// Timeout reports whether the request ran out of time.
func (e *NetworkError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var nerr net.Error
	return errors.As(e.Err, &nerr) && nerr.Timeout()
}

// DecodeError reports a body that is not valid JSON or does not match the
// expected shape.
type DecodeError struct {
	Op  string
	URL string
	Err error
}

// Error implements the standard Go error.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: decode %s: %v", e.Op, e.URL, e.Err)
}

// Unwrap implements Go error unwrapping.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

type coder interface {
	Code() int
}

// IsNetwork reports whether err contains a *NetworkError.
func IsNetwork(err error) bool {
	var nerr *NetworkError
	return errors.As(err, &nerr)
}

// IsDecode reports whether err contains a *DecodeError.
func IsDecode(err error) bool {
	var derr *DecodeError
	return errors.As(err, &derr)
}

// StatusCode extracts the HTTP status code carried by err, or zero.
func StatusCode(err error) int {
	var c coder
	if errors.As(err, &c) {
		return c.Code()
	}
	return 0
}
