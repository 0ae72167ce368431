// Package reason tags errors returned by the registries and gateways so
// callers can tell a missing record from an unreachable backend.
package reason

import (
	"errors"
	"fmt"
)

type Reason string

const (
	NotFound    Reason = "not_found"
	Unavailable Reason = "unavailable"
	Forbidden   Reason = "forbidden"
	Invalid     Reason = "invalid"
	Internal    Reason = "internal"
)

var (
	ErrNotFound    = &Error{Reason: NotFound}
	ErrUnavailable = &Error{Reason: Unavailable}
	ErrForbidden   = &Error{Reason: Forbidden}
	ErrInvalid     = &Error{Reason: Invalid}
	ErrInternal    = &Error{Reason: Internal}
)

type Error struct {
	Reason Reason
	Op     string
	Err    error
}

func (e *Error) Error() string {
	switch {
	case e.Op == "" && e.Err == nil:
		return string(e.Reason)
	case e.Err == nil:
		return fmt.Sprintf("%s: %s", e.Op, e.Reason)
	case e.Op == "":
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Reason, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error carrying the same reason, so the package level
// sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Reason == e.Reason
}

func New(r Reason, op string) error {
	return &Error{Reason: r, Op: op}
}

func Wrap(r Reason, op string, err error) error {
	return &Error{Reason: r, Op: op, Err: err}
}

// Of returns the reason attached to err. Untagged errors are Internal and
// a nil error has no reason.
func Of(err error) Reason {
	if err == nil {
		return ""
	}
	var re *Error
	if errors.As(err, &re) {
		return re.Reason
	}
	return Internal
}
