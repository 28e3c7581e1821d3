package question

import (
	"errors"
	"fmt"
)

// Kind classifies a failure for the HTTP boundary.
type Kind int

const (
	// KindUnprocessable covers store failures and rejected input. Untyped errors count as this kind.
	KindUnprocessable Kind = iota
	KindNotFound
	KindBadRequest
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindBadRequest:
		return "bad request"
	default:
		return "unprocessable"
	}
}

// Error is a failure tagged with its kind and the operation that produced it.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound tags err (which may be nil) as a missing resource.
func NotFound(op string, err error) error {
	return &Error{Kind: KindNotFound, Op: op, Err: err}
}

// Unprocessable tags err as a failed operation.
func Unprocessable(op string, err error) error {
	return &Error{Kind: KindUnprocessable, Op: op, Err: err}
}

// BadRequest tags err as malformed request input.
func BadRequest(op string, err error) error {
	return &Error{Kind: KindBadRequest, Op: op, Err: err}
}

// KindOf extracts the kind carried by err.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnprocessable
}
