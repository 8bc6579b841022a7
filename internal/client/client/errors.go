package client

import (
	"errors"
	"fmt"
)

// Kind is the class of a failed catalog exchange.
type Kind int

const (
	KindInvalidRequest Kind = iota + 1
	KindNoData
	KindDecoding
	KindServer
	KindTransport
)

func (k Kind) String() string {
	switch k {
	case KindInvalidRequest:
		return "invalid_request"
	case KindNoData:
		return "no_data"
	case KindDecoding:
		return "decoding_failure"
	case KindServer:
		return "server_error"
	case KindTransport:
		return "transport_failure"
	default:
		return "unknown"
	}
}

// Error is a classified catalog failure. StatusCode is set for KindServer only.
type Error struct {
	Kind       Kind
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindInvalidRequest:
		return "invalid URL"
	case KindNoData:
		return "no data received"
	case KindDecoding:
		return "error processing data"
	case KindServer:
		return fmt.Sprintf("server error: %d", e.StatusCode)
	default:
		return "unknown error"
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error of the same kind. A target with a zero
// StatusCode matches any status code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.StatusCode == 0 || t.StatusCode == e.StatusCode
}

var (
	ErrInvalidRequest = &Error{Kind: KindInvalidRequest}
	ErrNoData         = &Error{Kind: KindNoData}
	ErrDecoding       = &Error{Kind: KindDecoding}
	ErrServer         = &Error{Kind: KindServer}
	ErrTransport      = &Error{Kind: KindTransport}
)

// ServerError returns a target matching a specific HTTP status, for use with errors.Is.
func ServerError(code int) *Error {
	return &Error{Kind: KindServer, StatusCode: code}
}

func newError(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// KindOf reports the kind of err, or 0 when err is not a catalog error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
