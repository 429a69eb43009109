// Package common defines the error taxonomy shared by the remote fetcher,
// the local stores and the user service. Callers match kinds with errors.Is
// against the sentinels below, or extract them with KindOf.
package common

import (
	"errors"
	"fmt"
)

// Kind classifies a failure surfaced by the user service.
type Kind int

const (
	KindUnknown Kind = iota
	// KindInvalidEndpoint means the remote endpoint could not be turned into
	// a request. It is a configuration error and is never retried.
	KindInvalidEndpoint
	// KindTransport covers every network-layer failure, including non-2xx
	// responses and timeouts. Retryable by calling again.
	KindTransport
	// KindDecode means the payload did not have the expected shape.
	KindDecode
	// KindPersistence means the local store could not be read or written.
	KindPersistence
)

var (
	ErrInvalidEndpoint = errors.New("invalid endpoint")
	ErrTransport       = errors.New("transport failure")
	ErrDecode          = errors.New("decode failure")
	ErrPersistence     = errors.New("persistence failure")
)

func (k Kind) String() string {
	switch k {
	case KindInvalidEndpoint:
		return "invalid_endpoint"
	case KindTransport:
		return "transport"
	case KindDecode:
		return "decode"
	case KindPersistence:
		return "persistence"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindInvalidEndpoint:
		return ErrInvalidEndpoint
	case KindTransport:
		return ErrTransport
	case KindDecode:
		return ErrDecode
	case KindPersistence:
		return ErrPersistence
	default:
		return nil
	}
}

// Error is a tagged failure: a Kind plus the underlying cause (which may be
// nil for KindInvalidEndpoint).
type Error struct {
	Kind Kind
	Err  error
}

// NewError wraps cause with the given kind.
func NewError(kind Kind, cause error) *Error {
	return &Error{Kind: kind, Err: cause}
}

func (e *Error) Error() string {
	prefix := "unknown failure"
	if s := e.Kind.sentinel(); s != nil {
		prefix = s.Error()
	}
	if e.Err == nil {
		return prefix
	}
	return fmt.Sprintf("%s: %v", prefix, e.Err)
}

// Unwrap exposes both the kind sentinel and the cause, so errors.Is works
// for either.
func (e *Error) Unwrap() []error {
	out := make([]error, 0, 2)
	if s := e.Kind.sentinel(); s != nil {
		out = append(out, s)
	}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}

// KindOf returns the kind of the first *Error in err's chain, or
// KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Retryable reports whether calling again may succeed without changing
// configuration.
func Retryable(err error) bool {
	return KindOf(err) == KindTransport
}

// Message renders err for people.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	switch e.Kind {
	case KindInvalidEndpoint:
		return "the users endpoint is not a valid URL; check the configuration"
	case KindTransport:
		return fmt.Sprintf("could not reach the users service: %v", e.Err)
	case KindDecode:
		return fmt.Sprintf("the users service sent data in an unexpected format: %v", e.Err)
	case KindPersistence:
		return fmt.Sprintf("could not access the local users store: %v", e.Err)
	default:
		return e.Error()
	}
}
