// Package gwerr defines the gateway's error kinds (spec §7) so callers can
// branch on errors.As/errors.Is instead of string matching.
package gwerr

import "fmt"

// Kind classifies an Error by which of the five error categories in the
// error-handling design it belongs to.
type Kind int

const (
	// Configuration errors are raised at construction: invalid callback
	// pairing, invalid template. Always fatal, never retried.
	Configuration Kind = iota
	// Validation errors mean user code returned an invalid value.
	Validation
	// Transport errors come from connect/reconnect/publish refusals.
	Transport
	// Storage errors mean the outbound queue rejected a Put.
	Storage
	// Remote errors mean the broker's registration response was not OK.
	Remote
)

func (k Kind) String() string {
	switch k {
	case Configuration:
		return "configuration"
	case Validation:
		return "validation"
	case Transport:
		return "transport"
	case Storage:
		return "storage"
	case Remote:
		return "remote"
	default:
		return "unknown"
	}
}

// Error wraps an underlying error with a Kind and the operation that
// produced it.
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

func (e *Error) Unwrap() error { return e.Err }

// New builds an *Error of the given kind.
func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Is reports whether err is a gwerr.Error of the given kind. Allows
// `gwerr.Is(err, gwerr.Validation)` without an extra errors.As call at
// every site.
func Is(err error, kind Kind) bool {
	var e *Error
	for err != nil {
		if ge, ok := err.(*Error); ok {
			e = ge
			break
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return e != nil && e.Kind == kind
}
