package apperr

import (
	"errors"
	"fmt"
)

// Kind identifies the failure class of an Error.
type Kind int

const (
	// KindValidation indicates missing or malformed caller input.
	KindValidation Kind = iota
	// KindUpstream indicates a remote fetch that returned a failure status.
	KindUpstream
	// KindTimeout indicates a remote fetch that exceeded its time bound.
	KindTimeout
	// KindNotFound indicates a missing cache entry or native record.
	KindNotFound
	// KindDecode indicates unparseable image or payload data.
	KindDecode
	// KindInternal indicates an unexpected store or infrastructure failure.
	KindInternal
)

// String returns the taxonomy name for the kind.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUpstream:
		return "upstream"
	case KindTimeout:
		return "timeout"
	case KindNotFound:
		return "not_found"
	case KindDecode:
		return "decode"
	default:
		return "internal"
	}
}

// Error is the single error type that crosses the system boundary.
// Raw transport and decode errors are wrapped, never surfaced verbatim.
type Error struct {
	// Kind is the failure class.
	Kind Kind

	// Msg is a short human-readable description.
	Msg string

	// Status carries the remote status code for KindUpstream errors.
	Status int

	// Err is the wrapped cause, if any.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Unwrap returns the wrapped cause for errors.Is/errors.As chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// Validation creates a ValidationError for missing or malformed input.
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Msg: msg}
}

// Upstream creates an UpstreamError carrying the remote status code.
func Upstream(status int) *Error {
	return &Error{Kind: KindUpstream, Msg: fmt.Sprintf("upstream returned status %d", status), Status: status}
}

// Timeout creates a TimeoutError for a remote fetch that exceeded its bound.
func Timeout(msg string, err error) *Error {
	return &Error{Kind: KindTimeout, Msg: msg, Err: err}
}

// NotFound creates a NotFoundError.
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Msg: msg}
}

// Decode creates a DecodeError wrapping the decoder failure.
func Decode(msg string, err error) *Error {
	return &Error{Kind: KindDecode, Msg: msg, Err: err}
}

// Internal wraps an unexpected infrastructure failure.
func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Msg: msg, Err: err}
}

// IsKind reports whether err is (or wraps) an Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind == kind
	}
	return false
}

// StatusOf returns the upstream status code carried by err, or 0 if err
// is not an upstream error.
func StatusOf(err error) int {
	var ae *Error
	if errors.As(err, &ae) && ae.Kind == KindUpstream {
		return ae.Status
	}
	return 0
}
