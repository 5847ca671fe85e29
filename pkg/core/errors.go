package core

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrInvalidPage = errors.New("page must be >= 1")
	ErrEmptyID     = errors.New("note ID cannot be empty")
	ErrInvalidTag  = errors.New("unknown tag")
)

// Kind classifies a failure.
type Kind int

const (
	KindUnknown Kind = iota
	// KindTransport covers connection, DNS and timeout failures.
	KindTransport
	// KindHTTP is any non-2xx response.
	KindHTTP
	// KindDecode means the response body could not be decoded.
	KindDecode
	// KindValidation is rejected locally before reaching the API.
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindHTTP:
		return "http"
	case KindDecode:
		return "decode"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// Error is the error type returned by repositories and the service.
type Error struct {
	Kind   Kind
	Op     string // e.g. "list notes"
	Status int    // HTTP status, KindHTTP only
	Body   string // truncated response body, KindHTTP only
	Err    error
}

func (e *Error) Error() string {
	switch {
	case e.Kind == KindHTTP && e.Body != "":
		return fmt.Sprintf("%s: status %d: %s", e.Op, e.Status, e.Body)
	case e.Kind == KindHTTP:
		return fmt.Sprintf("%s: status %d", e.Op, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return e.Op + ": " + e.Kind.String() + " error"
	}
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}
