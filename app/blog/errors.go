package blog

import "fmt"

// ErrorKind describes the origin of an error.
type ErrorKind string

// Possible error kinds.
const (
	KindValidation         ErrorKind = "validation"
	KindUpstreamNews       ErrorKind = "upstream-news"
	KindUpstreamGeneration ErrorKind = "upstream-generation"
)

// Error is returned by Service with the kind of the failure.
type Error struct {
	Kind ErrorKind
	Err  error
}

// Error returns the message of the underlying error.
func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error { return e.Err }

// Retryable reports whether the request may succeed if repeated as is.
func (e *Error) Retryable() bool { return e.Kind != KindValidation }

func errorf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}
