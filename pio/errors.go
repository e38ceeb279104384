package pio

import "fmt"

// Kind classifies a failure so callers can decide how to react without
// string-matching messages.
type Kind string

const (
	// KindProcess: the external tool exited non-zero or could not be run.
	KindProcess Kind = "process"
	// KindParse: the external tool produced output that is not valid JSON.
	KindParse Kind = "parse"
	// KindValidation: the request or the returned data violates the
	// metadata contract (unknown environment, missing required keys, ...).
	KindValidation Kind = "validation"
	// KindInternal: anything that does not fit the categories above.
	KindInternal Kind = "internal"
)

// Error is the failure type returned by this package and by the packages
// built on top of it.
type Error struct {
	Kind   Kind
	Detail string
	// Stderr holds the tool's captured error output when the failure came
	// from a process invocation.
	Stderr string
}

func (e Error) Error() string {
	if e.Detail == "" {
		return string(e.Kind) + " error"
	}
	if e.Stderr != "" {
		return fmt.Sprintf("%s error: %s: %s", e.Kind, e.Detail, e.Stderr)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Detail)
}

// ErrProcess reports a failed external invocation. stderr may be empty.
func ErrProcess(detail, stderr string) Error {
	return Error{Kind: KindProcess, Detail: detail, Stderr: stderr}
}

// ErrParse reports structurally invalid tool output.
func ErrParse(detail string) Error {
	return Error{Kind: KindParse, Detail: detail}
}

// ErrValidation reports a violated data contract.
func ErrValidation(detail string) Error {
	return Error{Kind: KindValidation, Detail: detail}
}

// ErrInternal reports an unexpected failure.
func ErrInternal(detail string) Error {
	return Error{Kind: KindInternal, Detail: detail}
}

// WrapError normalizes any error into an Error, leaving already-typed
// errors untouched.
func WrapError(err error) Error {
	if e, ok := err.(*Error); ok {
		return *e
	}
	if e, ok := err.(Error); ok {
		return e
	}
	return ErrInternal(err.Error())
}
