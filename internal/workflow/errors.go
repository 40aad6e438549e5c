package workflow

import (
	"errors"
	"fmt"
)

// ErrorKind classifies orchestrator failures so handlers can map them
// to responses without string matching
type ErrorKind int

const (
	// KindInput means a required field was missing; nothing was written
	KindInput ErrorKind = iota
	// KindProvider means an outbound dependency failed
	KindProvider
	// KindParse means a model response was not in the expected shape
	KindParse
	// KindPartialUpdate means a write failed after earlier steps succeeded
	KindPartialUpdate
)

func (k ErrorKind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindProvider:
		return "provider"
	case KindParse:
		return "parse"
	case KindPartialUpdate:
		return "partial_update"
	default:
		return "unknown"
	}
}

// Error is a classified orchestrator failure
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind ErrorKind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func inputError(op, format string, args ...any) *Error {
	return newError(KindInput, op, fmt.Errorf(format, args...))
}

// KindOf extracts the classification from an error chain. Unclassified
// errors count as provider failures.
func KindOf(err error) ErrorKind {
	var classified *Error
	if errors.As(err, &classified) {
		return classified.Kind
	}
	return KindProvider
}
