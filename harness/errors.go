package harness

import (
	"errors"
	"fmt"
)

// FailureKind classifies why a case failed.
type FailureKind string

const (
	KindDecode    FailureKind = "decode"
	KindAssertion FailureKind = "assertion"
	KindPanic     FailureKind = "panic"
)

// DecodeError reports that a strategy could not produce a model.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return "decode: " + e.Err.Error() }

func (e *DecodeError) Unwrap() error { return e.Err }

// AssertionError reports that a decoded model failed a correctness check.
type AssertionError struct {
	Msg string
}

func (e *AssertionError) Error() string { return "assertion: " + e.Msg }

// PanicError wraps a value recovered from a panicking invocation.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string { return fmt.Sprintf("panic: %v", e.Value) }

// Failure records the terminal error of a failed case.
type Failure struct {
	Kind      FailureKind `json:"kind"`
	Phase     string      `json:"phase"`
	Iteration int         `json:"iteration"`
	Reason    string      `json:"reason"`
	Err       error       `json:"-"`
}

func newFailure(phase string, iteration int, err error) *Failure {
	return &Failure{
		Kind:      classify(err),
		Phase:     phase,
		Iteration: iteration,
		Reason:    err.Error(),
		Err:       err,
	}
}

func classify(err error) FailureKind {
	var (
		assertErr *AssertionError
		panicErr  *PanicError
	)

	switch {
	case errors.As(err, &assertErr):
		return KindAssertion
	case errors.As(err, &panicErr):
		return KindPanic
	default:
		return KindDecode
	}
}

// Expect returns an AssertionError built from format when cond is false.
func Expect(cond bool, format string, args ...any) error {
	if cond {
		return nil
	}

	return &AssertionError{Msg: fmt.Sprintf(format, args...)}
}

// Equal returns an AssertionError when got differs from want.
func Equal[T comparable](what string, got, want T) error {
	return Expect(got == want, "%s = %v, want %v", what, got, want)
}
