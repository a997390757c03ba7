package roster

import (
	"errors"
	"fmt"
)

// Expected, recoverable conditions. Handlers answer these through the normal
// response envelope instead of logging them as failures.
var (
	ErrInsufficientBalance = errors.New("insufficient PTO balance")
	ErrNotFound            = errors.New("record not found")
)

// ValidationError marks user-correctable input problems.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func validationErrorf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// InconsistentStateError indicates corrupted stored state (partnership
// asymmetry, duplicate exceptions, unresolved default-assignment overlap).
// It points at a bug in a mutation path rather than bad user input, so
// callers must surface it distinctly instead of folding it into generic
// errors.
type InconsistentStateError struct {
	Reason string
}

func (e *InconsistentStateError) Error() string {
	return "inconsistent state: " + e.Reason
}

// PartialApplicationError reports a multi-record mutation that failed after
// some of its steps were already applied, so the caller can reconcile
// instead of treating the outcome as a plain failure.
type PartialApplicationError struct {
	Applied []string
	Err     error
}

func (e *PartialApplicationError) Error() string {
	return fmt.Sprintf("partially applied (done: %v): %v", e.Applied, e.Err)
}

func (e *PartialApplicationError) Unwrap() error {
	return e.Err
}
