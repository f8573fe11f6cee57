package stepflow

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrPipelineMustBeSet = errors.New("pipeline must be set")
	ErrStepNameMustBeSet = errors.New("step name must be set")
	ErrStepFnMustBeSet   = errors.New("step function must be set")
	ErrDuplicateStep     = errors.New("step already exists")
	ErrNegativeWeight    = errors.New("step weight must not be negative")
	ErrInvalidWeight     = errors.New("step weight must be a finite number")
	ErrReservedStepName  = errors.New("step name is reserved")
)

// ValidationError reports a bad or missing input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}

	return e.Field + ": " + e.Reason
}

// NewValidationError returns a ValidationError for field.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// ExecutionError reports that an action ran and declared itself failed.
type ExecutionError struct {
	Reason string
	Err    error
}

func (e *ExecutionError) Error() string {
	if e.Err == nil {
		return e.Reason
	}

	return e.Reason + ": " + e.Err.Error()
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// NewExecutionError returns an ExecutionError with the reason reported by the action.
func NewExecutionError(reason string) error {
	return &ExecutionError{Reason: reason}
}

// WrapExecutionError returns an ExecutionError keeping err as its cause.
func WrapExecutionError(err error, reason string) error {
	return &ExecutionError{Reason: reason, Err: err}
}

// Failure is the terminal result of a run stopped by a typed step error.
type Failure struct {
	Step   string
	Reason string
	// Err is either a *ValidationError or an *ExecutionError.
	Err error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("step %q failed: %s", f.Step, f.Reason)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// IsValidation tells if the failure comes from a validation step.
func (f *Failure) IsValidation() bool {
	var vErr *ValidationError

	return errors.As(f.Err, &vErr)
}

// newFailure classifies err. It returns false when err is neither a ValidationError nor an ExecutionError.
func newFailure(stepName string, err error) (*Failure, bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return &Failure{Step: stepName, Reason: vErr.Reason, Err: vErr}, true
	}

	var eErr *ExecutionError
	if errors.As(err, &eErr) {
		return &Failure{Step: stepName, Reason: eErr.Error(), Err: eErr}, true
	}

	return nil, false
}
