package prediction

import (
	"errors"
	"fmt"

	"falcon9/internal/artifact"
	"falcon9/internal/launch"
)

var (
	ErrModelUnavailable = artifact.ErrModelUnavailable
	ErrInvalidInput     = launch.ErrInvalid
	ErrInferenceFailure = errors.New("inference failure")
)

// InvalidInputError names the offending launch parameter.
type InvalidInputError = launch.FieldError

// InferenceError wraps a failure raised by the model itself.
type InferenceError struct {
	Stage string
	Err   error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("inference failure during %s: %v", e.Stage, e.Err)
}

func (e *InferenceError) Unwrap() error {
	return e.Err
}

func (e *InferenceError) Is(target error) bool {
	return target == ErrInferenceFailure
}
