package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrSuperluminal indicates a prescribed world line whose speed exceeds c.
	ErrSuperluminal = errors.New("dynamo: world line moves faster than light")

	// ErrInvalidState indicates a charge state containing NaN or Inf.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrUnknownPreset indicates a charge preset name that is not registered.
	ErrUnknownPreset = errors.New("dynamo: unknown charge preset")

	// ErrUnknownParam indicates a tunable parameter name that does not exist.
	ErrUnknownParam = errors.New("dynamo: unknown parameter")

	// ErrNonMonotonic indicates a world-line sample that does not advance ct.
	ErrNonMonotonic = errors.New("dynamo: world-line samples must strictly increase in ct")

	// ErrContextCanceled indicates the simulation was interrupted between frames.
	ErrContextCanceled = errors.New("dynamo: simulation canceled by context")
)

// SimulationError wraps an error with the frame it occurred in.
type SimulationError struct {
	Frame   int
	CT      float64
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("frame %d (ct=%.4f): %v", e.Frame, e.CT, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
