package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for configuration and headless runs.
var (
	// ErrInvalidState indicates a position with NaN or Inf components.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrContextCanceled indicates the simulation was interrupted.
	ErrContextCanceled = errors.New("dynamo: simulation canceled by context")
)

// SimulationError wraps an error with simulation context.
type SimulationError struct {
	Step    int
	Time    float64
	Entity  int
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f) entity %d: %v", e.Step, e.Time, e.Entity, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
