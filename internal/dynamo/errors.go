package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrParameterBounds indicates a configuration value is outside its valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrIndexOutOfRange indicates a body index that does not exist in the store.
	ErrIndexOutOfRange = errors.New("dynamo: body index out of range")

	// ErrUnknownColor indicates a color that is not part of the configured palette.
	ErrUnknownColor = errors.New("dynamo: color not in palette")

	// ErrUnstable indicates a body position or velocity became NaN or Inf.
	ErrUnstable = errors.New("dynamo: simulation unstable (NaN or Inf detected)")

	// ErrUnknownPreset indicates a preset name with no registered configuration.
	ErrUnknownPreset = errors.New("dynamo: unknown preset")
)

// SimulationError wraps an error with the tick and body it was detected on.
type SimulationError struct {
	Tick    int
	Body    int
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("tick %d (body %d): %v", e.Tick, e.Body, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
