// Package mesh defines domain-specific errors
package mesh

import (
	"errors"
	"fmt"
)

// Domain errors - defined once, used everywhere
var (
	// Argument errors
	ErrInvalidArgument = errors.New("invalid argument")

	// Mesh errors
	ErrInvalidMeshName = errors.New("invalid mesh name")
	ErrMeshNotFound    = errors.New("mesh not found")
	ErrMissingMeshID   = errors.New("mesh ID is required")

	// Topology errors
	ErrInvalidGridSize     = errors.New("grid must have at least one cell in each direction")
	ErrInvalidCellSize     = errors.New("cell size must be positive")
	ErrNegativeVertexIndex = errors.New("vertex index cannot be negative")
	ErrNegativeCellIndex   = errors.New("cell index cannot be negative")
)

// ArgumentError reports a missing or unusable argument by name.
// It unwraps to ErrInvalidArgument.
type ArgumentError struct {
	Param  string
	Reason string
}

// NewArgumentError creates an ArgumentError for the named parameter.
func NewArgumentError(param, reason string) *ArgumentError {
	return &ArgumentError{Param: param, Reason: reason}
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidArgument, e.Param, e.Reason)
}

func (e *ArgumentError) Unwrap() error {
	return ErrInvalidArgument
}
