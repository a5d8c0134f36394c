package validation

import (
	"errors"
	"fmt"
	"strings"
)

// Structural mesh errors
var (
	ErrNilMesh              = errors.New("mesh is nil")
	ErrEdgeVertexOutOfRange = errors.New("edge references a vertex out of range")
	ErrDegenerateEdge       = errors.New("edge connects a vertex to itself")
	ErrDuplicateEdge        = errors.New("duplicate edge")
	ErrCellVertexOutOfRange = errors.New("cell references a vertex out of range")
	ErrCellTooSmall         = errors.New("cell has fewer than three vertices")
	ErrLinkCellOutOfRange   = errors.New("flow link references a cell out of range")
	ErrLinkEdgeOutOfRange   = errors.New("flow link references an edge out of range")
	ErrStaleVertexCellIndex = errors.New("vertex to cell index does not match cells")
	ErrMissingVertexCellIdx = errors.New("vertex to cell index not built")
)

// ValidationError represents a validation error with details
type ValidationError struct {
	Field   string      `json:"field"`
	Value   interface{} `json:"value"`
	Message string      `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors represents multiple validation errors
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// IndexError locates a structural problem at a specific element.
type IndexError struct {
	Kind  string // "edge", "cell" or "flow link"
	Index int
	Err   error
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s %d: %v", e.Kind, e.Index, e.Err)
}

func (e *IndexError) Unwrap() error {
	return e.Err
}
