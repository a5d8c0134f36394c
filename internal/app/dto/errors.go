package dto

import "errors"

// Request errors
var (
	ErrNilRequest      = errors.New("request is required")
	ErrMissingMeshID   = errors.New("mesh ID is required")
	ErrEmptyBatch      = errors.New("batch must name at least one mesh")
	ErrBatchTooLarge   = errors.New("batch names too many meshes")
	ErrGenerationError = errors.New("flow link generation failed")
	ErrInvalidFilter   = errors.New("invalid list filter")
)

// MaxBatchSize bounds the number of meshes in one batch request.
const MaxBatchSize = 256

// MaxListLimit bounds the page size of a mesh listing.
const MaxListLimit = 1000
