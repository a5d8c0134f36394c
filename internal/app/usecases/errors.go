package usecases

import "errors"

var (
	// ErrInvalidMesh wraps topology validation failures of stored meshes.
	ErrInvalidMesh = errors.New("mesh failed validation")
)
