package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Deltares-research/DHYDROGUI-sub073/internal/app/dto"
	"github.com/Deltares-research/DHYDROGUI-sub073/internal/app/usecases"
	"github.com/Deltares-research/DHYDROGUI-sub073/internal/core/mesh"
	"github.com/Deltares-research/DHYDROGUI-sub073/pkg/validation"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error   string                      `json:"error"`
	Details validation.ValidationErrors `json:"details,omitempty"`
}

var badRequestErrors = []error{
	dto.ErrNilRequest,
	dto.ErrMissingMeshID,
	dto.ErrEmptyBatch,
	dto.ErrBatchTooLarge,
	dto.ErrInvalidFilter,
	mesh.ErrInvalidArgument,
	mesh.ErrMissingMeshID,
	mesh.ErrInvalidMeshName,
	mesh.ErrNegativeVertexIndex,
	mesh.ErrNegativeCellIndex,
	usecases.ErrInvalidMesh,
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	if errors.Is(err, mesh.ErrMeshNotFound) {
		return http.StatusNotFound
	}
	var verrs validation.ValidationErrors
	if errors.As(err, &verrs) {
		return http.StatusBadRequest
	}
	var ierr *validation.IndexError
	if errors.As(err, &ierr) {
		return http.StatusBadRequest
	}
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}

func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	resp := ErrorResponse{Error: err.Error()}
	var verrs validation.ValidationErrors
	if errors.As(err, &verrs) {
		resp.Details = verrs
	}
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, resp)
}
