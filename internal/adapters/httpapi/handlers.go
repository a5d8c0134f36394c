package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Deltares-research/DHYDROGUI-sub073/internal/app/dto"
	"github.com/Deltares-research/DHYDROGUI-sub073/internal/app/usecases"
	"github.com/Deltares-research/DHYDROGUI-sub073/pkg/validation"
)

// Handler serves the mesh and flow-link endpoints.
type Handler struct {
	catalog   usecases.MeshCatalog
	generator usecases.FlowLinkGenerator
}

// NewHandler wires the use cases behind the HTTP API.
func NewHandler(catalog usecases.MeshCatalog, generator usecases.FlowLinkGenerator) *Handler {
	return &Handler{catalog: catalog, generator: generator}
}

// MeshList is the body of GET /v1/meshes.
type MeshList struct {
	Meshes []dto.MeshInfo `json:"meshes"`
	Count  int            `json:"count"`
}

func (h *Handler) createMesh(c *gin.Context) {
	var doc validation.MeshDocument
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: "malformed mesh document: " + err.Error()})
		return
	}
	m, err := h.catalog.Create(c.Request.Context(), &doc)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Location", "/v1/meshes/"+m.ID)
	c.JSON(http.StatusCreated, dto.MeshInfoFrom(m))
}

// listMeshes accepts name_prefix, created_after, created_before (RFC 3339),
// limit and offset query parameters.
func (h *Handler) listMeshes(c *gin.Context) {
	var filter dto.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: "malformed list filter: " + err.Error()})
		return
	}
	infos, err := h.catalog.List(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, MeshList{Meshes: infos, Count: len(infos)})
}

func (h *Handler) getMesh(c *gin.Context) {
	m, err := h.catalog.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *Handler) deleteMesh(c *gin.Context) {
	if err := h.catalog.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) generateFlowLinks(c *gin.Context) {
	opts, err := generateOptions(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := h.generator.Generate(c.Request.Context(), &dto.GenerateRequest{
		MeshID:  c.Param("id"),
		Options: opts,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) listFlowLinks(c *gin.Context) {
	resp, err := h.generator.Links(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) generateBatch(c *gin.Context) {
	var req dto.BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: "malformed batch request: " + err.Error()})
		return
	}
	resp, err := h.generator.GenerateBatch(c.Request.Context(), req.MeshIDs, req.Options)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// generateOptions reads ?regenerate= and ?validate= flags.
func generateOptions(c *gin.Context) (dto.GenerateOptions, error) {
	var opts dto.GenerateOptions
	var err error
	if v := c.Query("regenerate"); v != "" {
		if opts.Regenerate, err = strconv.ParseBool(v); err != nil {
			return opts, err
		}
	}
	if v := c.Query("validate"); v != "" {
		if opts.Validate, err = strconv.ParseBool(v); err != nil {
			return opts, err
		}
	}
	return opts, nil
}
