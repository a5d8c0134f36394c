package meshflow

import (
	"context"

	"github.com/Deltares-research/DHYDROGUI-sub073/internal/adapters/repository/meshrepo"
	"github.com/Deltares-research/DHYDROGUI-sub073/internal/app/dto"
	"github.com/Deltares-research/DHYDROGUI-sub073/internal/app/usecases"
	"github.com/Deltares-research/DHYDROGUI-sub073/internal/core/flowlink"
	"github.com/Deltares-research/DHYDROGUI-sub073/internal/core/mesh"
)

// Re-export core mesh types for convenience
type Mesh = mesh.Mesh
type Vertex = mesh.Vertex
type Edge = mesh.Edge
type Cell = mesh.Cell
type FlowLink = mesh.FlowLink
type Summary = flowlink.Summary

// NewMesh creates a mesh with a fresh ID and a populated vertex to cell index.
func NewMesh(name string, vertices []Vertex, edges []Edge, cells []Cell) *Mesh {
	return mesh.New(name, vertices, edges, cells)
}

// NewRegularGrid builds a cellsX by cellsY grid of quadrilaterals.
func NewRegularGrid(cellsX, cellsY int, dx, dy float64) (*Mesh, error) {
	return mesh.NewRegularGrid(cellsX, cellsY, dx, dy)
}

// GenerateFlowLinks derives flow links directly on m, appending to its
// existing links. It needs no Runtime.
func GenerateFlowLinks(m *Mesh) (Summary, error) {
	return flowlink.GenerateFlowLinks(m)
}

// Runtime is a simple façade to store meshes and generate their flow links
// without importing internal packages directly. The default runtime keeps
// meshes in memory and is suitable for local usage and tests.
type Runtime struct {
	repo      usecases.MeshRepository
	generator usecases.FlowLinkGenerator
}

// NewRuntime constructs a default runtime with in-memory storage.
func NewRuntime() *Runtime {
	return NewRuntimeWith(meshrepo.NewInMemoryMeshRepository())
}

// NewRuntimeWith constructs a runtime over the given repository.
func NewRuntimeWith(repo usecases.MeshRepository, opts ...usecases.ServiceOption) *Runtime {
	return &Runtime{
		repo:      repo,
		generator: usecases.NewFlowLinkService(repo, opts...),
	}
}

// SaveMesh persists a mesh to the runtime repository.
func (rt *Runtime) SaveMesh(ctx context.Context, m *Mesh) error {
	return rt.repo.Save(ctx, m)
}

// Mesh returns a copy of a stored mesh.
func (rt *Runtime) Mesh(ctx context.Context, id string) (*Mesh, error) {
	return rt.repo.Get(ctx, id)
}

// GenerateFlowLinks derives flow links for a stored mesh. With regenerate the
// existing links are cleared first; otherwise new links are appended.
func (rt *Runtime) GenerateFlowLinks(ctx context.Context, meshID string, regenerate bool) (*dto.GenerateResponse, error) {
	return rt.generator.Generate(ctx, &dto.GenerateRequest{
		MeshID:  meshID,
		Options: dto.GenerateOptions{Regenerate: regenerate},
	})
}

// GenerateAll derives flow links for several stored meshes in parallel.
func (rt *Runtime) GenerateAll(ctx context.Context, meshIDs []string, regenerate bool) (*dto.BatchResponse, error) {
	return rt.generator.GenerateBatch(ctx, meshIDs, dto.GenerateOptions{Regenerate: regenerate})
}

// FlowLinks returns the stored flow links of a mesh.
func (rt *Runtime) FlowLinks(ctx context.Context, meshID string) ([]FlowLink, error) {
	m, err := rt.repo.Get(ctx, meshID)
	if err != nil {
		return nil, err
	}
	return m.FlowLinks, nil
}

// RunSimple saves m and generates its flow links from scratch, returning the
// stored links.
func (rt *Runtime) RunSimple(ctx context.Context, m *Mesh) ([]FlowLink, error) {
	if err := rt.repo.Save(ctx, m); err != nil {
		return nil, err
	}
	if _, err := rt.GenerateFlowLinks(ctx, m.ID, true); err != nil {
		return nil, err
	}
	return rt.FlowLinks(ctx, m.ID)
}
