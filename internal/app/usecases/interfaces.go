package usecases

import (
	"context"

	"github.com/Deltares-research/DHYDROGUI-sub073/internal/app/dto"
	"github.com/Deltares-research/DHYDROGUI-sub073/internal/core/mesh"
	"github.com/Deltares-research/DHYDROGUI-sub073/pkg/validation"
)

// MeshRepository defines the interface for mesh storage and retrieval.
// Implementations hand out copies, so a mesh returned by Get may be modified
// freely by the caller and persisted again with Save.
// PRINCIPLES:
// - SRP: Only responsible for mesh persistence
// - DIP: Used for dependency injection
type MeshRepository interface {
	Save(ctx context.Context, m *mesh.Mesh) error
	// Get returns mesh.ErrMeshNotFound (possibly wrapped) for unknown IDs.
	Get(ctx context.Context, id string) (*mesh.Mesh, error)
	List(ctx context.Context) ([]*mesh.Mesh, error)
	Delete(ctx context.Context, id string) error
}

// MeshFinder is implemented by repositories that filter listings themselves.
// Other repositories are filtered in memory after List.
type MeshFinder interface {
	Find(ctx context.Context, filter dto.ListFilter) ([]*mesh.Mesh, error)
}

// FlowLinkGenerator derives and reports flow links of stored meshes.
// PRINCIPLES:
// - SRP: Orchestrates load, derive and store; derivation itself lives in core
// - DIP: Transports depend on this abstraction
type FlowLinkGenerator interface {
	// Generate derives flow links for one mesh and stores the result
	Generate(ctx context.Context, req *dto.GenerateRequest) (*dto.GenerateResponse, error)

	// GenerateBatch runs Generate over distinct meshes in parallel
	GenerateBatch(ctx context.Context, meshIDs []string, opts dto.GenerateOptions) (*dto.BatchResponse, error)

	// Links returns the stored flow links of a mesh
	Links(ctx context.Context, meshID string) (*dto.LinksResponse, error)
}

// MeshCatalog manages stored meshes.
type MeshCatalog interface {
	Create(ctx context.Context, doc *validation.MeshDocument) (*mesh.Mesh, error)
	Get(ctx context.Context, id string) (*mesh.Mesh, error)
	List(ctx context.Context, filter dto.ListFilter) ([]dto.MeshInfo, error)
	Delete(ctx context.Context, id string) error
}
