package usecases

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Deltares-research/DHYDROGUI-sub073/internal/app/dto"
	"github.com/Deltares-research/DHYDROGUI-sub073/internal/core/mesh"
	"github.com/Deltares-research/DHYDROGUI-sub073/pkg/validation"
)

// MeshService implements MeshCatalog.
type MeshService struct {
	repo   MeshRepository
	logger *zerolog.Logger
}

// NewMeshService creates a catalog over repo. A nil logger uses the global one.
func NewMeshService(repo MeshRepository, logger *zerolog.Logger) *MeshService {
	if logger == nil {
		logger = &log.Logger
	}
	return &MeshService{repo: repo, logger: logger}
}

// Create validates doc, builds the mesh and stores it.
func (s *MeshService) Create(ctx context.Context, doc *validation.MeshDocument) (*mesh.Mesh, error) {
	if doc == nil {
		return nil, dto.ErrNilRequest
	}
	m, err := doc.ToMesh()
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, m); err != nil {
		return nil, fmt.Errorf("store mesh: %w", err)
	}
	s.logger.Info().
		Str("mesh_id", m.ID).
		Str("name", m.Name).
		Int("vertices", len(m.Vertices)).
		Int("edges", len(m.Edges)).
		Int("cells", len(m.Cells)).
		Msg("mesh stored")
	return m, nil
}

// Get returns the stored mesh.
func (s *MeshService) Get(ctx context.Context, id string) (*mesh.Mesh, error) {
	if id == "" {
		return nil, dto.ErrMissingMeshID
	}
	return s.repo.Get(ctx, id)
}

// List describes the stored meshes passing filter, oldest first.
func (s *MeshService) List(ctx context.Context, filter dto.ListFilter) ([]dto.MeshInfo, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	var meshes []*mesh.Mesh
	var err error
	if finder, ok := s.repo.(MeshFinder); ok {
		meshes, err = finder.Find(ctx, filter)
	} else {
		meshes, err = s.repo.List(ctx)
	}
	if err != nil {
		return nil, err
	}
	sort.SliceStable(meshes, func(i, j int) bool {
		if !meshes[i].CreatedAt.Equal(meshes[j].CreatedAt) {
			return meshes[i].CreatedAt.Before(meshes[j].CreatedAt)
		}
		return meshes[i].ID < meshes[j].ID
	})
	if _, ok := s.repo.(MeshFinder); !ok {
		meshes = filter.Apply(meshes)
	}

	infos := make([]dto.MeshInfo, len(meshes))
	for i, m := range meshes {
		infos[i] = dto.MeshInfoFrom(m)
	}
	return infos, nil
}

// Delete removes a stored mesh.
func (s *MeshService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return dto.ErrMissingMeshID
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("mesh_id", id).Msg("mesh deleted")
	return nil
}

var _ MeshCatalog = (*MeshService)(nil)
