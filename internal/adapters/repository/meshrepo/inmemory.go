package meshrepo

import (
	"context"
	"fmt"
	"sync"

	"github.com/Deltares-research/DHYDROGUI-sub073/internal/core/mesh"
	"github.com/Deltares-research/DHYDROGUI-sub073/internal/infrastructure/metrics"
	"github.com/Deltares-research/DHYDROGUI-sub073/pkg/validation"
)

const backend = "memory"

// InMemoryMeshRepository provides an in-memory implementation of a mesh repository
// PRINCIPLES:
// - KISS: Simple map-based storage
// - SRP: Only responsible for mesh persistence
// - Thread-safe: meshes are copied in and out, callers never share an instance

type InMemoryMeshRepository struct {
	mu     sync.RWMutex
	meshes map[string]*mesh.Mesh
}

func NewInMemoryMeshRepository() *InMemoryMeshRepository {
	return &InMemoryMeshRepository{
		meshes: make(map[string]*mesh.Mesh),
	}
}

func (r *InMemoryMeshRepository) Save(ctx context.Context, m *mesh.Mesh) error {
	if err := validation.ValidateStorable(m); err != nil {
		return err
	}

	stored := m.Clone()
	stored.BuildVertexToCellIndex()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.meshes[m.ID] = stored
	metrics.SetMeshesStored(backend, len(r.meshes))
	return nil
}

func (r *InMemoryMeshRepository) Get(ctx context.Context, id string) (*mesh.Mesh, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.meshes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", mesh.ErrMeshNotFound, id)
	}
	return m.Clone(), nil
}

func (r *InMemoryMeshRepository) List(ctx context.Context) ([]*mesh.Mesh, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*mesh.Mesh, 0, len(r.meshes))
	for _, m := range r.meshes {
		out = append(out, m.Clone())
	}
	return out, nil
}

func (r *InMemoryMeshRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.meshes[id]; !ok {
		return fmt.Errorf("%w: %s", mesh.ErrMeshNotFound, id)
	}
	delete(r.meshes, id)
	metrics.SetMeshesStored(backend, len(r.meshes))
	return nil
}

// Len returns the number of stored meshes.
func (r *InMemoryMeshRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.meshes)
}
