package usecases

import (
	"bytes"
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Deltares-research/DHYDROGUI-sub073/internal/adapters/repository/meshrepo"
	"github.com/Deltares-research/DHYDROGUI-sub073/internal/app/dto"
	"github.com/Deltares-research/DHYDROGUI-sub073/internal/core/mesh"
	"github.com/Deltares-research/DHYDROGUI-sub073/pkg/validation"
)

// failingRepo wraps a repository and fails Save after the first n calls.
type failingRepo struct {
	MeshRepository
	saves   atomic.Int32
	allowed int32
}

var errDiskFull = errors.New("disk full")

func (r *failingRepo) Save(ctx context.Context, m *mesh.Mesh) error {
	if r.saves.Add(1) > r.allowed {
		return errDiskFull
	}
	return r.MeshRepository.Save(ctx, m)
}

func newService(t *testing.T, opts ...ServiceOption) (*FlowLinkService, *meshrepo.InMemoryMeshRepository) {
	t.Helper()
	repo := meshrepo.NewInMemoryMeshRepository()
	opts = append([]ServiceOption{WithLogger(zerolog.Nop())}, opts...)
	return NewFlowLinkService(repo, opts...), repo
}

func storeGrid(t *testing.T, repo MeshRepository, cellsX, cellsY int) *mesh.Mesh {
	t.Helper()
	m, err := mesh.NewRegularGrid(cellsX, cellsY, 1, 1)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), m))
	return m
}

func TestFlowLinkService_Generate(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()
	g := storeGrid(t, repo, 3, 3)

	resp, err := svc.Generate(ctx, &dto.GenerateRequest{MeshID: g.ID})
	require.NoError(t, err)
	assert.Equal(t, g.ID, resp.MeshID)
	assert.Equal(t, dto.GenerationStatusCompleted, resp.Status)
	assert.Equal(t, dto.Summary{Edges: 24, Linked: 12, Skipped: 12, Boundary: 12}, resp.Summary)
	assert.Equal(t, 12, resp.TotalLinks)
	assert.False(t, resp.EndTime.Before(resp.StartTime))

	stored, err := repo.Get(ctx, g.ID)
	require.NoError(t, err)
	assert.Len(t, stored.FlowLinks, 12)
}

func TestFlowLinkService_GenerateTwiceDoubles(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()
	g := storeGrid(t, repo, 3, 3)

	_, err := svc.Generate(ctx, &dto.GenerateRequest{MeshID: g.ID})
	require.NoError(t, err)
	resp, err := svc.Generate(ctx, &dto.GenerateRequest{MeshID: g.ID})
	require.NoError(t, err)
	assert.Equal(t, 24, resp.TotalLinks)

	resp, err = svc.Generate(ctx, &dto.GenerateRequest{
		MeshID:  g.ID,
		Options: dto.GenerateOptions{Regenerate: true},
	})
	require.NoError(t, err)
	assert.Equal(t, 12, resp.TotalLinks)
}

func TestFlowLinkService_GenerateErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid request", func(t *testing.T) {
		svc, _ := newService(t)
		_, err := svc.Generate(ctx, &dto.GenerateRequest{})
		assert.ErrorIs(t, err, dto.ErrMissingMeshID)

		_, err = svc.Generate(ctx, nil)
		assert.ErrorIs(t, err, dto.ErrNilRequest)
	})

	t.Run("unknown mesh", func(t *testing.T) {
		svc, _ := newService(t)
		_, err := svc.Generate(ctx, &dto.GenerateRequest{MeshID: "missing"})
		assert.ErrorIs(t, err, mesh.ErrMeshNotFound)
	})

	t.Run("cancelled context", func(t *testing.T) {
		svc, repo := newService(t)
		g := storeGrid(t, repo, 1, 1)
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := svc.Generate(cctx, &dto.GenerateRequest{MeshID: g.ID})
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("store failure", func(t *testing.T) {
		repo := &failingRepo{MeshRepository: meshrepo.NewInMemoryMeshRepository(), allowed: 1}
		svc := NewFlowLinkService(repo, WithLogger(zerolog.Nop()))
		g := storeGrid(t, repo, 2, 2)
		_, err := svc.Generate(ctx, &dto.GenerateRequest{MeshID: g.ID})
		assert.ErrorIs(t, err, errDiskFull)
	})
}

// staleRepo returns meshes whose index no longer matches their cells.
type staleRepo struct {
	MeshRepository
}

func (r staleRepo) Get(ctx context.Context, id string) (*mesh.Mesh, error) {
	m, err := r.MeshRepository.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	m.VertexToCells = mesh.VertexToCellIndex{0: {0}}
	return m, nil
}

func TestFlowLinkService_GenerateValidate(t *testing.T) {
	ctx := context.Background()
	repo := staleRepo{MeshRepository: meshrepo.NewInMemoryMeshRepository()}
	svc := NewFlowLinkService(repo, WithLogger(zerolog.Nop()))
	g := storeGrid(t, repo, 2, 2)

	_, err := svc.Generate(ctx, &dto.GenerateRequest{
		MeshID:  g.ID,
		Options: dto.GenerateOptions{Validate: true},
	})
	assert.ErrorIs(t, err, ErrInvalidMesh)
	assert.ErrorIs(t, err, validation.ErrStaleVertexCellIndex)

	// Without validation the stale index is used as is: no endpoint pair
	// shares two cells, so nothing is linked.
	resp, err := svc.Generate(ctx, &dto.GenerateRequest{MeshID: g.ID})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Summary.Linked)
	assert.Equal(t, resp.Summary.Edges, resp.Summary.Unindexed)
}

func TestFlowLinkService_GenerateRebuildsMissingIndex(t *testing.T) {
	ctx := context.Background()
	base := meshrepo.NewInMemoryMeshRepository()
	repo := noIndexRepo{MeshRepository: base}
	svc := NewFlowLinkService(repo, WithLogger(zerolog.Nop()))
	g := storeGrid(t, base, 2, 1)

	resp, err := svc.Generate(ctx, &dto.GenerateRequest{MeshID: g.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Summary.Linked)
}

type noIndexRepo struct {
	MeshRepository
}

func (r noIndexRepo) Get(ctx context.Context, id string) (*mesh.Mesh, error) {
	m, err := r.MeshRepository.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	m.VertexToCells = nil
	return m, nil
}

func TestFlowLinkService_GenerateLogsSummary(t *testing.T) {
	var buf bytes.Buffer
	repo := meshrepo.NewInMemoryMeshRepository()
	svc := NewFlowLinkService(repo, WithLogger(zerolog.New(&buf)))
	g := storeGrid(t, repo, 3, 3)

	_, err := svc.Generate(context.Background(), &dto.GenerateRequest{MeshID: g.ID})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"message":"flow links generated"`)
	assert.Contains(t, buf.String(), `"linked":12`)
	assert.Contains(t, buf.String(), `"boundary":12`)
}

func TestFlowLinkService_GenerateBatch(t *testing.T) {
	svc, repo := newService(t, WithWorkers(2))
	ctx := context.Background()

	a := storeGrid(t, repo, 3, 3)
	b := storeGrid(t, repo, 2, 1)
	c := storeGrid(t, repo, 1, 1)

	// Repeated IDs are processed once
	batch, err := svc.GenerateBatch(ctx, []string{a.ID, b.ID, a.ID, "missing", c.ID}, dto.GenerateOptions{})
	require.NoError(t, err)
	require.Len(t, batch.Results, 4)
	assert.Equal(t, 3, batch.Succeeded)
	assert.Equal(t, 1, batch.Failed)

	assert.Equal(t, a.ID, batch.Results[0].MeshID)
	assert.Equal(t, 12, batch.Results[0].Summary.Linked)
	assert.Equal(t, b.ID, batch.Results[1].MeshID)
	assert.Equal(t, 1, batch.Results[1].Summary.Linked)
	assert.Equal(t, "missing", batch.Results[2].MeshID)
	assert.Equal(t, dto.GenerationStatusFailed, batch.Results[2].Status)
	assert.Contains(t, batch.Results[2].Error, "mesh not found")
	assert.Equal(t, 0, batch.Results[3].Summary.Linked)

	stored, err := repo.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, stored.FlowLinks, 12)
}

func TestFlowLinkService_GenerateBatchErrors(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.GenerateBatch(ctx, nil, dto.GenerateOptions{})
	assert.ErrorIs(t, err, dto.ErrEmptyBatch)

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	_, err = svc.GenerateBatch(cctx, []string{"a", "b"}, dto.GenerateOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFlowLinkService_Links(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()
	g := storeGrid(t, repo, 2, 1)

	links, err := svc.Links(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, links.Count)
	assert.Empty(t, links.Links)

	_, err = svc.Generate(ctx, &dto.GenerateRequest{MeshID: g.ID})
	require.NoError(t, err)

	links, err = svc.Links(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, links.Count)
	assert.Equal(t, []dto.FlowLink{{CellFrom: 0, CellTo: 1, EdgeIndex: 5, VertexFrom: 1, VertexTo: 4}}, links.Links)

	_, err = svc.Links(ctx, "")
	assert.ErrorIs(t, err, dto.ErrMissingMeshID)
}

func TestDistinct(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, distinct([]string{"a", "b", "a", "c", "b"}))
	assert.Empty(t, distinct(nil))
}
