package meshrepo

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Deltares-research/DHYDROGUI-sub073/internal/core/mesh"
	"github.com/Deltares-research/DHYDROGUI-sub073/pkg/validation"
)

func grid(t *testing.T) *mesh.Mesh {
	t.Helper()
	m, err := mesh.NewRegularGrid(2, 2, 1, 1)
	require.NoError(t, err)
	return m
}

func TestInMemoryMeshRepository_Get_NotFound(t *testing.T) {
	repo := NewInMemoryMeshRepository()

	m, err := repo.Get(context.Background(), "does-not-exist")
	assert.Nil(t, m)
	assert.ErrorIs(t, err, mesh.ErrMeshNotFound)
}

func TestInMemoryMeshRepository_SaveAndGet(t *testing.T) {
	repo := NewInMemoryMeshRepository()
	m := grid(t)

	require.NoError(t, repo.Save(context.Background(), m))

	loaded, err := repo.Get(context.Background(), m.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, m, loaded)
	assert.NotSame(t, m, loaded)
	assert.Equal(t, 1, repo.Len())
}

func TestInMemoryMeshRepository_CopiesAreIndependent(t *testing.T) {
	repo := NewInMemoryMeshRepository()
	m := grid(t)
	require.NoError(t, repo.Save(context.Background(), m))

	// Changing the caller's mesh after Save does not leak into storage
	m.AppendFlowLinks(mesh.NewFlowLink(0, 1, 0, m.Edges[0]))

	loaded, err := repo.Get(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Empty(t, loaded.FlowLinks)

	// Nor does changing a loaded copy
	loaded.Cells[0].VertexIndices[0] = 99
	again, err := repo.Get(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, again.Cells[0].VertexIndices[0])
}

func TestInMemoryMeshRepository_SaveRebuildsIndex(t *testing.T) {
	repo := NewInMemoryMeshRepository()
	m := grid(t)
	m.VertexToCells = nil

	require.NoError(t, repo.Save(context.Background(), m))
	loaded, err := repo.Get(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, mesh.BuildVertexToCellIndex(m.Cells), loaded.VertexToCells)
}

func TestInMemoryMeshRepository_SaveInvalid(t *testing.T) {
	repo := NewInMemoryMeshRepository()
	ctx := context.Background()

	err := repo.Save(ctx, nil)
	assert.ErrorIs(t, err, mesh.ErrInvalidArgument)

	noID := grid(t)
	noID.ID = ""
	assert.ErrorIs(t, repo.Save(ctx, noID), mesh.ErrMissingMeshID)

	badEdge := grid(t)
	badEdge.Edges = append(badEdge.Edges, mesh.NewEdge(0, 42))
	assert.ErrorIs(t, repo.Save(ctx, badEdge), validation.ErrEdgeVertexOutOfRange)

	assert.Equal(t, 0, repo.Len())
}

func TestInMemoryMeshRepository_ListAndDelete(t *testing.T) {
	repo := NewInMemoryMeshRepository()
	ctx := context.Background()

	ids := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		m := grid(t)
		m.Name = fmt.Sprintf("grid-%d", i)
		require.NoError(t, repo.Save(ctx, m))
		ids = append(ids, m.ID)
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 3)

	require.NoError(t, repo.Delete(ctx, ids[1]))
	assert.ErrorIs(t, repo.Delete(ctx, ids[1]), mesh.ErrMeshNotFound)

	list, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestInMemoryMeshRepository_Concurrent(t *testing.T) {
	repo := NewInMemoryMeshRepository()
	ctx := context.Background()
	m := grid(t)
	require.NoError(t, repo.Save(ctx, m))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			loaded, err := repo.Get(ctx, m.ID)
			if !assert.NoError(t, err) {
				return
			}
			loaded.ClearFlowLinks()
			assert.NoError(t, repo.Save(ctx, loaded))
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, repo.Len())
}
