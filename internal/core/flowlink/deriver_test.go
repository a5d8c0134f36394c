package flowlink

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Deltares-research/DHYDROGUI-sub073/internal/core/mesh"
)

type cellPair struct{ from, to int }

func pairs(links []mesh.FlowLink) []cellPair {
	out := make([]cellPair, 0, len(links))
	for _, l := range links {
		out = append(out, cellPair{l.CellFromIndex, l.CellToIndex})
	}
	return out
}

func TestGenerateFlowLinks_RegularGrid3x3(t *testing.T) {
	m, err := mesh.NewRegularGrid(3, 3, 1, 1)
	require.NoError(t, err)
	require.Len(t, m.Cells, 9)

	summary, err := GenerateFlowLinks(m)
	require.NoError(t, err)

	expected := []cellPair{
		{0, 1}, {0, 3}, {1, 2}, {1, 4}, {2, 5}, {3, 4},
		{3, 6}, {4, 5}, {4, 7}, {5, 8}, {6, 7}, {7, 8},
	}
	assert.Len(t, m.FlowLinks, 12)
	assert.ElementsMatch(t, expected, pairs(m.FlowLinks))

	assert.Equal(t, len(m.Edges), summary.Edges)
	assert.Equal(t, 12, summary.Linked)
	assert.Equal(t, 12, summary.Boundary, "outer ring of a 3x3 grid has 12 edges")
	assert.Equal(t, 0, summary.NonManifold)
	assert.Equal(t, 12, summary.Skipped())
}

func TestGenerateFlowLinks_LinksReferenceTheirEdge(t *testing.T) {
	m, err := mesh.NewRegularGrid(2, 1, 1, 1)
	require.NoError(t, err)

	_, err = GenerateFlowLinks(m)
	require.NoError(t, err)
	require.Len(t, m.FlowLinks, 1)

	link := m.FlowLinks[0]
	assert.Equal(t, m.Edges[link.EdgeIndex], link.Edge)
	assert.Equal(t, cellPair{0, 1}, cellPair{link.CellFromIndex, link.CellToIndex})
	// shared edge is the vertical edge at x=1
	assert.Equal(t, 1.0, m.Vertices[link.Edge.VertexFromIndex].X)
	assert.Equal(t, 1.0, m.Vertices[link.Edge.VertexToIndex].X)
}

func TestGenerateFlowLinks_FollowsEdgeOrder(t *testing.T) {
	m, err := mesh.NewRegularGrid(4, 3, 2, 2)
	require.NoError(t, err)

	_, err = GenerateFlowLinks(m)
	require.NoError(t, err)

	for i := 1; i < len(m.FlowLinks); i++ {
		assert.Less(t, m.FlowLinks[i-1].EdgeIndex, m.FlowLinks[i].EdgeIndex)
	}
}

func TestGenerateFlowLinks_AdditiveOnSecondCall(t *testing.T) {
	m, err := mesh.NewRegularGrid(3, 3, 1, 1)
	require.NoError(t, err)

	_, err = GenerateFlowLinks(m)
	require.NoError(t, err)
	first := len(m.FlowLinks)

	_, err = GenerateFlowLinks(m)
	require.NoError(t, err)
	assert.Equal(t, 2*first, len(m.FlowLinks))
	assert.Equal(t, m.FlowLinks[:first], m.FlowLinks[first:])

	m.ClearFlowLinks()
	_, err = GenerateFlowLinks(m)
	require.NoError(t, err)
	assert.Equal(t, first, len(m.FlowLinks))
}

func TestGenerateFlowLinks_DoesNotTouchTopology(t *testing.T) {
	m, err := mesh.NewRegularGrid(2, 2, 1, 1)
	require.NoError(t, err)
	before := m.Clone()

	_, err = GenerateFlowLinks(m)
	require.NoError(t, err)

	cmp := mesh.Compare(before, m)
	assert.True(t, cmp.VerticesEqual)
	assert.True(t, cmp.CellsEqual)
	assert.False(t, cmp.LinksEqual)
	assert.Equal(t, before.Edges, m.Edges)
	assert.Equal(t, before.VertexToCells, m.VertexToCells)
}

func TestGenerateFlowLinks_NilMesh(t *testing.T) {
	_, err := GenerateFlowLinks(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, mesh.ErrInvalidArgument)

	var argErr *mesh.ArgumentError
	require.True(t, errors.As(err, &argErr))
	assert.Equal(t, "mesh", argErr.Param)
}

func TestGenerateFlowLinks_EmptyMesh(t *testing.T) {
	m := mesh.New("empty", nil, nil, nil)

	summary, err := GenerateFlowLinks(m)
	require.NoError(t, err)
	assert.Empty(t, m.FlowLinks)
	assert.Equal(t, Summary{}, summary)
}

func TestDeriveLinksForEdge(t *testing.T) {
	tests := []struct {
		name    string
		edge    mesh.Edge
		index   mesh.VertexToCellIndex
		want    Outcome
		wantOne int
		wantTwo int
	}{
		{
			name:    "two shared cells",
			edge:    mesh.NewEdge(1, 2),
			index:   mesh.VertexToCellIndex{1: {4, 7}, 2: {7, 4}},
			want:    Linked,
			wantOne: 4,
			wantTwo: 7,
		},
		{
			name:    "order follows from-vertex cells",
			edge:    mesh.NewEdge(1, 2),
			index:   mesh.VertexToCellIndex{1: {9, 3, 5}, 2: {3, 9, 8}},
			want:    Linked,
			wantOne: 9,
			wantTwo: 3,
		},
		{
			name:    "duplicates in index count once",
			edge:    mesh.NewEdge(1, 2),
			index:   mesh.VertexToCellIndex{1: {0, 0, 1}, 2: {1, 0, 0}},
			want:    Linked,
			wantOne: 0,
			wantTwo: 1,
		},
		{
			name:  "single shared cell is a boundary",
			edge:  mesh.NewEdge(1, 2),
			index: mesh.VertexToCellIndex{1: {0, 1}, 2: {1, 2}},
			want:  Boundary,
		},
		{
			name:  "three shared cells are non-manifold",
			edge:  mesh.NewEdge(1, 2),
			index: mesh.VertexToCellIndex{1: {0, 1, 2}, 2: {2, 1, 0}},
			want:  NonManifold,
		},
		{
			name:  "no shared cells",
			edge:  mesh.NewEdge(1, 2),
			index: mesh.VertexToCellIndex{1: {0}, 2: {1}},
			want:  Disjoint,
		},
		{
			name:  "from vertex without cells",
			edge:  mesh.NewEdge(1, 2),
			index: mesh.VertexToCellIndex{2: {0, 1}},
			want:  Unindexed,
		},
		{
			name:  "to vertex with empty cell list",
			edge:  mesh.NewEdge(1, 2),
			index: mesh.VertexToCellIndex{1: {0, 1}, 2: {}},
			want:  Unindexed,
		},
		{
			name:  "nil index",
			edge:  mesh.NewEdge(1, 2),
			index: nil,
			want:  Unindexed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			link, outcome := DeriveLinksForEdge(3, tt.edge, tt.index)
			assert.Equal(t, tt.want, outcome, "outcome %s", outcome)
			if tt.want != Linked {
				assert.Equal(t, mesh.FlowLink{}, link)
				return
			}
			assert.Equal(t, tt.wantOne, link.CellFromIndex)
			assert.Equal(t, tt.wantTwo, link.CellToIndex)
			assert.Equal(t, 3, link.EdgeIndex)
			assert.Equal(t, tt.edge, link.Edge)
		})
	}
}

func TestGenerateFlowLinks_NonManifoldJunction(t *testing.T) {
	// three triangles hinged on the edge 0-1
	vertices := []mesh.Vertex{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0.5, Y: 1}, {X: 0.5, Y: -1}, {X: 0.5, Y: 0, Z: 1}}
	edges := []mesh.Edge{mesh.NewEdge(0, 1), mesh.NewEdge(1, 2), mesh.NewEdge(2, 0)}
	cells := []mesh.Cell{
		mesh.NewCell(0, 1, 2),
		mesh.NewCell(0, 1, 3),
		mesh.NewCell(0, 1, 4),
	}
	m := mesh.New("hinge", vertices, edges, cells)

	summary, err := GenerateFlowLinks(m)
	require.NoError(t, err)
	assert.Empty(t, m.FlowLinks)
	assert.Equal(t, 1, summary.NonManifold)
	assert.Equal(t, 2, summary.Boundary)
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "linked", Linked.String())
	assert.Equal(t, "boundary", Boundary.String())
	assert.Equal(t, "non_manifold", NonManifold.String())
	assert.Equal(t, "unindexed", Unindexed.String())
	assert.Equal(t, "disjoint", Disjoint.String())
	assert.Equal(t, "unknown", Outcome(42).String())
}
