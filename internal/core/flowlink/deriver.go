// Package flowlink derives flow links between adjacent cells of an
// unstructured mesh.
//
// A flow link is emitted for an edge when exactly two distinct cells are
// incident to both of its endpoints. Boundary edges (one cell) and
// non-manifold edges (three or more cells) produce no link; that is a normal
// outcome, not an error. The package never logs; callers use the returned
// Summary for diagnostics.
package flowlink

import (
	"github.com/Deltares-research/DHYDROGUI-sub073/internal/core/mesh"
)

// Outcome classifies what the deriver concluded for one edge.
type Outcome int

const (
	// Linked means exactly two cells share the edge and a link was produced.
	Linked Outcome = iota
	// Unindexed means an endpoint has no incident cells recorded.
	Unindexed
	// Disjoint means both endpoints have cells but none are shared.
	Disjoint
	// Boundary means exactly one cell shares the edge.
	Boundary
	// NonManifold means three or more cells share the edge.
	NonManifold
)

func (o Outcome) String() string {
	switch o {
	case Linked:
		return "linked"
	case Unindexed:
		return "unindexed"
	case Disjoint:
		return "disjoint"
	case Boundary:
		return "boundary"
	case NonManifold:
		return "non_manifold"
	default:
		return "unknown"
	}
}

// Summary counts edge outcomes of one GenerateFlowLinks call.
type Summary struct {
	Edges       int `json:"edges"`
	Linked      int `json:"linked"`
	Unindexed   int `json:"unindexed"`
	Disjoint    int `json:"disjoint"`
	Boundary    int `json:"boundary"`
	NonManifold int `json:"non_manifold"`
}

// Skipped is the number of edges that produced no link.
func (s Summary) Skipped() int {
	return s.Edges - s.Linked
}

func (s *Summary) add(o Outcome) {
	s.Edges++
	switch o {
	case Linked:
		s.Linked++
	case Unindexed:
		s.Unindexed++
	case Disjoint:
		s.Disjoint++
	case Boundary:
		s.Boundary++
	case NonManifold:
		s.NonManifold++
	}
}

// GenerateFlowLinks derives a flow link for every qualifying edge of m and
// appends them, in edge order, to m.FlowLinks. Existing links are kept, so a
// second call without m.ClearFlowLinks duplicates them.
//
// Only a nil mesh is an error.
func GenerateFlowLinks(m *mesh.Mesh) (Summary, error) {
	var summary Summary
	if m == nil {
		return summary, mesh.NewArgumentError("mesh", "cannot be nil")
	}

	links := make([]mesh.FlowLink, 0, len(m.Edges)/2)
	for i, edge := range m.Edges {
		link, outcome := DeriveLinksForEdge(i, edge, m.VertexToCells)
		summary.add(outcome)
		if outcome == Linked {
			links = append(links, link)
		}
	}
	m.AppendFlowLinks(links...)
	return summary, nil
}

// DeriveLinksForEdge computes the link across edge using the adjacency index.
// The returned link is only meaningful when the outcome is Linked; cellOne is
// the first shared cell found scanning the from-vertex cells, cellTwo the second.
func DeriveLinksForEdge(edgeIndex int, edge mesh.Edge, index mesh.VertexToCellIndex) (mesh.FlowLink, Outcome) {
	fromCells, ok := index.CellsAt(edge.VertexFromIndex)
	if !ok {
		return mesh.FlowLink{}, Unindexed
	}
	toCells, ok := index.CellsAt(edge.VertexToIndex)
	if !ok {
		return mesh.FlowLink{}, Unindexed
	}

	var shared [2]int
	n := 0
	for _, f := range fromCells {
		if !contains(toCells, f) || (n > 0 && shared[0] == f) || (n > 1 && shared[1] == f) {
			continue
		}
		if n == len(shared) {
			return mesh.FlowLink{}, NonManifold
		}
		shared[n] = f
		n++
	}

	switch n {
	case 0:
		return mesh.FlowLink{}, Disjoint
	case 1:
		return mesh.FlowLink{}, Boundary
	default:
		return mesh.NewFlowLink(shared[0], shared[1], edgeIndex, edge), Linked
	}
}

// contains is a linear scan; incident cell lists are a handful of entries.
func contains(cells []int, c int) bool {
	for _, x := range cells {
		if x == c {
			return true
		}
	}
	return false
}
