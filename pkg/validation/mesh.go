package validation

import (
	"fmt"

	"github.com/Deltares-research/DHYDROGUI-sub073/internal/core/mesh"
)

// MeshValidationOptions controls optional validation checks.
type MeshValidationOptions struct {
	// RejectDuplicateEdges fails when two edges join the same vertex pair in
	// either direction.
	RejectDuplicateEdges bool
	// CheckIndex verifies that VertexToCells matches the cells.
	CheckIndex bool
}

// ValidateMesh performs structural validation on a mesh. It is intended for
// meshes loaded from files or requests, where references between vertices,
// edges, cells and flow links have not been checked.
func ValidateMesh(m *mesh.Mesh, opts ...MeshValidationOptions) error {
	if m == nil {
		return ErrNilMesh
	}
	if err := m.Validate(); err != nil {
		return err
	}

	var cfg MeshValidationOptions
	if len(opts) > 0 {
		cfg = opts[0]
	}

	nv := len(m.Vertices)
	type pair struct{ a, b int }
	seen := make(map[pair]struct{}, len(m.Edges))
	for i, e := range m.Edges {
		if e.VertexFromIndex >= nv || e.VertexToIndex >= nv {
			return &IndexError{Kind: "edge", Index: i, Err: ErrEdgeVertexOutOfRange}
		}
		if e.IsDegenerate() {
			return &IndexError{Kind: "edge", Index: i, Err: ErrDegenerateEdge}
		}
		if cfg.RejectDuplicateEdges {
			k := pair{e.VertexFromIndex, e.VertexToIndex}
			if k.a > k.b {
				k.a, k.b = k.b, k.a
			}
			if _, dup := seen[k]; dup {
				return &IndexError{Kind: "edge", Index: i, Err: ErrDuplicateEdge}
			}
			seen[k] = struct{}{}
		}
	}

	for i, c := range m.Cells {
		if len(c.VertexIndices) < 3 {
			return &IndexError{Kind: "cell", Index: i, Err: ErrCellTooSmall}
		}
		for _, v := range c.VertexIndices {
			if v >= nv {
				return &IndexError{Kind: "cell", Index: i, Err: ErrCellVertexOutOfRange}
			}
		}
	}

	nc, ne := len(m.Cells), len(m.Edges)
	for i, l := range m.FlowLinks {
		if l.CellFromIndex >= nc || l.CellToIndex >= nc {
			return &IndexError{Kind: "flow link", Index: i, Err: ErrLinkCellOutOfRange}
		}
		if l.EdgeIndex < 0 || l.EdgeIndex >= ne {
			return &IndexError{Kind: "flow link", Index: i, Err: ErrLinkEdgeOutOfRange}
		}
	}

	if cfg.CheckIndex {
		return checkIndex(m)
	}
	return nil
}

func checkIndex(m *mesh.Mesh) error {
	if m.VertexToCells == nil && len(m.Cells) > 0 {
		return ErrMissingVertexCellIdx
	}
	want := mesh.BuildVertexToCellIndex(m.Cells)
	if len(want) != len(m.VertexToCells) {
		return ErrStaleVertexCellIndex
	}
	for v, cells := range want {
		got := m.VertexToCells[v]
		if len(got) != len(cells) {
			return ErrStaleVertexCellIndex
		}
		for i := range cells {
			if got[i] != cells[i] {
				return ErrStaleVertexCellIndex
			}
		}
	}
	return nil
}

// ValidateStorable checks that m can be handed to a repository: it must be
// non-nil, carry an ID and pass ValidateMesh.
func ValidateStorable(m *mesh.Mesh) error {
	if m == nil {
		return mesh.NewArgumentError("mesh", "cannot be nil")
	}
	if m.ID == "" {
		return mesh.ErrMissingMeshID
	}
	if err := ValidateMesh(m); err != nil {
		return fmt.Errorf("invalid mesh: %w", err)
	}
	return nil
}
