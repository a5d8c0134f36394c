package validation

import (
	"github.com/Deltares-research/DHYDROGUI-sub073/internal/core/mesh"
)

// MeshDocument is the external representation of a mesh accepted by the
// API and CLI. Flow links are never accepted from outside; they are derived.
type MeshDocument struct {
	Name             string           `json:"name" validate:"required,max=200,mesh_name"`
	CoordinateSystem string           `json:"coordinate_system,omitempty" validate:"omitempty,crs"`
	Vertices         []VertexDocument `json:"vertices" validate:"required,min=1,dive"`
	Edges            []EdgeDocument   `json:"edges" validate:"dive"`
	Cells            []CellDocument   `json:"cells" validate:"dive"`
}

// VertexDocument is a vertex coordinate.
type VertexDocument struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z,omitempty"`
}

// EdgeDocument references two vertices by index.
type EdgeDocument struct {
	From int `json:"from" validate:"min=0"`
	To   int `json:"to" validate:"min=0,nefield=From"`
}

// CellDocument lists the vertices of a cell in ring order.
type CellDocument struct {
	Vertices []int `json:"vertices" validate:"min=3,dive,min=0"`
}

// ToMesh validates the document and converts it into a mesh with a fresh ID
// and a built vertex to cell index.
func (d *MeshDocument) ToMesh() (*mesh.Mesh, error) {
	if err := ValidateStruct(d); err != nil {
		return nil, err
	}

	vertices := make([]mesh.Vertex, len(d.Vertices))
	for i, v := range d.Vertices {
		vertices[i] = mesh.Vertex{X: v.X, Y: v.Y, Z: v.Z}
	}
	edges := make([]mesh.Edge, len(d.Edges))
	for i, e := range d.Edges {
		edges[i] = mesh.NewEdge(e.From, e.To)
	}
	cells := make([]mesh.Cell, len(d.Cells))
	for i, c := range d.Cells {
		cells[i] = mesh.NewCell(append([]int(nil), c.Vertices...)...)
	}

	m := mesh.New(d.Name, vertices, edges, cells)
	m.CoordinateSystem = d.CoordinateSystem
	if err := ValidateMesh(m); err != nil {
		return nil, err
	}
	return m, nil
}

// DocumentFromMesh converts a mesh back to its external representation.
func DocumentFromMesh(m *mesh.Mesh) MeshDocument {
	d := MeshDocument{
		Name:             m.Name,
		CoordinateSystem: m.CoordinateSystem,
		Vertices:         make([]VertexDocument, len(m.Vertices)),
		Edges:            make([]EdgeDocument, len(m.Edges)),
		Cells:            make([]CellDocument, len(m.Cells)),
	}
	for i, v := range m.Vertices {
		d.Vertices[i] = VertexDocument{X: v.X, Y: v.Y, Z: v.Z}
	}
	for i, e := range m.Edges {
		d.Edges[i] = EdgeDocument{From: e.VertexFromIndex, To: e.VertexToIndex}
	}
	for i, c := range m.Cells {
		d.Cells[i] = CellDocument{Vertices: append([]int(nil), c.VertexIndices...)}
	}
	return d
}
