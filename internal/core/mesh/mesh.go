// Package mesh provides the core unstructured grid entities
// with zero external dependencies beyond identifier generation.
package mesh

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Mesh is an unstructured 2D grid of vertices, edges and cells together with
// the flow links derived from it.
//
// VertexToCells is owned by the mesh and is rebuilt whenever the cells are
// replaced through the mesh's methods. Callers that assign Cells directly must
// call BuildVertexToCellIndex themselves.
type Mesh struct {
	ID               string     `json:"id" msgpack:"id"`
	Name             string     `json:"name" msgpack:"name"`
	CoordinateSystem string     `json:"coordinate_system,omitempty" msgpack:"coordinate_system,omitempty"`
	Vertices         []Vertex   `json:"vertices" msgpack:"vertices"`
	Edges            []Edge     `json:"edges" msgpack:"edges"`
	Cells            []Cell     `json:"cells" msgpack:"cells"`
	FlowLinks        []FlowLink `json:"flow_links,omitempty" msgpack:"flow_links,omitempty"`
	CreatedAt        time.Time  `json:"created_at" msgpack:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" msgpack:"updated_at"`

	VertexToCells VertexToCellIndex `json:"-" msgpack:"-"`
}

// Envelope is an axis aligned bounding box.
type Envelope struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// Width of the envelope.
func (e Envelope) Width() float64 { return e.MaxX - e.MinX }

// Height of the envelope.
func (e Envelope) Height() float64 { return e.MaxY - e.MinY }

// New creates a mesh with a fresh ID and a populated vertex to cell index.
func New(name string, vertices []Vertex, edges []Edge, cells []Cell) *Mesh {
	now := time.Now()
	m := &Mesh{
		ID:        uuid.NewString(),
		Name:      name,
		Vertices:  vertices,
		Edges:     edges,
		Cells:     cells,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.BuildVertexToCellIndex()
	return m
}

// Validate ensures mesh entity integrity.
// Index ranges are checked by validation.ValidateMesh.
func (m *Mesh) Validate() error {
	if m.Name == "" {
		return ErrInvalidMeshName
	}
	for _, e := range m.Edges {
		if err := e.Validate(); err != nil {
			return err
		}
	}
	for _, c := range m.Cells {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	for _, l := range m.FlowLinks {
		if l.CellFromIndex < 0 || l.CellToIndex < 0 {
			return ErrNegativeCellIndex
		}
	}
	return nil
}

// BuildVertexToCellIndex recomputes VertexToCells from Cells.
func (m *Mesh) BuildVertexToCellIndex() {
	m.VertexToCells = BuildVertexToCellIndex(m.Cells)
}

// AppendFlowLinks adds links to the flow-link collection.
func (m *Mesh) AppendFlowLinks(links ...FlowLink) {
	if len(links) == 0 {
		return
	}
	m.FlowLinks = append(m.FlowLinks, links...)
	m.UpdatedAt = time.Now()
}

// ClearFlowLinks removes all flow links.
func (m *Mesh) ClearFlowLinks() {
	m.FlowLinks = nil
	m.UpdatedAt = time.Now()
}

// ResetState replaces the topology in place, keeping the mesh identity.
func (m *Mesh) ResetState(vertices []Vertex, edges []Edge, cells []Cell, links []FlowLink) {
	m.Vertices = vertices
	m.Edges = edges
	m.Cells = cells
	m.FlowLinks = links
	m.BuildVertexToCellIndex()
	m.UpdatedAt = time.Now()
}

// Extent returns the bounding box of all vertices. An empty mesh yields the zero envelope.
func (m *Mesh) Extent() Envelope {
	if len(m.Vertices) == 0 {
		return Envelope{}
	}
	env := Envelope{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
	for _, v := range m.Vertices {
		env.MinX = math.Min(env.MinX, v.X)
		env.MinY = math.Min(env.MinY, v.Y)
		env.MaxX = math.Max(env.MaxX, v.X)
		env.MaxY = math.Max(env.MaxY, v.Y)
	}
	return env
}

// IsEmpty reports whether the mesh has no vertices.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// Clone returns a deep copy of the mesh, including its vertex to cell index.
func (m *Mesh) Clone() *Mesh {
	if m == nil {
		return nil
	}
	c := *m
	c.Vertices = append([]Vertex(nil), m.Vertices...)
	c.Edges = append([]Edge(nil), m.Edges...)
	c.FlowLinks = append([]FlowLink(nil), m.FlowLinks...)
	if m.Cells != nil {
		c.Cells = make([]Cell, len(m.Cells))
		for i, cell := range m.Cells {
			c.Cells[i] = Cell{VertexIndices: append([]int(nil), cell.VertexIndices...)}
		}
	}
	if m.VertexToCells != nil {
		c.VertexToCells = make(VertexToCellIndex, len(m.VertexToCells))
		for v, cells := range m.VertexToCells {
			c.VertexToCells[v] = append([]int(nil), cells...)
		}
	}
	return &c
}
