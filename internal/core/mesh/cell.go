package mesh

// Vertex is a mesh node. Its identity is its position in Mesh.Vertices.
type Vertex struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
	Z float64 `json:"z,omitempty" msgpack:"z,omitempty"`
}

// Cell is a polygon described by an ordered ring of vertex indices.
type Cell struct {
	VertexIndices []int `json:"vertices" msgpack:"vertices"`
}

// NewCell creates a cell from an ordered list of vertex indices.
func NewCell(vertexIndices ...int) Cell {
	return Cell{VertexIndices: vertexIndices}
}

// Validate ensures cell integrity
func (c Cell) Validate() error {
	for _, v := range c.VertexIndices {
		if v < 0 {
			return ErrNegativeVertexIndex
		}
	}
	return nil
}

// VertexToCellIndex maps a vertex index to the cells incident to it.
// Each cell list holds distinct cell indices in ascending order of discovery.
type VertexToCellIndex map[int][]int

// CellsAt returns the cells incident to vertex v and whether any were recorded.
func (x VertexToCellIndex) CellsAt(v int) ([]int, bool) {
	cells, ok := x[v]
	return cells, ok && len(cells) > 0
}

// BuildVertexToCellIndex derives the vertex to cell adjacency for cells.
// A vertex repeated inside one cell records that cell once.
func BuildVertexToCellIndex(cells []Cell) VertexToCellIndex {
	index := make(VertexToCellIndex)
	for ci, cell := range cells {
		for _, v := range cell.VertexIndices {
			list := index[v]
			if n := len(list); n > 0 && list[n-1] == ci {
				continue
			}
			index[v] = append(list, ci)
		}
	}
	return index
}
