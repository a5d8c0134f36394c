// Package mesh provides edge and flow link definitions
package mesh

// Edge connects two vertices of a mesh by index.
type Edge struct {
	VertexFromIndex int `json:"vertex_from" msgpack:"vertex_from"`
	VertexToIndex   int `json:"vertex_to" msgpack:"vertex_to"`
}

// NewEdge creates an edge between two vertex indices.
func NewEdge(from, to int) Edge {
	return Edge{VertexFromIndex: from, VertexToIndex: to}
}

// Validate ensures edge integrity
func (e Edge) Validate() error {
	if e.VertexFromIndex < 0 || e.VertexToIndex < 0 {
		return ErrNegativeVertexIndex
	}
	return nil
}

// IsDegenerate reports whether both endpoints are the same vertex.
func (e Edge) IsDegenerate() bool {
	return e.VertexFromIndex == e.VertexToIndex
}

// FlowLink connects the two cells on either side of an edge.
// Flow links are created by the deriver only and are never mutated.
type FlowLink struct {
	CellFromIndex int  `json:"cell_from" msgpack:"cell_from"`
	CellToIndex   int  `json:"cell_to" msgpack:"cell_to"`
	EdgeIndex     int  `json:"edge_index" msgpack:"edge_index"`
	Edge          Edge `json:"edge" msgpack:"edge"`
}

// NewFlowLink creates a flow link from cellFrom to cellTo across the edge at edgeIndex.
func NewFlowLink(cellFrom, cellTo, edgeIndex int, edge Edge) FlowLink {
	return FlowLink{
		CellFromIndex: cellFrom,
		CellToIndex:   cellTo,
		EdgeIndex:     edgeIndex,
		Edge:          edge,
	}
}

// Cells returns the cell pair of the link.
func (l FlowLink) Cells() (int, int) {
	return l.CellFromIndex, l.CellToIndex
}
