package mesh

// Comparison tells which parts of two meshes are equal.
type Comparison struct {
	VerticesEqual bool
	CellsEqual    bool
	LinksEqual    bool
}

// Equal reports whether vertices, cells and links all match.
func (c Comparison) Equal() bool {
	return c.VerticesEqual && c.CellsEqual && c.LinksEqual
}

// Compare reports which parts of a and b are equal. Two nil meshes are equal;
// a nil and a non-nil mesh are equal only where the non-nil part is empty.
func Compare(a, b *Mesh) Comparison {
	if a == b {
		return Comparison{VerticesEqual: true, CellsEqual: true, LinksEqual: true}
	}
	if a == nil {
		a = &Mesh{}
	}
	if b == nil {
		b = &Mesh{}
	}
	return Comparison{
		VerticesEqual: verticesEqual(a.Vertices, b.Vertices),
		CellsEqual:    cellsEqual(a.Cells, b.Cells),
		LinksEqual:    linksEqual(a.FlowLinks, b.FlowLinks),
	}
}

func verticesEqual(a, b []Vertex) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func cellsEqual(a, b []Cell) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		va, vb := a[i].VertexIndices, b[i].VertexIndices
		if len(va) != len(vb) {
			return false
		}
		for j := range va {
			if va[j] != vb[j] {
				return false
			}
		}
	}
	return true
}

func linksEqual(a, b []FlowLink) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
