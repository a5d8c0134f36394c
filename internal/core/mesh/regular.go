package mesh

import "fmt"

// NewRegularGrid builds a rectangular grid of cellsX by cellsY quadrilateral
// cells with spacing dx, dy, origin at (0, 0).
//
// Vertices are numbered row by row from the origin, cells row-major so that
// cell (col, row) has index row*cellsX+col. Horizontal edges come first, then
// vertical edges, each row by row.
func NewRegularGrid(cellsX, cellsY int, dx, dy float64) (*Mesh, error) {
	if cellsX < 1 || cellsY < 1 {
		return nil, ErrInvalidGridSize
	}
	if dx <= 0 || dy <= 0 {
		return nil, ErrInvalidCellSize
	}

	nx := cellsX + 1
	vertexAt := func(col, row int) int { return row*nx + col }

	vertices := make([]Vertex, 0, nx*(cellsY+1))
	for row := 0; row <= cellsY; row++ {
		for col := 0; col <= cellsX; col++ {
			vertices = append(vertices, Vertex{X: float64(col) * dx, Y: float64(row) * dy})
		}
	}

	edges := make([]Edge, 0, cellsX*(cellsY+1)+nx*cellsY)
	for row := 0; row <= cellsY; row++ {
		for col := 0; col < cellsX; col++ {
			edges = append(edges, NewEdge(vertexAt(col, row), vertexAt(col+1, row)))
		}
	}
	for row := 0; row < cellsY; row++ {
		for col := 0; col <= cellsX; col++ {
			edges = append(edges, NewEdge(vertexAt(col, row), vertexAt(col, row+1)))
		}
	}

	cells := make([]Cell, 0, cellsX*cellsY)
	for row := 0; row < cellsY; row++ {
		for col := 0; col < cellsX; col++ {
			cells = append(cells, NewCell(
				vertexAt(col, row),
				vertexAt(col+1, row),
				vertexAt(col+1, row+1),
				vertexAt(col, row+1),
			))
		}
	}

	name := fmt.Sprintf("regular-%dx%d", cellsX, cellsY)
	return New(name, vertices, edges, cells), nil
}
