package snake

import "errors"

// DefaultCellTarget is the approximate number of cells along one side of the board.
const DefaultCellTarget = 20

// ErrInvalidSurface is returned when a drawing surface has no usable area.
var ErrInvalidSurface = errors.New("surface size must be positive")

// Grid maps a square drawing surface onto a square board of Dimension x Dimension cells.
type Grid struct {
	SurfacePx int
	CellSize  int
	Dimension int
}

// ComputeGrid derives the cell size and board dimension for a square surface.
// A surface smaller than target still gets one pixel per cell.
func ComputeGrid(surfacePx, target int) Grid {
	if surfacePx <= 0 {
		return Grid{}
	}
	if target <= 0 {
		target = DefaultCellTarget
	}
	cellSize := surfacePx / target
	if cellSize < 1 {
		cellSize = 1
	}
	return Grid{
		SurfacePx: surfacePx,
		CellSize:  cellSize,
		Dimension: surfacePx / cellSize,
	}
}

// Contains reports whether c lies on the board.
func (g Grid) Contains(c Cell) bool {
	return c.X >= 0 && c.X < g.Dimension && c.Y >= 0 && c.Y < g.Dimension
}

// Capacity is the number of cells on the board.
func (g Grid) Capacity() int {
	return g.Dimension * g.Dimension
}
