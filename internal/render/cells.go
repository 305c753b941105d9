package render

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Cells is a Surface for terminals. Pixels are scaled down to one character cell per
// board cell, and each cell is printed as two spaces with a background color.
type Cells struct {
	scale  int
	dim    int
	fill   color.RGBA
	grid   [][]color.RGBA
	styles map[color.RGBA]lipgloss.Style
}

// NewCells creates a dim x dim surface where scale pixels map to one cell.
func NewCells(dim, scale int) *Cells {
	if scale < 1 {
		scale = 1
	}
	grid := make([][]color.RGBA, dim)
	for i := range grid {
		grid[i] = make([]color.RGBA, dim)
	}
	return &Cells{scale: scale, dim: dim, grid: grid, styles: make(map[color.RGBA]lipgloss.Style)}
}

func (c *Cells) SetFill(col color.RGBA) {
	c.fill = col
}

// FillRect fills every cell the rectangle touches. Rectangles narrower than a cell
// still fill the cell at their origin.
func (c *Cells) FillRect(x, y, w, h int) {
	x0, y0 := x/c.scale, y/c.scale
	x1, y1 := x0, y0
	if w > 0 {
		x1 = (x + w - 1) / c.scale
	}
	if h > 0 {
		y1 = (y + h - 1) / c.scale
	}
	for cy := max(y0, 0); cy <= y1 && cy < c.dim; cy++ {
		for cx := max(x0, 0); cx <= x1 && cx < c.dim; cx++ {
			c.grid[cy][cx] = c.fill
		}
	}
}

// At returns the color of a cell.
func (c *Cells) At(x, y int) color.RGBA {
	return c.grid[y][x]
}

// String renders the grid one row per line.
func (c *Cells) String() string {
	var b strings.Builder
	for y, row := range c.grid {
		if y > 0 {
			b.WriteByte('\n')
		}
		for _, col := range row {
			b.WriteString(c.style(col).Render("  "))
		}
	}
	return b.String()
}

func (c *Cells) style(col color.RGBA) lipgloss.Style {
	st, ok := c.styles[col]
	if !ok {
		st = lipgloss.NewStyle().Background(lipgloss.Color(Hex(col)))
		c.styles[col] = st
	}
	return st
}
