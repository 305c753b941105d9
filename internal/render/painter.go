// Package render draws snake snapshots onto anything that can fill rectangles.
package render

import (
	"fmt"
	"image/color"

	"gridsnake/internal/snake"
)

// Surface is a drawing target with a current fill color.
type Surface interface {
	SetFill(c color.RGBA)
	FillRect(x, y, w, h int)
}

// Palette holds the colors used by a Painter.
type Palette struct {
	Background color.RGBA
	Body       color.RGBA
	Head       color.RGBA
	Food       color.RGBA
}

// DefaultPalette is white background, green snake with a darker head and orange food.
var DefaultPalette = Palette{
	Background: MustHex("#ffffff"),
	Body:       MustHex("#4CAF50"),
	Head:       MustHex("#2E7D32"),
	Food:       MustHex("#FF5722"),
}

// Painter draws snapshots with a palette.
type Painter struct {
	Palette Palette
}

// NewPainter returns a painter using DefaultPalette.
func NewPainter() Painter {
	return Painter{Palette: DefaultPalette}
}

// Draw clears the surface and paints the snake and food. Every cell is drawn one pixel
// smaller than the cell size so the grid lines show through.
func (p Painter) Draw(s Surface, snap snake.Snapshot) {
	g := snap.Grid
	s.SetFill(p.Palette.Background)
	s.FillRect(0, 0, g.SurfacePx, g.SurfacePx)
	if g.CellSize <= 0 {
		return
	}
	s.SetFill(p.Palette.Body)
	for _, c := range snap.Cells {
		fillCell(s, g, c)
	}
	if len(snap.Cells) > 0 {
		s.SetFill(p.Palette.Head)
		fillCell(s, g, snap.Cells[0])
	}
	if snap.HasFood {
		s.SetFill(p.Palette.Food)
		fillCell(s, g, snap.Food)
	}
}

func fillCell(s Surface, g snake.Grid, c snake.Cell) {
	s.FillRect(c.X*g.CellSize, c.Y*g.CellSize, g.CellSize-1, g.CellSize-1)
}

// Hex formats c as #rrggbb.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseHex parses #rrggbb or #rgb into an opaque color.
func ParseHex(s string) (color.RGBA, error) {
	c := color.RGBA{A: 0xff}
	var err error
	switch len(s) {
	case 7:
		_, err = fmt.Sscanf(s, "#%2x%2x%2x", &c.R, &c.G, &c.B)
	case 4:
		_, err = fmt.Sscanf(s, "#%1x%1x%1x", &c.R, &c.G, &c.B)
		c.R *= 17
		c.G *= 17
		c.B *= 17
	default:
		err = fmt.Errorf("render: bad color %q", s)
	}
	return c, err
}

// MustHex is ParseHex for constants.
func MustHex(s string) color.RGBA {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}
