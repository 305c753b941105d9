package render

import (
	"fmt"
	"image/color"
	"strings"
)

// SVG is a Surface that records rectangles as SVG markup.
type SVG struct {
	size int
	fill string
	b    strings.Builder
}

// NewSVG creates an empty size x size pixel SVG surface.
func NewSVG(size int) *SVG {
	return &SVG{size: size, fill: "#000000"}
}

func (s *SVG) SetFill(c color.RGBA) {
	s.fill = Hex(c)
}

func (s *SVG) FillRect(x, y, w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	fmt.Fprintf(&s.b, `<rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>`, x, y, w, h, s.fill)
}

// String returns the complete SVG document.
func (s *SVG) String() string {
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" id="board" width="%d" height="%d" viewBox="0 0 %d %d">%s</svg>`,
		s.size, s.size, s.size, s.size, s.b.String())
}
