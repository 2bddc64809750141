package render

import (
	"image/color"
	"strings"

	"github.com/example/cragmark/internal/canvas"
	"github.com/example/cragmark/internal/geometry"
)

// NameOffset moves the name label away from the route's last point, in
// display pixels.
var NameOffset = geometry.Pt(20, 15)

// Align positions a label relative to its anchor.
type Align int

const (
	// AlignCenter centres the plaque on the anchor.
	AlignCenter Align = iota
	// AlignLeft starts the text at the anchor, vertically centred.
	AlignLeft
)

// GradeAnchor returns the middle point of pts (index n/2).
func GradeAnchor(pts []geometry.Point) (geometry.Point, bool) {
	if len(pts) == 0 {
		return geometry.Point{}, false
	}
	return pts[len(pts)/2], true
}

// NameAnchor returns the last point of pts shifted by offset.
func NameAnchor(pts []geometry.Point, offset geometry.Point) (geometry.Point, bool) {
	if len(pts) == 0 {
		return geometry.Point{}, false
	}
	return pts[len(pts)-1].Add(offset), true
}

// Plaque styles a label.
type Plaque struct {
	Fill    color.RGBA
	Text    color.RGBA
	Size    float64
	Padding float64
}

// Label appends a filled plaque sized to text plus padding and the text on
// top of it. Blank text draws nothing.
func Label(cs canvas.Commands, text string, at geometry.Point, align Align, p Plaque, m canvas.Measurer) canvas.Commands {
	if strings.TrimSpace(text) == "" {
		return cs
	}
	mt := m.Measure(text, p.Size)
	w, h := mt.Width, mt.Height()
	tx, ty := at.X, at.Y-h/2
	if align == AlignCenter {
		tx = at.X - w/2
	}
	cs = cs.FillRect(tx-p.Padding, ty-p.Padding, w+2*p.Padding, h+2*p.Padding, p.Fill)
	return cs.FillText(text, tx, ty, p.Size, p.Text)
}
