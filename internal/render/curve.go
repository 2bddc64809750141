package render

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/example/cragmark/internal/canvas"
	"github.com/example/cragmark/internal/geometry"
)

// CurveMode selects how consecutive route points are joined.
type CurveMode int

const (
	// Straight joins points with line segments.
	Straight CurveMode = iota
	// Smooth bends through each interior point with a quadratic curve ending
	// at the midpoint of the next segment.
	Smooth
)

func (m CurveMode) String() string {
	if m == Smooth {
		return "smooth"
	}
	return "straight"
}

// ParseCurveMode accepts "straight" or "smooth". Blank means Straight.
func ParseCurveMode(s string) (CurveMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "straight", "line", "lines":
		return Straight, nil
	case "smooth", "curve", "quadratic":
		return Smooth, nil
	}
	return Straight, fmt.Errorf("unknown curve mode %q", s)
}

// Pen is the stroke style for one curve. A non-empty Dash applies to that
// curve only.
type Pen struct {
	Color color.RGBA
	Width float64
	Dash  []float64
}

// Curve appends commands stroking pts with pen. Fewer than two points draw
// nothing. The dash pattern is reset to solid after the stroke.
func Curve(cs canvas.Commands, pts []geometry.Point, pen Pen, mode CurveMode) canvas.Commands {
	if len(pts) < 2 {
		return cs
	}
	dashed := len(pen.Dash) > 0
	if dashed {
		cs = cs.SetDash(pen.Dash)
	}
	cs = cs.BeginPath().MoveTo(pts[0].X, pts[0].Y)
	last := pts[len(pts)-1]
	switch mode {
	case Smooth:
		for i := 1; i < len(pts)-1; i++ {
			mid := pts[i].Mid(pts[i+1])
			cs = cs.QuadTo(pts[i].X, pts[i].Y, mid.X, mid.Y)
		}
		cs = cs.LineTo(last.X, last.Y)
	default:
		for _, p := range pts[1:] {
			cs = cs.LineTo(p.X, p.Y)
		}
	}
	cs = cs.Stroke(pen.Color, pen.Width)
	if dashed {
		cs = cs.SetDash(nil)
	}
	return cs
}
