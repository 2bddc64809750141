// Package geometry converts positions between device, surface, display and
// natural image coordinates.
package geometry

import "math"

// Point is a position. Points stored on routes are always in natural image
// pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Mid returns the midpoint between p and q.
func (p Point) Mid(q Point) Point { return Point{(p.X + q.X) / 2, (p.Y + q.Y) / 2} }

// Finite reports whether both coordinates are real numbers.
func (p Point) Finite() bool { return finite(p.X) && finite(p.Y) }

// Size is a width and height in pixels.
type Size struct {
	Width  float64
	Height float64
}

// Known reports whether both dimensions have been measured.
func (s Size) Known() bool {
	return finite(s.Width) && finite(s.Height) && s.Width > 0 && s.Height > 0
}

// Contains reports whether p lies within [0,Width]x[0,Height].
func (s Size) Contains(p Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X <= s.Width && p.Y <= s.Height
}

// Fit returns the largest size with the aspect ratio of natural that fits in
// box. Images smaller than box are not enlarged.
func Fit(natural, box Size) Size {
	if !natural.Known() || !box.Known() {
		return Size{}
	}
	scale := math.Min(box.Width/natural.Width, box.Height/natural.Height)
	if scale > 1 {
		scale = 1
	}
	return Size{Width: natural.Width * scale, Height: natural.Height * scale}
}

// FitWidth scales natural to the given width keeping the aspect ratio.
func FitWidth(natural Size, width float64) Size {
	if !natural.Known() || width <= 0 {
		return Size{}
	}
	return Size{Width: width, Height: natural.Height * width / natural.Width}
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
