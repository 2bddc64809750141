package geometry

// Transform is a pan/zoom applied on top of the display image. Surface
// position = display position * Scale + Offset.
type Transform struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
}

// Identity is the transform used when no pan/zoom collaborator is present.
func Identity() Transform { return Transform{Scale: 1} }

// Valid reports whether t can be inverted.
func (t Transform) Valid() bool {
	return finite(t.Scale) && t.Scale > 0 && finite(t.OffsetX) && finite(t.OffsetY)
}

// Apply maps a display position onto the surface.
func (t Transform) Apply(p Point) Point {
	return Point{p.X*t.Scale + t.OffsetX, p.Y*t.Scale + t.OffsetY}
}

// Invert maps a surface position back to display space.
func (t Transform) Invert(p Point) Point {
	return Point{(p.X - t.OffsetX) / t.Scale, (p.Y - t.OffsetY) / t.Scale}
}

// ZoomAt scales by factor keeping the surface position c fixed.
func (t Transform) ZoomAt(factor float64, c Point) Transform {
	if factor <= 0 {
		return t
	}
	d := t.Invert(c)
	n := Transform{Scale: t.Scale * factor}
	n.OffsetX = c.X - d.X*n.Scale
	n.OffsetY = c.Y - d.Y*n.Scale
	return n
}

// Pan moves the view by dx, dy surface pixels.
func (t Transform) Pan(dx, dy float64) Transform {
	t.OffsetX += dx
	t.OffsetY += dy
	return t
}
