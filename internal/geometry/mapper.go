package geometry

import "math"

// Mapper holds the measured sizes of an image and its drawing surface and
// converts positions between their coordinate spaces.
//
// Device positions are raw pointer coordinates. The surface is the drawing
// area whose top-left corner sits at Origin in device space; by default it
// has the display size. Display positions are on the rendered image before
// pan/zoom. Natural positions are pixels of the source image.
type Mapper struct {
	natural   Size
	display   Size
	surface   Size
	origin    Point
	transform Transform
}

// NewMapper returns a mapper with no sizes measured and an identity
// transform.
func NewMapper() *Mapper {
	return &Mapper{transform: Identity()}
}

// SetNaturalSize records the intrinsic size of the loaded image.
func (m *Mapper) SetNaturalSize(s Size) { m.natural = s }

// SetDisplaySize records the size the image is rendered at.
func (m *Mapper) SetDisplaySize(s Size) { m.display = s }

// SetSurface records where the drawing surface sits in device space and how
// big it is. A zero size means the surface matches the display size.
func (m *Mapper) SetSurface(origin Point, s Size) {
	m.origin = origin
	m.surface = s
}

// SetTransform replaces the pan/zoom transform. Invalid transforms are
// ignored and false is returned.
func (m *Mapper) SetTransform(t Transform) bool {
	if !t.Valid() {
		return false
	}
	m.transform = t
	return true
}

func (m *Mapper) NaturalSize() Size { return m.natural }

func (m *Mapper) DisplaySize() Size { return m.display }

func (m *Mapper) Transform() Transform { return m.transform }

// SurfaceSize returns the size used for bounds checks of device input.
func (m *Mapper) SurfaceSize() Size {
	if m.surface.Known() {
		return m.surface
	}
	return m.display
}

// Ready reports whether both natural and display sizes are known.
func (m *Mapper) Ready() bool {
	return m.natural.Known() && m.display.Known()
}

// Scale returns the display scale factors sx and sy.
func (m *Mapper) Scale() (sx, sy float64, ok bool) {
	if !m.Ready() {
		return 0, 0, false
	}
	return m.display.Width / m.natural.Width, m.display.Height / m.natural.Height, true
}

// LabelScale is the factor applied to label sizes so they follow image zoom.
// It is 1 until both sizes are known.
func (m *Mapper) LabelScale() float64 {
	sx, sy, ok := m.Scale()
	if !ok {
		return 1
	}
	return math.Min(sx, sy)
}

// DeviceToNatural converts a pointer position to natural image pixels.
// Positions outside the surface or the image, or input arriving before the
// image is measured, are rejected.
func (m *Mapper) DeviceToNatural(x, y float64) (Point, bool) {
	if !m.Ready() {
		return Point{}, false
	}
	local := Point{x - m.origin.X, y - m.origin.Y}
	if !local.Finite() || !m.SurfaceSize().Contains(local) {
		return Point{}, false
	}
	p, ok := m.DisplayToNatural(m.transform.Invert(local))
	if !ok || !m.natural.Contains(p) {
		return Point{}, false
	}
	return p, true
}

// DisplayToNatural divides by the display scale.
func (m *Mapper) DisplayToNatural(p Point) (Point, bool) {
	sx, sy, ok := m.Scale()
	if !ok {
		return Point{}, false
	}
	return Point{p.X / sx, p.Y / sy}, true
}

// NaturalToDisplay multiplies by the display scale.
func (m *Mapper) NaturalToDisplay(p Point) (Point, bool) {
	sx, sy, ok := m.Scale()
	if !ok {
		return Point{}, false
	}
	return Point{p.X * sx, p.Y * sy}, true
}

// NaturalToSurface converts to display space and applies pan/zoom.
func (m *Mapper) NaturalToSurface(p Point) (Point, bool) {
	d, ok := m.NaturalToDisplay(p)
	if !ok {
		return Point{}, false
	}
	return m.transform.Apply(d), true
}

// DisplayToSurface applies pan/zoom to a display position.
func (m *Mapper) DisplayToSurface(p Point) Point { return m.transform.Apply(p) }

// PathToSurface converts a slice of natural points.
func (m *Mapper) PathToSurface(pts []Point) ([]Point, bool) {
	if !m.Ready() {
		return nil, false
	}
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i], _ = m.NaturalToSurface(p)
	}
	return out, true
}
