package render

import (
	"math"

	"github.com/example/cragmark/internal/geometry"
	"github.com/example/cragmark/internal/theme"
)

// Style holds everything Render needs besides the frame contents.
type Style struct {
	Theme *theme.Theme
	Curve CurveMode

	// Display pixels, multiplied by the pan/zoom scale.
	LineWidth     float64
	DraftWidth    float64
	SelectedWidth float64
	MarkerRadius  float64
	DraftDash     []float64

	// Natural pixels, multiplied by the label scale and the pan/zoom scale.
	// Zero picks a size from the image dimensions.
	FontSize float64
	Padding  float64

	// Surface pixels.
	MessageSize float64
}

// DefaultStyle returns the stroke sizes of the original crag page: solid
// three pixel routes, a two pixel dashed draft.
func DefaultStyle() Style {
	return Style{
		Theme:         theme.Default(),
		Curve:         Straight,
		LineWidth:     3,
		DraftWidth:    2,
		SelectedWidth: 5,
		MarkerRadius:  4,
		DraftDash:     []float64{5, 5},
		MessageSize:   18,
	}
}

const (
	minAutoFont     = 12
	autoFontDivisor = 40
)

// labelSizes returns font size and padding in natural pixels.
func (s Style) labelSizes(natural geometry.Size) (size, pad float64) {
	size = s.FontSize
	if size <= 0 {
		size = math.Max(minAutoFont, math.Min(natural.Width, natural.Height)/autoFontDivisor)
	}
	pad = s.Padding
	if pad <= 0 {
		pad = size / 4
	}
	return size, pad
}

func (s Style) theme() *theme.Theme {
	if s.Theme == nil {
		return theme.Default()
	}
	return s.Theme
}
