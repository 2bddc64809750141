package canvas

import (
	"fmt"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// DefaultFontSize is used when a caller passes a non-positive size.
const DefaultFontSize = 16

// Metrics describes the extent of a line of text in pixels.
type Metrics struct {
	Width   float64
	Ascent  float64
	Descent float64
}

// Height is the line height.
func (m Metrics) Height() float64 { return m.Ascent + m.Descent }

// Measurer sizes text before it is drawn.
type Measurer interface {
	Measure(text string, size float64) Metrics
}

var (
	regularOnce sync.Once
	regularFont *opentype.Font
	regularErr  error
	faces       sync.Map // map[float64]font.Face
)

func loadRegular() (*opentype.Font, error) {
	regularOnce.Do(func() {
		regularFont, regularErr = opentype.Parse(goregular.TTF)
	})
	return regularFont, regularErr
}

// FaceForSize returns a cached Go Regular face at size pixels.
func FaceForSize(size float64) (font.Face, error) {
	if size <= 0 || math.IsNaN(size) {
		size = DefaultFontSize
	}
	size = math.Round(size*4) / 4
	if face, ok := faces.Load(size); ok {
		return face.(font.Face), nil
	}
	f, err := loadRegular()
	if err != nil {
		return nil, fmt.Errorf("parse goregular: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("face %.2f: %w", size, err)
	}
	actual, _ := faces.LoadOrStore(size, face)
	return actual.(font.Face), nil
}

// FontMeasurer measures with the embedded Go Regular font.
type FontMeasurer struct{}

func (FontMeasurer) Measure(text string, size float64) Metrics {
	face, err := FaceForSize(size)
	if err != nil {
		return approximate(text, size)
	}
	m := face.Metrics()
	return Metrics{
		Width:   float64(font.MeasureString(face, text).Ceil()),
		Ascent:  float64(m.Ascent.Ceil()),
		Descent: float64(m.Descent.Ceil()),
	}
}

// approximate is used if the embedded font fails to parse.
func approximate(text string, size float64) Metrics {
	if size <= 0 {
		size = DefaultFontSize
	}
	n := float64(len([]rune(text)))
	return Metrics{Width: n * size * 0.6, Ascent: size * 0.8, Descent: size * 0.2}
}
