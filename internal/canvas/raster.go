package canvas

import (
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// PlaqueRadius rounds the corners of filled rectangles on the raster.
const PlaqueRadius = 3

var (
	ttfOnce sync.Once
	ttf     *truetype.Font
	ttfErr  error
)

func loadTTF() (*truetype.Font, error) {
	ttfOnce.Do(func() { ttf, ttfErr = truetype.Parse(goregular.TTF) })
	return ttf, ttfErr
}

// Raster is a Surface backed by a gg context drawing into an RGBA image.
type Raster struct {
	dc    *gg.Context
	faces map[float64]font.Face
}

// NewRaster allocates a w x h transparent raster.
func NewRaster(w, h int) *Raster {
	return &Raster{dc: gg.NewContext(w, h), faces: map[float64]font.Face{}}
}

// NewRasterFor draws directly into img, for example a window buffer.
func NewRasterFor(img *image.RGBA) *Raster {
	return &Raster{dc: gg.NewContextForRGBA(img), faces: map[float64]font.Face{}}
}

// Image returns the backing image.
func (r *Raster) Image() image.Image { return r.dc.Image() }

func (r *Raster) Clear() {
	r.dc.SetColor(color.Transparent)
	r.dc.Clear()
}

func (r *Raster) DrawImage(img image.Image, x, y, w, h float64) {
	b := img.Bounds()
	if b.Empty() || w <= 0 || h <= 0 {
		return
	}
	r.dc.Push()
	r.dc.Translate(x, y)
	r.dc.Scale(w/float64(b.Dx()), h/float64(b.Dy()))
	r.dc.DrawImage(img, -b.Min.X, -b.Min.Y)
	r.dc.Pop()
}

func (r *Raster) BeginPath() { r.dc.ClearPath() }

func (r *Raster) MoveTo(x, y float64) { r.dc.MoveTo(x, y) }

func (r *Raster) LineTo(x, y float64) { r.dc.LineTo(x, y) }

func (r *Raster) QuadTo(cx, cy, x, y float64) { r.dc.QuadraticTo(cx, cy, x, y) }

func (r *Raster) SetDash(pattern []float64) { r.dc.SetDash(pattern...) }

func (r *Raster) Stroke(col color.RGBA, width float64) {
	r.dc.SetColor(col)
	r.dc.SetLineWidth(width)
	r.dc.SetLineCap(gg.LineCapRound)
	r.dc.SetLineJoin(gg.LineJoinRound)
	r.dc.Stroke()
}

func (r *Raster) FillRect(x, y, w, h float64, col color.RGBA) {
	r.dc.SetColor(col)
	r.dc.DrawRoundedRectangle(x, y, w, h, PlaqueRadius)
	r.dc.Fill()
}

func (r *Raster) FillCircle(x, y, rad float64, col color.RGBA) {
	r.dc.SetColor(col)
	r.dc.DrawCircle(x, y, rad)
	r.dc.Fill()
}

func (r *Raster) FillText(text string, x, y, size float64, col color.RGBA) {
	face := r.face(size)
	if face == nil {
		return
	}
	r.dc.SetFontFace(face)
	r.dc.SetColor(col)
	r.dc.DrawString(text, x, y+float64(face.Metrics().Ascent.Ceil()))
}

// Measure sizes text with the raster's own faces so plaques match what
// FillText draws.
func (r *Raster) Measure(text string, size float64) Metrics {
	face := r.face(size)
	if face == nil {
		return approximate(text, size)
	}
	r.dc.SetFontFace(face)
	w, _ := r.dc.MeasureString(text)
	m := face.Metrics()
	return Metrics{Width: math.Ceil(w), Ascent: float64(m.Ascent.Ceil()), Descent: float64(m.Descent.Ceil())}
}

func (r *Raster) face(size float64) font.Face {
	if size <= 0 || math.IsNaN(size) {
		size = DefaultFontSize
	}
	size = math.Round(size*4) / 4
	if f, ok := r.faces[size]; ok {
		return f
	}
	f, err := loadTTF()
	if err != nil {
		return nil
	}
	face := truetype.NewFace(f, &truetype.Options{Size: size, Hinting: font.HintingFull})
	r.faces[size] = face
	return face
}

// Render replays cs onto a new w x h raster.
func Render(cs Commands, w, h int) image.Image {
	r := NewRaster(w, h)
	cs.Replay(r)
	return r.Image()
}
