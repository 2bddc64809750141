package canvas

import (
	"image"
	"image/color"
)

// StrokeRecord captures a stroked path with the dash state it was drawn
// with.
type StrokeRecord struct {
	Path  Commands
	Dash  []float64
	Color color.RGBA
	Width float64
}

// Recorder is a Surface that remembers what was drawn. It tracks dash state
// the way a real surface does so leaks between strokes are visible.
type Recorder struct {
	Calls   Commands
	Strokes []StrokeRecord
	Clears  int

	path Commands
	dash []float64
}

func (r *Recorder) Clear() {
	r.Clears++
	r.Calls = r.Calls.Clear()
}

func (r *Recorder) DrawImage(img image.Image, x, y, w, h float64) {
	r.Calls = r.Calls.DrawImage(img, x, y, w, h)
}

func (r *Recorder) BeginPath() {
	r.path = nil
	r.Calls = r.Calls.BeginPath()
}

func (r *Recorder) MoveTo(x, y float64) {
	r.path = r.path.MoveTo(x, y)
	r.Calls = r.Calls.MoveTo(x, y)
}

func (r *Recorder) LineTo(x, y float64) {
	r.path = r.path.LineTo(x, y)
	r.Calls = r.Calls.LineTo(x, y)
}

func (r *Recorder) QuadTo(cx, cy, x, y float64) {
	r.path = r.path.QuadTo(cx, cy, x, y)
	r.Calls = r.Calls.QuadTo(cx, cy, x, y)
}

func (r *Recorder) SetDash(pattern []float64) {
	r.dash = append([]float64(nil), pattern...)
	r.Calls = r.Calls.SetDash(pattern)
}

func (r *Recorder) Stroke(col color.RGBA, width float64) {
	r.Strokes = append(r.Strokes, StrokeRecord{
		Path:  r.path,
		Dash:  append([]float64(nil), r.dash...),
		Color: col,
		Width: width,
	})
	r.Calls = r.Calls.Stroke(col, width)
}

func (r *Recorder) FillRect(x, y, w, h float64, col color.RGBA) {
	r.Calls = r.Calls.FillRect(x, y, w, h, col)
}

func (r *Recorder) FillCircle(x, y, rad float64, col color.RGBA) {
	r.Calls = r.Calls.FillCircle(x, y, rad, col)
}

func (r *Recorder) FillText(text string, x, y, size float64, col color.RGBA) {
	r.Calls = r.Calls.FillText(text, x, y, size, col)
}
