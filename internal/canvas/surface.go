package canvas

import (
	"image"
	"image/color"
)

// Surface is a mutable drawing target with canvas-like path semantics. A
// dash pattern stays in effect until changed.
type Surface interface {
	Clear()
	DrawImage(img image.Image, x, y, w, h float64)
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadTo(cx, cy, x, y float64)
	SetDash(pattern []float64)
	Stroke(col color.RGBA, width float64)
	FillRect(x, y, w, h float64, col color.RGBA)
	FillCircle(x, y, r float64, col color.RGBA)
	FillText(text string, x, y, size float64, col color.RGBA)
}

// Replay executes cs against s in order.
func (cs Commands) Replay(s Surface) {
	for _, c := range cs {
		switch c.Op {
		case OpClear:
			s.Clear()
		case OpImage:
			if c.Image != nil {
				s.DrawImage(c.Image, c.X, c.Y, c.W, c.H)
			}
		case OpBeginPath:
			s.BeginPath()
		case OpMoveTo:
			s.MoveTo(c.X, c.Y)
		case OpLineTo:
			s.LineTo(c.X, c.Y)
		case OpQuadTo:
			s.QuadTo(c.CX, c.CY, c.X, c.Y)
		case OpSetDash:
			s.SetDash(c.Dash)
		case OpStroke:
			s.Stroke(c.Color, c.Width)
		case OpFillRect:
			s.FillRect(c.X, c.Y, c.W, c.H, c.Color)
		case OpFillCircle:
			s.FillCircle(c.X, c.Y, c.R, c.Color)
		case OpFillText:
			s.FillText(c.Text, c.X, c.Y, c.Size, c.Color)
		}
	}
}
