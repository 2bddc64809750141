// Package canvas describes drawing as a list of surface commands and replays
// them onto concrete surfaces.
package canvas

import (
	"fmt"
	"image"
	"image/color"
)

// Op identifies a drawing primitive.
type Op int

const (
	OpClear Op = iota
	OpImage
	OpBeginPath
	OpMoveTo
	OpLineTo
	OpQuadTo
	OpSetDash
	OpStroke
	OpFillRect
	OpFillCircle
	OpFillText
)

var opNames = [...]string{
	OpClear:      "clear",
	OpImage:      "image",
	OpBeginPath:  "begin",
	OpMoveTo:     "move",
	OpLineTo:     "line",
	OpQuadTo:     "quad",
	OpSetDash:    "dash",
	OpStroke:     "stroke",
	OpFillRect:   "rect",
	OpFillCircle: "circle",
	OpFillText:   "text",
}

func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return fmt.Sprintf("op(%d)", int(o))
}

// Command is one drawing primitive. Fields unused by an Op are zero.
//
//	OpImage      Image drawn into the rectangle X, Y, W, H
//	OpMoveTo     X, Y
//	OpLineTo     X, Y
//	OpQuadTo     control CX, CY to X, Y
//	OpSetDash    Dash pattern, nil for solid
//	OpStroke     Color, Width
//	OpFillRect   X, Y, W, H, Color
//	OpFillCircle centre X, Y, radius R, Color
//	OpFillText   Text with its top-left corner at X, Y, font Size, Color
type Command struct {
	Op     Op
	X, Y   float64
	CX, CY float64
	W, H   float64
	R      float64
	Width  float64
	Size   float64
	Dash   []float64
	Color  color.RGBA
	Text   string
	Image  image.Image
}

// Commands is an ordered drawing program.
type Commands []Command

func (cs Commands) Clear() Commands { return append(cs, Command{Op: OpClear}) }

func (cs Commands) DrawImage(img image.Image, x, y, w, h float64) Commands {
	return append(cs, Command{Op: OpImage, Image: img, X: x, Y: y, W: w, H: h})
}

func (cs Commands) BeginPath() Commands { return append(cs, Command{Op: OpBeginPath}) }

func (cs Commands) MoveTo(x, y float64) Commands {
	return append(cs, Command{Op: OpMoveTo, X: x, Y: y})
}

func (cs Commands) LineTo(x, y float64) Commands {
	return append(cs, Command{Op: OpLineTo, X: x, Y: y})
}

func (cs Commands) QuadTo(cx, cy, x, y float64) Commands {
	return append(cs, Command{Op: OpQuadTo, CX: cx, CY: cy, X: x, Y: y})
}

func (cs Commands) SetDash(d []float64) Commands {
	return append(cs, Command{Op: OpSetDash, Dash: append([]float64(nil), d...)})
}

func (cs Commands) Stroke(col color.RGBA, width float64) Commands {
	return append(cs, Command{Op: OpStroke, Color: col, Width: width})
}

func (cs Commands) FillRect(x, y, w, h float64, col color.RGBA) Commands {
	return append(cs, Command{Op: OpFillRect, X: x, Y: y, W: w, H: h, Color: col})
}

func (cs Commands) FillCircle(x, y, r float64, col color.RGBA) Commands {
	return append(cs, Command{Op: OpFillCircle, X: x, Y: y, R: r, Color: col})
}

func (cs Commands) FillText(text string, x, y, size float64, col color.RGBA) Commands {
	return append(cs, Command{Op: OpFillText, Text: text, X: x, Y: y, Size: size, Color: col})
}

// Ops returns just the opcodes, handy for comparing programs.
func (cs Commands) Ops() []Op {
	out := make([]Op, len(cs))
	for i, c := range cs {
		out[i] = c.Op
	}
	return out
}

// Texts returns the strings drawn by OpFillText in order.
func (cs Commands) Texts() []string {
	var out []string
	for _, c := range cs {
		if c.Op == OpFillText {
			out = append(out, c.Text)
		}
	}
	return out
}
