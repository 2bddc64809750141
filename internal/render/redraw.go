// Package render turns session state into surface commands.
package render

import (
	"image"
	"strings"

	"github.com/example/cragmark/internal/canvas"
	"github.com/example/cragmark/internal/geometry"
	"github.com/example/cragmark/internal/route"
	"github.com/example/cragmark/internal/theme"
)

// Frame is a snapshot of everything drawn in one redraw.
type Frame struct {
	Mapper     *geometry.Mapper
	Background image.Image
	Routes     []route.Route
	Draft      route.Draft
	Mode       route.Mode
	Style      Style
	Measurer   canvas.Measurer
	// Message is shown centred on the surface, above everything else.
	Message string
}

// Render produces the full drawing program for f: clear, background image,
// committed routes with their labels in commit order, then the in-progress
// markers, dashed curve and label preview. Nothing but the clear is emitted
// until the mapper knows both image sizes.
func Render(f Frame) canvas.Commands {
	cs := canvas.Commands{}.Clear()
	m := f.Mapper
	if m == nil || !m.Ready() {
		return cs
	}
	if f.Measurer == nil {
		f.Measurer = canvas.FontMeasurer{}
	}
	th := f.Style.theme()
	tr := m.Transform()
	disp := m.DisplaySize()

	if f.Background != nil {
		o := tr.Apply(geometry.Point{})
		cs = cs.DrawImage(f.Background, o.X, o.Y, disp.Width*tr.Scale, disp.Height*tr.Scale)
	}

	size, pad := f.Style.labelSizes(m.NaturalSize())
	ls := m.LabelScale() * tr.Scale
	grade := Plaque{Fill: th.GradePlaque, Text: theme.TextOn(th.GradeText, th.GradePlaque), Size: size * ls, Padding: pad * ls}
	name := Plaque{Fill: th.NamePlaque, Text: theme.TextOn(th.NameText, th.NamePlaque), Size: size * ls, Padding: pad * ls}

	editing := -1
	if e, ok := f.Mode.(route.Editing); ok {
		editing = e.Index
	}

	for i, r := range f.Routes {
		pen := Pen{Color: th.RouteStroke, Width: f.Style.LineWidth * tr.Scale}
		if i == editing {
			pen = Pen{Color: th.SelectedStroke, Width: f.Style.SelectedWidth * tr.Scale}
		}
		cs = routeLayer(cs, m, r.Points, string(r.Grade), r.Name, pen, f.Style, grade, name, f.Measurer)
	}

	d := f.Draft
	if len(d.Points) > 0 {
		pts, _ := m.PathToSurface(d.Points)
		for _, p := range pts {
			cs = cs.FillCircle(p.X, p.Y, f.Style.MarkerRadius*tr.Scale, th.Marker)
		}
		pen := Pen{Color: th.DraftStroke, Width: f.Style.DraftWidth * tr.Scale, Dash: scaleDash(f.Style.DraftDash, tr.Scale)}
		cs = Curve(cs, pts, pen, f.Style.Curve)
		if strings.TrimSpace(d.Name) != "" && strings.TrimSpace(string(d.Grade)) != "" {
			cs = labels(cs, m, d.Points, string(d.Grade), d.Name, grade, name, f.Measurer)
		}
	}

	if f.Message != "" {
		cs = message(cs, f, m.SurfaceSize())
	}
	return cs
}

func routeLayer(cs canvas.Commands, m *geometry.Mapper, natural []geometry.Point, gradeText, nameText string, pen Pen, st Style, grade, name Plaque, meas canvas.Measurer) canvas.Commands {
	pts, _ := m.PathToSurface(natural)
	cs = Curve(cs, pts, pen, st.Curve)
	if len(pts) > 0 {
		end := pts[len(pts)-1]
		cs = cs.FillCircle(end.X, end.Y, st.MarkerRadius*m.Transform().Scale, pen.Color)
	}
	return labels(cs, m, natural, gradeText, nameText, grade, name, meas)
}

// labels places the grade plaque on the middle point and the name plaque
// beside the last point.
func labels(cs canvas.Commands, m *geometry.Mapper, natural []geometry.Point, gradeText, nameText string, grade, name Plaque, meas canvas.Measurer) canvas.Commands {
	if at, ok := GradeAnchor(natural); ok {
		s, _ := m.NaturalToSurface(at)
		cs = Label(cs, gradeText, s, AlignCenter, grade, meas)
	}
	if len(natural) > 0 {
		last, _ := m.NaturalToDisplay(natural[len(natural)-1])
		if at, ok := NameAnchor([]geometry.Point{last}, NameOffset); ok {
			cs = Label(cs, nameText, m.DisplayToSurface(at), AlignLeft, name, meas)
		}
	}
	return cs
}

func message(cs canvas.Commands, f Frame, surface geometry.Size) canvas.Commands {
	th := f.Style.theme()
	size := f.Style.MessageSize
	if size <= 0 {
		size = canvas.DefaultFontSize
	}
	centre := geometry.Pt(surface.Width/2, surface.Height/2)
	return Label(cs, f.Message, centre, AlignCenter, Plaque{
		Fill:    th.MessagePlaque,
		Text:    theme.TextOn(th.MessageText, th.MessagePlaque),
		Size:    size,
		Padding: size / 2,
	}, f.Measurer)
}

func scaleDash(d []float64, s float64) []float64 {
	if len(d) == 0 {
		return nil
	}
	out := make([]float64, len(d))
	for i, v := range d {
		out[i] = v * s
	}
	return out
}
