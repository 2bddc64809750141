package render

import (
	"image"
	"reflect"
	"testing"

	"github.com/example/cragmark/internal/canvas"
	"github.com/example/cragmark/internal/geometry"
	"github.com/example/cragmark/internal/route"
	"github.com/example/cragmark/internal/theme"
)

// fixedMeasurer gives every rune the same width so placements are exact.
type fixedMeasurer struct{}

func (fixedMeasurer) Measure(text string, size float64) canvas.Metrics {
	return canvas.Metrics{Width: float64(len([]rune(text))) * 6, Ascent: size * 0.8, Descent: size * 0.2}
}

func pts(xy ...float64) []geometry.Point {
	var out []geometry.Point
	for i := 0; i+1 < len(xy); i += 2 {
		out = append(out, geometry.Pt(xy[i], xy[i+1]))
	}
	return out
}

func mapper(natural, display geometry.Size) *geometry.Mapper {
	m := geometry.NewMapper()
	m.SetNaturalSize(natural)
	m.SetDisplaySize(display)
	return m
}

func TestGradeAnchorIsMiddlePoint(t *testing.T) {
	at, ok := GradeAnchor(pts(0, 0, 10, 0, 20, 0))
	if !ok || at != geometry.Pt(10, 0) {
		t.Fatalf("anchor %+v", at)
	}
	at, _ = GradeAnchor(pts(0, 0, 10, 0, 20, 0, 30, 0))
	if at != geometry.Pt(20, 0) {
		t.Fatalf("even anchor %+v", at)
	}
	if _, ok := GradeAnchor(nil); ok {
		t.Fatal("anchor for empty route")
	}
}

func TestCurveStraight(t *testing.T) {
	cs := Curve(nil, pts(0, 0, 10, 0, 10, 10), Pen{Width: 2}, Straight)
	want := []canvas.Op{canvas.OpBeginPath, canvas.OpMoveTo, canvas.OpLineTo, canvas.OpLineTo, canvas.OpStroke}
	if !reflect.DeepEqual(cs.Ops(), want) {
		t.Fatalf("ops %v", cs.Ops())
	}
}

func TestCurveSmoothEndsWithStraightSegment(t *testing.T) {
	cs := Curve(nil, pts(0, 0, 10, 0, 10, 10, 20, 10), Pen{Width: 2}, Smooth)
	want := []canvas.Op{canvas.OpBeginPath, canvas.OpMoveTo, canvas.OpQuadTo, canvas.OpQuadTo, canvas.OpLineTo, canvas.OpStroke}
	if !reflect.DeepEqual(cs.Ops(), want) {
		t.Fatalf("ops %v", cs.Ops())
	}
	q := cs[2]
	if q.CX != 10 || q.CY != 0 || q.X != 10 || q.Y != 5 {
		t.Fatalf("first quad %+v", q)
	}
	last := cs[4]
	if last.X != 20 || last.Y != 10 {
		t.Fatalf("final segment %+v", last)
	}
}

func TestCurveIgnoresSinglePoint(t *testing.T) {
	if cs := Curve(nil, pts(1, 1), Pen{Dash: []float64{5, 5}}, Smooth); len(cs) != 0 {
		t.Fatalf("single point drew %v", cs.Ops())
	}
}

func TestDashDoesNotLeak(t *testing.T) {
	var cs canvas.Commands
	cs = Curve(cs, pts(0, 0, 5, 5), Pen{Width: 1, Dash: []float64{5, 5}}, Straight)
	cs = Curve(cs, pts(0, 0, 9, 9), Pen{Width: 1}, Straight)
	var rec canvas.Recorder
	cs.Replay(&rec)
	if len(rec.Strokes) != 2 {
		t.Fatalf("got %d strokes", len(rec.Strokes))
	}
	if len(rec.Strokes[0].Dash) == 0 {
		t.Fatal("dashed stroke drawn solid")
	}
	if len(rec.Strokes[1].Dash) != 0 {
		t.Fatalf("dash leaked into next stroke: %v", rec.Strokes[1].Dash)
	}
}

func TestLabelPlaqueFitsText(t *testing.T) {
	p := Plaque{Size: 10, Padding: 2}
	cs := Label(nil, "V3", geometry.Pt(100, 50), AlignCenter, p, fixedMeasurer{})
	if !reflect.DeepEqual(cs.Ops(), []canvas.Op{canvas.OpFillRect, canvas.OpFillText}) {
		t.Fatalf("ops %v", cs.Ops())
	}
	rect, text := cs[0], cs[1]
	if rect.W != 12+4 || rect.H != 10+4 {
		t.Fatalf("plaque %vx%v", rect.W, rect.H)
	}
	if text.X != 94 || text.Y != 45 {
		t.Fatalf("centred text at %v,%v", text.X, text.Y)
	}

	cs = Label(nil, "Crimpy", geometry.Pt(100, 50), AlignLeft, p, fixedMeasurer{})
	if cs[1].X != 100 || cs[0].X != 98 {
		t.Fatalf("left aligned text at %v, plaque at %v", cs[1].X, cs[0].X)
	}
	if len(Label(nil, "  ", geometry.Pt(0, 0), AlignLeft, p, fixedMeasurer{})) != 0 {
		t.Fatal("blank label drew a plaque")
	}
}

func TestRenderBeforeImageMeasured(t *testing.T) {
	cs := Render(Frame{Mapper: geometry.NewMapper(), Routes: []route.Route{{Points: pts(0, 0, 1, 1)}}})
	if !reflect.DeepEqual(cs.Ops(), []canvas.Op{canvas.OpClear}) {
		t.Fatalf("ops %v", cs.Ops())
	}
}

func testFrame() Frame {
	return Frame{
		Mapper:     mapper(geometry.Size{Width: 100, Height: 100}, geometry.Size{Width: 100, Height: 100}),
		Background: image.NewRGBA(image.Rect(0, 0, 100, 100)),
		Routes: []route.Route{
			{Points: pts(10, 10, 20, 20), Name: "A", Grade: "V1"},
			{Points: pts(30, 30, 40, 40, 50, 50), Name: "B", Grade: "V2"},
		},
		Draft:    route.Draft{Points: pts(60, 60, 70, 70), Name: "Draft", Grade: "V3"},
		Mode:     route.Drawing{},
		Style:    DefaultStyle(),
		Measurer: fixedMeasurer{},
	}
}

func TestRenderOrder(t *testing.T) {
	cs := Render(testFrame())
	if cs[0].Op != canvas.OpClear || cs[1].Op != canvas.OpImage {
		t.Fatalf("program starts with %v", cs.Ops()[:2])
	}
	want := []string{"V1", "A", "V2", "B", "V3", "Draft"}
	if got := cs.Texts(); !reflect.DeepEqual(got, want) {
		t.Fatalf("texts %v, want %v", got, want)
	}
	var rec canvas.Recorder
	cs.Replay(&rec)
	if len(rec.Strokes) != 3 {
		t.Fatalf("got %d strokes", len(rec.Strokes))
	}
	th := theme.Default()
	if rec.Strokes[0].Color != th.RouteStroke || len(rec.Strokes[0].Dash) != 0 {
		t.Fatalf("committed stroke %+v", rec.Strokes[0])
	}
	if len(rec.Strokes[2].Dash) == 0 {
		t.Fatal("draft stroke should be dashed")
	}
}

func TestRenderPreviewNeedsNameAndGrade(t *testing.T) {
	f := testFrame()
	f.Draft.Grade = ""
	if got := Render(f).Texts(); !reflect.DeepEqual(got, []string{"V1", "A", "V2", "B"}) {
		t.Fatalf("texts %v", got)
	}
	f = testFrame()
	f.Draft.Name = " "
	if got := Render(f).Texts(); len(got) != 4 {
		t.Fatalf("texts %v", got)
	}
}

func TestRenderHighlightsEditedRoute(t *testing.T) {
	f := testFrame()
	f.Mode = route.Editing{Index: 1}
	f.Draft = route.Draft{Name: "B", Grade: "V2"}
	var rec canvas.Recorder
	Render(f).Replay(&rec)
	th := theme.Default()
	if rec.Strokes[1].Color != th.SelectedStroke {
		t.Fatalf("edited stroke colour %+v", rec.Strokes[1].Color)
	}
	if rec.Strokes[0].Color != th.RouteStroke {
		t.Fatalf("other stroke colour %+v", rec.Strokes[0].Color)
	}
}

func TestRenderNameLabelOffset(t *testing.T) {
	f := testFrame()
	f.Routes = f.Routes[:1]
	f.Draft = route.Draft{}
	f.Style.FontSize = 10
	f.Style.Padding = 2
	cs := Render(f)
	var name canvas.Command
	for _, c := range cs {
		if c.Op == canvas.OpFillText && c.Text == "A" {
			name = c
		}
	}
	if name.X != 40 || name.Y != 35-5 {
		t.Fatalf("name text at %v,%v", name.X, name.Y)
	}
}

func TestRenderScalesWithImage(t *testing.T) {
	f := testFrame()
	f.Mapper = mapper(geometry.Size{Width: 1000, Height: 1000}, geometry.Size{Width: 500, Height: 500})
	f.Routes = []route.Route{{Points: pts(100, 100, 300, 300), Name: "A", Grade: "V1"}}
	f.Draft = route.Draft{}
	f.Style.FontSize = 20
	cs := Render(f)
	for _, c := range cs {
		switch c.Op {
		case canvas.OpFillText:
			if c.Size != 10 {
				t.Fatalf("label size %v, want 10", c.Size)
			}
		case canvas.OpMoveTo:
			if c.X != 50 || c.Y != 50 {
				t.Fatalf("route starts at %v,%v", c.X, c.Y)
			}
		}
	}
}

func TestRenderAppliesTransform(t *testing.T) {
	f := testFrame()
	f.Mapper.SetTransform(geometry.Transform{Scale: 2, OffsetX: 5, OffsetY: 7})
	cs := Render(f)
	img := cs[1]
	if img.X != 5 || img.Y != 7 || img.W != 200 || img.H != 200 {
		t.Fatalf("background at %+v", img)
	}
	for _, c := range cs {
		if c.Op == canvas.OpMoveTo {
			if c.X != 25 || c.Y != 27 {
				t.Fatalf("first route starts at %v,%v", c.X, c.Y)
			}
			break
		}
	}
}

func TestRenderMessageOnTop(t *testing.T) {
	f := testFrame()
	f.Message = "A route needs at least two points"
	cs := Render(f)
	last := cs[len(cs)-1]
	if last.Op != canvas.OpFillText || last.Text != f.Message {
		t.Fatalf("last command %+v", last)
	}
}

func TestParseCurveMode(t *testing.T) {
	if m, err := ParseCurveMode("Smooth"); err != nil || m != Smooth {
		t.Fatalf("smooth: %v %v", m, err)
	}
	if m, err := ParseCurveMode(""); err != nil || m != Straight {
		t.Fatalf("blank: %v %v", m, err)
	}
	if _, err := ParseCurveMode("bezier"); err == nil {
		t.Fatal("expected error")
	}
}
