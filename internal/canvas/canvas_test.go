package canvas

import (
	"image"
	"image/color"
	"reflect"
	"testing"
)

var red = color.RGBA{R: 255, A: 255}

func TestReplayPreservesOrder(t *testing.T) {
	var cs Commands
	cs = cs.Clear().BeginPath().MoveTo(1, 2).QuadTo(3, 4, 5, 6).LineTo(7, 8)
	cs = cs.SetDash([]float64{4, 2}).Stroke(red, 2).SetDash(nil)
	cs = cs.FillRect(0, 0, 10, 10, red).FillCircle(5, 5, 2, red).FillText("V3", 1, 1, 12, red)

	var rec Recorder
	cs.Replay(&rec)
	if !reflect.DeepEqual(rec.Calls.Ops(), cs.Ops()) {
		t.Fatalf("replayed %v, want %v", rec.Calls.Ops(), cs.Ops())
	}
	if rec.Clears != 1 {
		t.Fatalf("got %d clears", rec.Clears)
	}
	if len(rec.Strokes) != 1 {
		t.Fatalf("got %d strokes", len(rec.Strokes))
	}
	s := rec.Strokes[0]
	if !reflect.DeepEqual(s.Dash, []float64{4, 2}) {
		t.Fatalf("stroke dash %v", s.Dash)
	}
	if got := s.Path.Ops(); !reflect.DeepEqual(got, []Op{OpMoveTo, OpQuadTo, OpLineTo}) {
		t.Fatalf("stroke path %v", got)
	}
	if texts := rec.Calls.Texts(); len(texts) != 1 || texts[0] != "V3" {
		t.Fatalf("texts %v", texts)
	}
}

func TestRecorderBeginPathResets(t *testing.T) {
	var rec Recorder
	rec.MoveTo(0, 0)
	rec.LineTo(1, 1)
	rec.BeginPath()
	rec.MoveTo(5, 5)
	rec.LineTo(6, 6)
	rec.Stroke(red, 1)
	if n := len(rec.Strokes[0].Path); n != 2 {
		t.Fatalf("stroke carried %d path commands", n)
	}
}

func TestSetDashCopiesPattern(t *testing.T) {
	d := []float64{1, 2}
	cs := Commands{}.SetDash(d)
	d[0] = 9
	if cs[0].Dash[0] != 1 {
		t.Fatal("dash pattern aliased caller slice")
	}
}

func TestRasterFillRect(t *testing.T) {
	img := Render(Commands{}.Clear().FillRect(2, 2, 8, 8, red), 12, 12)
	r, _, _, a := img.At(6, 6).RGBA()
	if r>>8 != 255 || a>>8 != 255 {
		t.Fatalf("centre pixel %v", img.At(6, 6))
	}
	if _, _, _, a := img.At(0, 0).RGBA(); a != 0 {
		t.Fatalf("corner should stay transparent, got %v", img.At(0, 0))
	}
}

func TestRasterDrawsScaledImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			src.Set(x, y, red)
		}
	}
	img := Render(Commands{}.DrawImage(src, 0, 0, 10, 10), 10, 10)
	if _, _, _, a := img.At(8, 8).RGBA(); a == 0 {
		t.Fatal("image was not scaled to the destination size")
	}
}

func TestRasterStrokesLine(t *testing.T) {
	var cs Commands
	cs = cs.BeginPath().MoveTo(0, 5).LineTo(20, 5).Stroke(red, 3)
	img := Render(cs, 20, 10)
	if _, _, _, a := img.At(10, 5).RGBA(); a == 0 {
		t.Fatal("stroke did not touch the line centre")
	}
}

func TestFontMeasurer(t *testing.T) {
	var m FontMeasurer
	short := m.Measure("V3", 16)
	long := m.Measure("The Mandala", 16)
	if short.Width <= 0 || long.Width <= short.Width {
		t.Fatalf("unexpected widths %v %v", short.Width, long.Width)
	}
	big := m.Measure("V3", 32)
	if big.Width <= short.Width || big.Height() <= short.Height() {
		t.Fatalf("larger size did not grow: %+v vs %+v", big, short)
	}
	if m.Measure("", 16).Width != 0 {
		t.Fatal("empty text has width")
	}
}

func TestRasterMeasureMatchesFont(t *testing.T) {
	r := NewRaster(1, 1)
	got := r.Measure("Crimpy", 20)
	if got.Width <= 0 || got.Ascent <= 0 {
		t.Fatalf("unexpected metrics %+v", got)
	}
}
