package geometry

import (
	"math"
	"testing"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func loadedMapper() *Mapper {
	m := NewMapper()
	m.SetNaturalSize(Size{Width: 4000, Height: 3000})
	m.SetDisplaySize(Size{Width: 400, Height: 300})
	return m
}

func TestDeviceToNaturalScalesByDisplayRatio(t *testing.T) {
	m := loadedMapper()
	p, ok := m.DeviceToNatural(40, 30)
	if !ok {
		t.Fatal("expected click inside the surface to be accepted")
	}
	if !near(p.X, 400) || !near(p.Y, 300) {
		t.Fatalf("got %+v, want (400,300)", p)
	}
}

func TestDeviceToNaturalSubtractsOrigin(t *testing.T) {
	m := loadedMapper()
	m.SetSurface(Pt(100, 50), Size{})
	p, ok := m.DeviceToNatural(140, 80)
	if !ok {
		t.Fatal("expected click to be accepted")
	}
	if !near(p.X, 400) || !near(p.Y, 300) {
		t.Fatalf("got %+v, want (400,300)", p)
	}
}

func TestDeviceToNaturalRejectsOutsideSurface(t *testing.T) {
	m := loadedMapper()
	for _, c := range []Point{{-1, 10}, {10, -1}, {401, 10}, {10, 301}} {
		if p, ok := m.DeviceToNatural(c.X, c.Y); ok {
			t.Errorf("click %+v accepted as %+v", c, p)
		}
	}
	if _, ok := m.DeviceToNatural(400, 300); !ok {
		t.Error("click on the far corner should be accepted")
	}
}

func TestDeviceToNaturalRejectsBeforeMeasurement(t *testing.T) {
	m := NewMapper()
	if _, ok := m.DeviceToNatural(1, 1); ok {
		t.Fatal("expected rejection with unknown sizes")
	}
	m.SetNaturalSize(Size{Width: 100, Height: 100})
	if _, ok := m.DeviceToNatural(1, 1); ok {
		t.Fatal("expected rejection with unknown display size")
	}
	m.SetDisplaySize(Size{Width: 0, Height: 100})
	if _, ok := m.DeviceToNatural(0, 0); ok {
		t.Fatal("expected rejection with zero display width")
	}
}

func TestRoundTrip(t *testing.T) {
	m := NewMapper()
	m.SetNaturalSize(Size{Width: 3024, Height: 4032})
	m.SetDisplaySize(Size{Width: 377, Height: 502.6})
	for _, p := range []Point{{0, 0}, {1, 1}, {1511.5, 2016.25}, {3024, 4032}} {
		d, ok := m.NaturalToDisplay(p)
		if !ok {
			t.Fatal("NaturalToDisplay rejected")
		}
		back, ok := m.DisplayToNatural(d)
		if !ok {
			t.Fatal("DisplayToNatural rejected")
		}
		if math.Abs(back.X-p.X) > 1e-6 || math.Abs(back.Y-p.Y) > 1e-6 {
			t.Errorf("round trip %+v -> %+v", p, back)
		}
	}
}

func TestDeviceToNaturalUndoesTransform(t *testing.T) {
	m := loadedMapper()
	if !m.SetTransform(Transform{Scale: 2, OffsetX: 10, OffsetY: 20}) {
		t.Fatal("valid transform rejected")
	}
	p, ok := m.DeviceToNatural(110, 220)
	if !ok {
		t.Fatal("expected click to be accepted")
	}
	if !near(p.X, 500) || !near(p.Y, 1000) {
		t.Fatalf("got %+v, want (500,1000)", p)
	}
	s, _ := m.NaturalToSurface(p)
	if !near(s.X, 110) || !near(s.Y, 220) {
		t.Fatalf("surface position %+v, want (110,220)", s)
	}
}

func TestDeviceToNaturalRejectsPanBeyondImage(t *testing.T) {
	m := loadedMapper()
	m.SetTransform(Transform{Scale: 1, OffsetX: 200})
	if p, ok := m.DeviceToNatural(100, 100); ok {
		t.Fatalf("click left of the panned image accepted as %+v", p)
	}
}

func TestSetTransformRejectsInvalid(t *testing.T) {
	m := loadedMapper()
	m.SetTransform(Transform{Scale: 3})
	for _, tr := range []Transform{{Scale: 0}, {Scale: -1}, {Scale: math.NaN()}, {Scale: 1, OffsetX: math.Inf(1)}} {
		if m.SetTransform(tr) {
			t.Errorf("transform %+v accepted", tr)
		}
	}
	if m.Transform().Scale != 3 {
		t.Fatalf("latest valid transform lost: %+v", m.Transform())
	}
}

func TestLabelScale(t *testing.T) {
	m := NewMapper()
	if m.LabelScale() != 1 {
		t.Fatalf("unmeasured label scale %v", m.LabelScale())
	}
	m.SetNaturalSize(Size{Width: 1000, Height: 1000})
	m.SetDisplaySize(Size{Width: 500, Height: 250})
	if m.LabelScale() != 0.25 {
		t.Fatalf("label scale %v, want 0.25", m.LabelScale())
	}
}

func TestFit(t *testing.T) {
	got := Fit(Size{Width: 4000, Height: 3000}, Size{Width: 800, Height: 800})
	if got != (Size{Width: 800, Height: 600}) {
		t.Fatalf("Fit = %+v", got)
	}
	got = Fit(Size{Width: 200, Height: 100}, Size{Width: 800, Height: 800})
	if got != (Size{Width: 200, Height: 100}) {
		t.Fatalf("small image enlarged: %+v", got)
	}
	if Fit(Size{}, Size{Width: 1, Height: 1}).Known() {
		t.Fatal("Fit of unknown size should be unknown")
	}
}

func TestZoomAtKeepsCentre(t *testing.T) {
	tr := Identity().Pan(5, 5).ZoomAt(2, Pt(100, 100))
	c := tr.Apply(Identity().Pan(5, 5).Invert(Pt(100, 100)))
	if !near(c.X, 100) || !near(c.Y, 100) {
		t.Fatalf("zoom centre moved to %+v", c)
	}
}
