package route

import (
	"errors"
	"testing"

	"github.com/example/cragmark/internal/geometry"
)

func addPoints(a *Accumulator, pts ...geometry.Point) {
	for _, p := range pts {
		a.AddPoint(p)
	}
}

func TestFinishRouteCommitsDraft(t *testing.T) {
	a := New()
	addPoints(a, geometry.Pt(10, 10), geometry.Pt(50, 10), geometry.Pt(50, 50))
	a.SetDraftName("Crimpy")
	if err := a.SetDraftGrade("V3"); err != nil {
		t.Fatalf("SetDraftGrade: %v", err)
	}
	if _, err := a.Primary(); err != nil {
		t.Fatalf("Primary: %v", err)
	}
	routes := a.Routes()
	if len(routes) != 1 {
		t.Fatalf("got %d routes, want 1", len(routes))
	}
	r := routes[0]
	if len(r.Points) != 3 || r.Name != "Crimpy" || r.Grade != "V3" {
		t.Fatalf("unexpected route %+v", r)
	}
	d := a.Draft()
	if len(d.Points) != 0 || d.Name != "" {
		t.Fatalf("draft not cleared: %+v", d)
	}
	if d.Grade != "V3" {
		t.Fatalf("draft grade %q should be kept", d.Grade)
	}
}

func TestFinishRouteRejectsSinglePoint(t *testing.T) {
	a := New()
	a.AddPoint(geometry.Pt(1, 1))
	_, err := a.FinishRoute("", "")
	if !errors.Is(err, ErrTooFewPoints) {
		t.Fatalf("got %v, want ErrTooFewPoints", err)
	}
	if a.Len() != 0 {
		t.Fatalf("route committed from one point")
	}
	if len(a.Draft().Points) != 1 {
		t.Fatal("rejected finish changed the draft")
	}
}

func TestFinishRoutePointCountMatchesClicks(t *testing.T) {
	a := New()
	for n := 0; n < 6; n++ {
		for i := 0; i < n; i++ {
			a.AddPoint(geometry.Pt(float64(i), float64(n)))
		}
		before := a.Len()
		r, err := a.FinishRoute("", "")
		if n < MinPoints {
			if err == nil || a.Len() != before {
				t.Fatalf("n=%d: expected rejection", n)
			}
			a.ClearDraft()
			continue
		}
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		if len(r.Points) != n {
			t.Fatalf("n=%d: committed %d points", n, len(r.Points))
		}
	}
}

func TestDefaultNameAndGrade(t *testing.T) {
	a := New()
	addPoints(a, geometry.Pt(0, 0), geometry.Pt(1, 1))
	r, err := a.FinishRoute("   ", "")
	if err != nil {
		t.Fatal(err)
	}
	if r.Name != "Route 1" || r.Grade != DefaultGrade {
		t.Fatalf("unexpected defaults %+v", r)
	}
	addPoints(a, geometry.Pt(0, 0), geometry.Pt(1, 1))
	r, _ = a.FinishRoute("", "v5")
	if r.Name != "Route 2" || r.Grade != "V5" {
		t.Fatalf("unexpected second route %+v", r)
	}
}

func TestFinishRouteRejectsBadGrade(t *testing.T) {
	a := New()
	addPoints(a, geometry.Pt(0, 0), geometry.Pt(1, 1))
	if _, err := a.FinishRoute("x", "5.12a"); !errors.Is(err, ErrInvalidGrade) {
		t.Fatalf("got %v, want ErrInvalidGrade", err)
	}
	if a.Len() != 0 || len(a.Draft().Points) != 2 {
		t.Fatal("state changed after rejected grade")
	}
}

func TestUndoIsIdempotentWhenEmpty(t *testing.T) {
	calls := 0
	a := New(WithOnChange(func() { calls++ }))
	for i := 0; i < 3; i++ {
		if a.Undo() {
			t.Fatal("undo on empty state reported a change")
		}
	}
	if calls != 0 || a.Len() != 0 || len(a.Draft().Points) != 0 {
		t.Fatal("undo on empty state changed something")
	}
}

func TestUndoRemovesPointsThenRoutes(t *testing.T) {
	a := New()
	addPoints(a, geometry.Pt(0, 0), geometry.Pt(1, 1))
	a.FinishRoute("", "")
	a.AddPoint(geometry.Pt(5, 5))
	a.Undo()
	if a.Len() != 1 || len(a.Draft().Points) != 0 {
		t.Fatal("undo should remove the in-progress point first")
	}
	a.Undo()
	if a.Len() != 0 {
		t.Fatal("undo should remove the committed route")
	}
}

func TestUndoClearsSelectionOfRemovedRoute(t *testing.T) {
	a := New(WithRoutes([]Route{
		{Points: []geometry.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}, Name: "A", Grade: "V1"},
		{Points: []geometry.Point{{X: 2, Y: 2}, {X: 3, Y: 3}}, Name: "B", Grade: "V2"},
	}))
	if err := a.SelectForEdit(1); err != nil {
		t.Fatal(err)
	}
	a.Undo()
	if a.Len() != 1 {
		t.Fatalf("got %d routes, want 1", a.Len())
	}
	if _, ok := a.Mode().(Drawing); !ok {
		t.Fatalf("selection not cleared: %#v", a.Mode())
	}
}

func TestUndoKeepsSelectionOfSurvivingRoute(t *testing.T) {
	a := New(WithRoutes([]Route{
		{Points: []geometry.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}, Name: "A"},
		{Points: []geometry.Point{{X: 2, Y: 2}, {X: 3, Y: 3}}, Name: "B"},
	}))
	a.SelectForEdit(0)
	a.Undo()
	if e, ok := a.Mode().(Editing); !ok || e.Index != 0 {
		t.Fatalf("selection lost: %#v", a.Mode())
	}
}

func TestSelectAndUpdate(t *testing.T) {
	a := New(WithRoutes([]Route{
		{Points: []geometry.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}, Name: "Slab", Grade: "V1"},
	}))
	a.AddPoint(geometry.Pt(9, 9))
	if err := a.SelectForEdit(0); err != nil {
		t.Fatal(err)
	}
	d := a.Draft()
	if d.Name != "Slab" || d.Grade != "V1" || len(d.Points) != 0 {
		t.Fatalf("edit draft not loaded: %+v", d)
	}
	a.SetDraftName("Slab Direct")
	a.SetDraftGrade("V2")
	r, err := a.Primary()
	if err != nil {
		t.Fatal(err)
	}
	if r.Name != "Slab Direct" || r.Grade != "V2" || len(r.Points) != 2 {
		t.Fatalf("unexpected update %+v", r)
	}
	if _, ok := a.Mode().(Drawing); !ok {
		t.Fatal("update should return to drawing")
	}
}

func TestUpdateSelectedKeepsNameWhenBlank(t *testing.T) {
	a := New(WithRoutes([]Route{
		{Points: []geometry.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}, Name: "Slab", Grade: "V1"},
	}))
	a.SelectForEdit(0)
	r, err := a.UpdateSelected(" ", "V4")
	if err != nil {
		t.Fatal(err)
	}
	if r.Name != "Slab" || r.Grade != "V4" {
		t.Fatalf("unexpected update %+v", r)
	}
}

func TestUpdateSelectedRequiresSelection(t *testing.T) {
	a := New()
	if _, err := a.UpdateSelected("x", "V1"); !errors.Is(err, ErrNotEditing) {
		t.Fatalf("got %v, want ErrNotEditing", err)
	}
}

func TestSelectForEditOutOfRange(t *testing.T) {
	a := New()
	for _, i := range []int{-1, 0, 3} {
		if err := a.SelectForEdit(i); !errors.Is(err, ErrNoSuchRoute) {
			t.Errorf("index %d: got %v", i, err)
		}
	}
}

func TestAddPointCancelsEdit(t *testing.T) {
	a := New(WithRoutes([]Route{
		{Points: []geometry.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}, Name: "Slab", Grade: "V1"},
	}))
	a.SelectForEdit(0)
	a.SetDraftName("changed")
	a.AddPoint(geometry.Pt(4, 4))
	if _, ok := a.Mode().(Drawing); !ok {
		t.Fatal("AddPoint should cancel the edit")
	}
	r, _ := a.Route(0)
	if r.Name != "Slab" {
		t.Fatalf("cancelled edit leaked into route: %+v", r)
	}
	if d := a.Draft(); len(d.Points) != 1 || d.Name != "" {
		t.Fatalf("unexpected draft %+v", d)
	}
}

func TestClearDraft(t *testing.T) {
	a := New(WithRoutes([]Route{
		{Points: []geometry.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}, Name: "Slab"},
	}))
	addPoints(a, geometry.Pt(0, 0), geometry.Pt(2, 2))
	a.SetDraftName("Draft")
	a.ClearDraft()
	if d := a.Draft(); len(d.Points) != 0 || d.Name != "" {
		t.Fatalf("draft not cleared: %+v", d)
	}
	a.SelectForEdit(0)
	a.ClearDraft()
	if _, ok := a.Mode().(Drawing); !ok {
		t.Fatal("ClearDraft should drop the selection")
	}
	if a.Len() != 1 {
		t.Fatal("ClearDraft removed a committed route")
	}
}

func TestAddPointRejectsNaN(t *testing.T) {
	calls := 0
	a := New(WithOnChange(func() { calls++ }))
	var zero float64
	if a.AddPoint(geometry.Pt(zero/zero, 1)) {
		t.Fatal("NaN point accepted")
	}
	if calls != 0 {
		t.Fatal("listener fired for rejected point")
	}
}

func TestRoutesAreCopies(t *testing.T) {
	a := New()
	addPoints(a, geometry.Pt(0, 0), geometry.Pt(1, 1))
	a.FinishRoute("", "")
	rs := a.Routes()
	rs[0].Points[0] = geometry.Pt(99, 99)
	r, _ := a.Route(0)
	if r.Points[0] != geometry.Pt(0, 0) {
		t.Fatal("committed route mutated through a copy")
	}
}

func TestOnChangeSkipsRejectedOperations(t *testing.T) {
	n := 0
	a := New(WithOnChange(func() { n++ }))
	a.AddPoint(geometry.Pt(1, 1))
	if n != 1 {
		t.Fatalf("AddPoint fired %d times", n)
	}
	if _, err := a.FinishRoute("", ""); !errors.Is(err, ErrTooFewPoints) {
		t.Fatalf("FinishRoute: %v", err)
	}
	if err := a.SelectForEdit(0); !errors.Is(err, ErrNoSuchRoute) {
		t.Fatalf("SelectForEdit: %v", err)
	}
	if err := a.SetDescription(0, "x"); !errors.Is(err, ErrNoSuchRoute) {
		t.Fatalf("SetDescription: %v", err)
	}
	if n != 1 {
		t.Fatalf("rejected operations fired OnChange, count %d", n)
	}
	a.AddPoint(geometry.Pt(2, 2))
	if _, err := a.FinishRoute("", ""); err != nil {
		t.Fatal(err)
	}
	if err := a.SetDescription(0, "  sit start "); err != nil {
		t.Fatal(err)
	}
	if r, _ := a.Route(0); r.Description != "sit start" {
		t.Fatalf("description %q", r.Description)
	}
	if n != 4 {
		t.Fatalf("OnChange count %d, want 4", n)
	}
}
