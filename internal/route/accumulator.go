package route

import (
	"fmt"
	"strings"

	"github.com/example/cragmark/internal/geometry"
)

type fields struct {
	name  string
	grade Grade
}

// Accumulator collects clicked points into routes. It is not safe for
// concurrent use; the owning event loop serialises access.
type Accumulator struct {
	routes   []Route
	points   []geometry.Point
	mode     Mode
	draw     fields
	edit     fields
	onChange func()
}

type Option func(*Accumulator)

// WithRoutes seeds the committed routes, for example from a saved session.
func WithRoutes(routes []Route) Option {
	return func(a *Accumulator) {
		a.routes = make([]Route, 0, len(routes))
		for _, r := range routes {
			a.routes = append(a.routes, r.Clone())
		}
	}
}

// WithOnChange registers fn to run after every successful mutation.
func WithOnChange(fn func()) Option {
	return func(a *Accumulator) { a.onChange = fn }
}

// WithDraftGrade sets the grade preselected for new routes.
func WithDraftGrade(g Grade) Option {
	return func(a *Accumulator) { a.draw.grade = g }
}

func New(opts ...Option) *Accumulator {
	a := &Accumulator{mode: Drawing{}, draw: fields{grade: DefaultGrade}}
	for _, o := range opts {
		o(a)
	}
	return a
}

// SetOnChange replaces the change listener.
func (a *Accumulator) SetOnChange(fn func()) { a.onChange = fn }

func (a *Accumulator) changed() {
	if a.onChange != nil {
		a.onChange()
	}
}

func (a *Accumulator) Mode() Mode { return a.mode }

// Len returns the number of committed routes.
func (a *Accumulator) Len() int { return len(a.routes) }

// Routes returns a copy of the committed routes in commit order.
func (a *Accumulator) Routes() []Route {
	out := make([]Route, len(a.routes))
	for i, r := range a.routes {
		out[i] = r.Clone()
	}
	return out
}

// Route returns the committed route at i.
func (a *Accumulator) Route(i int) (Route, bool) {
	if i < 0 || i >= len(a.routes) {
		return Route{}, false
	}
	return a.routes[i].Clone(), true
}

// Draft returns the in-progress points and the draft fields of the active
// mode.
func (a *Accumulator) Draft() Draft {
	f := a.active()
	return Draft{
		Points: append([]geometry.Point(nil), a.points...),
		Name:   f.name,
		Grade:  f.grade,
	}
}

func (a *Accumulator) active() *fields {
	if _, ok := a.mode.(Editing); ok {
		return &a.edit
	}
	return &a.draw
}

// AddPoint appends p to the in-progress route. Adding a point while a route
// is selected cancels the edit first.
func (a *Accumulator) AddPoint(p geometry.Point) bool {
	if !p.Finite() {
		return false
	}
	if _, ok := a.mode.(Editing); ok {
		a.mode = Drawing{}
		a.edit = fields{}
	}
	a.points = append(a.points, p)
	a.changed()
	return true
}

// Undo removes the last in-progress point, or the last committed route when
// there are none. It reports whether anything was removed.
func (a *Accumulator) Undo() bool {
	switch {
	case len(a.points) > 0:
		a.points = a.points[:len(a.points)-1]
	case len(a.routes) > 0:
		a.routes = a.routes[:len(a.routes)-1]
		if e, ok := a.mode.(Editing); ok && e.Index >= len(a.routes) {
			a.mode = Drawing{}
			a.edit = fields{}
		}
	default:
		return false
	}
	a.changed()
	return true
}

// FinishRoute commits the in-progress points as a route. A blank name
// becomes "Route n" and a blank grade becomes DefaultGrade. The draft grade
// is kept for the next route.
func (a *Accumulator) FinishRoute(name string, grade Grade) (Route, error) {
	if len(a.points) < MinPoints {
		return Route{}, fmt.Errorf("%w: have %d", ErrTooFewPoints, len(a.points))
	}
	g, err := ParseGrade(string(grade))
	if err != nil {
		return Route{}, err
	}
	if g == "" {
		g = DefaultGrade
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = fmt.Sprintf("Route %d", len(a.routes)+1)
	}
	r := Route{Points: a.points, Name: name, Grade: g}
	a.routes = append(a.routes, r)
	a.points = nil
	a.draw.name = ""
	a.changed()
	return r.Clone(), nil
}

// SelectForEdit selects the committed route at i and loads its name and
// grade into the edit draft. The in-progress points are discarded.
func (a *Accumulator) SelectForEdit(i int) error {
	if i < 0 || i >= len(a.routes) {
		return fmt.Errorf("%w: %d", ErrNoSuchRoute, i)
	}
	a.mode = Editing{Index: i}
	a.edit = fields{name: a.routes[i].Name, grade: a.routes[i].Grade}
	a.points = nil
	a.changed()
	return nil
}

// UpdateSelected rewrites the name and grade of the selected route and
// returns to drawing. Blank values keep the route's current ones.
func (a *Accumulator) UpdateSelected(name string, grade Grade) (Route, error) {
	e, ok := a.mode.(Editing)
	if !ok {
		return Route{}, ErrNotEditing
	}
	g, err := ParseGrade(string(grade))
	if err != nil {
		return Route{}, err
	}
	r := &a.routes[e.Index]
	if n := strings.TrimSpace(name); n != "" {
		r.Name = n
	}
	if g != "" {
		r.Grade = g
	}
	a.mode = Drawing{}
	a.edit = fields{}
	a.changed()
	return r.Clone(), nil
}

// SetDescription attaches free text to a committed route.
func (a *Accumulator) SetDescription(i int, text string) error {
	if i < 0 || i >= len(a.routes) {
		return fmt.Errorf("%w: %d", ErrNoSuchRoute, i)
	}
	a.routes[i].Description = strings.TrimSpace(text)
	a.changed()
	return nil
}

// ClearDraft drops the in-progress points, the draft name and any selection.
func (a *Accumulator) ClearDraft() {
	a.points = nil
	a.draw.name = ""
	a.edit = fields{}
	a.mode = Drawing{}
	a.changed()
}

// SetDraftName sets the name field of the active mode.
func (a *Accumulator) SetDraftName(name string) {
	a.active().name = name
	a.changed()
}

// SetDraftGrade sets the grade field of the active mode. Blank is allowed.
func (a *Accumulator) SetDraftGrade(grade Grade) error {
	g, err := ParseGrade(string(grade))
	if err != nil {
		return err
	}
	a.active().grade = g
	a.changed()
	return nil
}

// Primary commits the draft while drawing and updates the selected route
// while editing.
func (a *Accumulator) Primary() (Route, error) {
	if _, ok := a.mode.(Editing); ok {
		return a.UpdateSelected(a.edit.name, a.edit.grade)
	}
	return a.FinishRoute(a.draw.name, a.draw.grade)
}
