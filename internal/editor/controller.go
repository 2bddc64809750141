// Package editor drives an annotation session from pointer and keyboard
// input: it owns the coordinate mapper, forwards clicks to the route
// accumulator and produces a render frame whenever something changes.
package editor

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"
	"unicode/utf8"

	"github.com/example/cragmark/internal/canvas"
	"github.com/example/cragmark/internal/geometry"
	"github.com/example/cragmark/internal/logging"
	"github.com/example/cragmark/internal/render"
	"github.com/example/cragmark/internal/route"
	"github.com/example/cragmark/internal/session"
)

const (
	// ZoomStep is the factor applied by one zoom in or out.
	ZoomStep = 1.25
	// PanStep is the distance in surface pixels moved by one pan.
	PanStep = 40
	// MaxNameLength caps typed route names.
	MaxNameLength = 64
)

// Controller is not safe for concurrent use. The window event loop owns it.
type Controller struct {
	sess       *session.Session
	mapper     *geometry.Mapper
	style      render.Style
	measurer   canvas.Measurer
	background image.Image
	message    string

	typing bool
	buffer string

	redraw func()
}

type Option func(*Controller)

// WithStyle replaces the default render style.
func WithStyle(s render.Style) Option { return func(c *Controller) { c.style = s } }

// WithMeasurer sets the text measurer used for label plaques.
func WithMeasurer(m canvas.Measurer) Option { return func(c *Controller) { c.measurer = m } }

// WithRedraw registers fn to run whenever the frame needs repainting.
func WithRedraw(fn func()) Option { return func(c *Controller) { c.redraw = fn } }

// New attaches a controller to sess. The session's change listener is
// replaced so every accumulator mutation requests a redraw.
func New(sess *session.Session, opts ...Option) *Controller {
	c := &Controller{
		sess:     sess,
		mapper:   geometry.NewMapper(),
		style:    render.DefaultStyle(),
		measurer: canvas.FontMeasurer{},
	}
	for _, o := range opts {
		o(c)
	}
	sess.Routes.SetOnChange(c.requestRedraw)
	return c
}

// SetRedraw replaces the redraw hook.
func (c *Controller) SetRedraw(fn func()) { c.redraw = fn }

func (c *Controller) requestRedraw() {
	if c.redraw != nil {
		c.redraw()
	}
}

func (c *Controller) Session() *session.Session { return c.sess }

func (c *Controller) Mapper() *geometry.Mapper { return c.mapper }

func (c *Controller) Style() render.Style { return c.style }

// SetStyle replaces the render style, for example after a theme change.
func (c *Controller) SetStyle(s render.Style) {
	c.style = s
	c.requestRedraw()
}

// ImageLoaded records the decoded background image and its natural size.
func (c *Controller) ImageLoaded(img image.Image) {
	c.background = img
	b := img.Bounds()
	c.mapper.SetNaturalSize(geometry.Size{Width: float64(b.Dx()), Height: float64(b.Dy())})
	c.requestRedraw()
}

// Background returns the loaded image, or nil.
func (c *Controller) Background() image.Image { return c.background }

// Resize records the rendered image size and the surface it is drawn on.
// origin is the surface's top-left corner in device space.
func (c *Controller) Resize(display geometry.Size, origin geometry.Point, surface geometry.Size) {
	c.mapper.SetDisplaySize(display)
	c.mapper.SetSurface(origin, surface)
	c.requestRedraw()
}

// SetTransform applies a pan/zoom transform. Invalid transforms are ignored.
func (c *Controller) SetTransform(t geometry.Transform) bool {
	if !c.mapper.SetTransform(t) {
		return false
	}
	c.requestRedraw()
	return true
}

// Zoom scales the view by factor around the surface centre.
func (c *Controller) Zoom(factor float64) bool {
	s := c.mapper.SurfaceSize()
	centre := geometry.Pt(s.Width/2, s.Height/2)
	return c.SetTransform(c.mapper.Transform().ZoomAt(factor, centre))
}

// Pan shifts the view by dx, dy surface pixels.
func (c *Controller) Pan(dx, dy float64) bool {
	return c.SetTransform(c.mapper.Transform().Pan(dx, dy))
}

// ResetView restores the identity transform.
func (c *Controller) ResetView() { c.SetTransform(geometry.Identity()) }

// Message returns the blocking message currently shown, if any.
func (c *Controller) Message() string { return c.message }

// ShowMessage displays text over the canvas until dismissed.
func (c *Controller) ShowMessage(text string) {
	c.message = text
	c.requestRedraw()
}

// Dismiss clears the message and reports whether one was showing.
func (c *Controller) Dismiss() bool {
	if c.message == "" {
		return false
	}
	c.message = ""
	c.requestRedraw()
	return true
}

// Press handles a pointer press at device position x, y. A showing message
// swallows the press. Presses that do not map onto the image are ignored.
func (c *Controller) Press(x, y float64) bool {
	if c.Dismiss() {
		return false
	}
	p, ok := c.mapper.DeviceToNatural(x, y)
	if !ok {
		return false
	}
	return c.sess.Routes.AddPoint(p)
}

// Primary commits the draft while drawing or updates the selected route
// while editing. Failures are shown as a message.
func (c *Controller) Primary() (route.Route, error) {
	r, err := c.sess.Routes.Primary()
	if err != nil {
		c.ShowMessage(messageFor(err))
		return route.Route{}, err
	}
	return r, nil
}

func (c *Controller) Undo() bool { return c.sess.Routes.Undo() }

func (c *Controller) ClearDraft() { c.sess.Routes.ClearDraft() }

// SelectNext selects the route after the current selection for editing,
// wrapping around. Without a selection it starts from the first route.
func (c *Controller) SelectNext() error { return c.selectStep(1) }

// SelectPrev is SelectNext in the other direction.
func (c *Controller) SelectPrev() error { return c.selectStep(-1) }

func (c *Controller) selectStep(delta int) error {
	n := c.sess.Routes.Len()
	if n == 0 {
		err := fmt.Errorf("%w: no routes yet", route.ErrNoSuchRoute)
		c.ShowMessage(messageFor(err))
		return err
	}
	i := 0
	if delta < 0 {
		i = n - 1
	}
	if e, ok := c.sess.Routes.Mode().(route.Editing); ok {
		i = ((e.Index+delta)%n + n) % n
	}
	return c.sess.Routes.SelectForEdit(i)
}

// StepGrade moves the draft grade of the active mode by delta.
func (c *Controller) StepGrade(delta int) {
	g := c.sess.Routes.Draft().Grade
	if g == "" {
		g = route.DefaultGrade
	} else {
		g = g.Step(delta)
	}
	_ = c.sess.Routes.SetDraftGrade(g)
}

// Typing reports whether keystrokes go to the name field.
func (c *Controller) Typing() bool { return c.typing }

// BeginName starts typing a name, seeded with the current draft name.
func (c *Controller) BeginName() {
	c.typing = true
	c.buffer = c.sess.Routes.Draft().Name
	c.requestRedraw()
}

// TypeRune appends r to the name being typed.
func (c *Controller) TypeRune(r rune) {
	if !c.typing || r < ' ' || !utf8.ValidRune(r) || utf8.RuneCountInString(c.buffer) >= MaxNameLength {
		return
	}
	c.buffer += string(r)
	c.requestRedraw()
}

// DeleteRune removes the last typed rune.
func (c *Controller) DeleteRune() {
	if !c.typing || c.buffer == "" {
		return
	}
	_, size := utf8.DecodeLastRuneInString(c.buffer)
	c.buffer = c.buffer[:len(c.buffer)-size]
	c.requestRedraw()
}

// AcceptName stores the typed text as the draft name.
func (c *Controller) AcceptName() {
	if !c.typing {
		return
	}
	c.typing = false
	c.sess.Routes.SetDraftName(c.buffer)
	c.buffer = ""
}

// CancelName leaves the draft name unchanged.
func (c *Controller) CancelName() {
	if !c.typing {
		return
	}
	c.typing = false
	c.buffer = ""
	c.requestRedraw()
}

// Frame snapshots the current state for rendering.
func (c *Controller) Frame() render.Frame {
	draft := c.sess.Routes.Draft()
	if c.typing {
		draft.Name = c.buffer
	}
	return render.Frame{
		Mapper:     c.mapper,
		Background: c.background,
		Routes:     c.sess.Routes.Routes(),
		Draft:      draft,
		Mode:       c.sess.Routes.Mode(),
		Style:      c.style,
		Measurer:   c.measurer,
		Message:    c.message,
	}
}

// Render produces the drawing program for the current state.
func (c *Controller) Render() canvas.Commands { return render.Render(c.Frame()) }

// Export renders the committed routes over the image at its natural size,
// without the draft or any message.
func (c *Controller) Export() (image.Image, error) {
	nat := c.mapper.NaturalSize()
	if c.background == nil || !nat.Known() {
		return nil, errors.New("export: no image loaded")
	}
	m := geometry.NewMapper()
	m.SetNaturalSize(nat)
	m.SetDisplaySize(nat)
	f := render.Frame{
		Mapper:     m,
		Background: c.background,
		Routes:     c.sess.Routes.Routes(),
		Mode:       route.Drawing{},
		Style:      c.style,
		Measurer:   c.measurer,
	}
	return canvas.Render(render.Render(f), int(nat.Width), int(nat.Height)), nil
}

// Save writes the committed routes to st. The in-memory session is kept on
// failure so the save can be retried.
func (c *Controller) Save(ctx context.Context, st session.Store) error {
	if err := st.Save(ctx, c.sess.Blob()); err != nil {
		err = fmt.Errorf("save session %s: %w", c.sess.ID, err)
		logging.Error().Err(err).Str("session", c.sess.ID).Msg("save failed")
		c.ShowMessage("Save failed, try again")
		return err
	}
	logging.Info().Str("session", c.sess.ID).Int("routes", c.sess.Routes.Len()).Msg("session saved")
	return nil
}

// Status summarises the editor state for a status bar.
func (c *Controller) Status() string {
	a := c.sess.Routes
	d := a.Draft()
	var parts []string
	switch m := a.Mode().(type) {
	case route.Editing:
		parts = append(parts, fmt.Sprintf("Editing route %d of %d", m.Index+1, a.Len()))
	default:
		parts = append(parts, fmt.Sprintf("Drawing, %d points", len(d.Points)))
	}
	name := d.Name
	if c.typing {
		name = c.buffer + "_"
	}
	if strings.TrimSpace(name) == "" {
		name = "(unnamed)"
	}
	grade := string(d.Grade)
	if grade == "" {
		grade = string(route.DefaultGrade)
	}
	parts = append(parts, name, grade, fmt.Sprintf("%d routes", a.Len()))
	if z := c.mapper.Transform().Scale; z != 1 {
		parts = append(parts, fmt.Sprintf("%.0f%%", z*100))
	}
	return strings.Join(parts, " | ")
}

func messageFor(err error) string {
	switch {
	case errors.Is(err, route.ErrTooFewPoints):
		return fmt.Sprintf("A route needs at least %d points", route.MinPoints)
	case errors.Is(err, route.ErrNoSuchRoute):
		return "No route to select"
	case errors.Is(err, route.ErrInvalidGrade):
		return "Unknown grade"
	case errors.Is(err, route.ErrNotEditing):
		return "No route selected"
	}
	return err.Error()
}
