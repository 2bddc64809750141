// Package route holds committed routes and the in-progress drawing state of
// an annotation session.
package route

import (
	"errors"

	"github.com/example/cragmark/internal/geometry"
)

var (
	ErrTooFewPoints = errors.New("a route needs at least two points")
	ErrNotEditing   = errors.New("no route selected for editing")
	ErrNoSuchRoute  = errors.New("no such route")
	ErrInvalidGrade = errors.New("invalid grade")
)

// MinPoints is the smallest number of points a committed route may have.
const MinPoints = 2

// Route is a committed polyline in natural image coordinates.
type Route struct {
	Points      []geometry.Point `json:"points"`
	Name        string           `json:"name"`
	Grade       Grade            `json:"grade"`
	Description string           `json:"description,omitempty"`
}

// Clone returns a copy that shares no memory with r.
func (r Route) Clone() Route {
	r.Points = append([]geometry.Point(nil), r.Points...)
	return r
}

// Mode says what the primary action does.
type Mode interface{ mode() }

// Drawing is the default mode: the primary action commits the draft.
type Drawing struct{}

// Editing means the route at Index is selected and the primary action
// updates its name and grade.
type Editing struct{ Index int }

func (Drawing) mode() {}
func (Editing) mode() {}

// Draft is the in-progress state for the active mode.
type Draft struct {
	Points []geometry.Point
	Name   string
	Grade  Grade
}
