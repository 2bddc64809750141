// Package session models one photo annotation session and moves it to and
// from storage.
package session

import (
	"github.com/example/cragmark/internal/geometry"
	"github.com/example/cragmark/internal/route"
)

// Session is an image plus the routes traced on it.
type Session struct {
	ID        string
	ImageURL  string
	Latitude  *float64
	Longitude *float64
	Routes    *route.Accumulator
}

// New starts an empty session for p.
func New(p Params, opts ...route.Option) *Session {
	return &Session{
		ID:        p.SessionID,
		ImageURL:  p.ImageURL,
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
		Routes:    route.New(opts...),
	}
}

// HasLocation reports whether both coordinates are known.
func (s *Session) HasLocation() bool { return s.Latitude != nil && s.Longitude != nil }

// Blob is the persisted form of a session. Coordinates of route points are
// natural image pixels.
type Blob struct {
	ImageURL  string      `json:"imageUrl" validate:"required"`
	Latitude  *float64    `json:"latitude" validate:"required_with=Longitude,omitempty,latitude"`
	Longitude *float64    `json:"longitude" validate:"required_with=Latitude,omitempty,longitude"`
	Routes    []RouteBlob `json:"routes" validate:"dive"`
	SessionID string      `json:"sessionId" validate:"required"`
}

// RouteBlob is one persisted route.
type RouteBlob struct {
	Points      []geometry.Point `json:"points" validate:"min=2,dive"`
	Grade       string           `json:"grade" validate:"required,grade"`
	Name        string           `json:"name" validate:"required"`
	Description string           `json:"description,omitempty"`
}

// Blob snapshots the committed routes. The in-progress draft is not saved.
func (s *Session) Blob() Blob {
	b := Blob{
		ImageURL:  s.ImageURL,
		Latitude:  s.Latitude,
		Longitude: s.Longitude,
		SessionID: s.ID,
		Routes:    []RouteBlob{},
	}
	for _, r := range s.Routes.Routes() {
		b.Routes = append(b.Routes, RouteBlob{
			Points:      r.Points,
			Grade:       string(r.Grade),
			Name:        r.Name,
			Description: r.Description,
		})
	}
	return b
}

// FromBlob validates b and rebuilds a session from it.
func FromBlob(b Blob, opts ...route.Option) (*Session, error) {
	if err := Validate(b); err != nil {
		return nil, err
	}
	routes := make([]route.Route, 0, len(b.Routes))
	for _, r := range b.Routes {
		g, _ := route.ParseGrade(r.Grade)
		routes = append(routes, route.Route{
			Points:      r.Points,
			Name:        r.Name,
			Grade:       g,
			Description: r.Description,
		})
	}
	opts = append([]route.Option{route.WithRoutes(routes)}, opts...)
	return &Session{
		ID:        b.SessionID,
		ImageURL:  b.ImageURL,
		Latitude:  b.Latitude,
		Longitude: b.Longitude,
		Routes:    route.New(opts...),
	}, nil
}
