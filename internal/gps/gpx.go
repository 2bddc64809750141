package gps

import (
	"fmt"
	"strings"

	"github.com/tkrajina/gpxgo/gpx"
)

// Waypoint is one crag location with the routes traced there.
type Waypoint struct {
	Latitude  float64
	Longitude float64
	Altitude  *float64
	Name      string
	Routes    []string
}

// WaypointName is the default label for a boulder without a name.
func WaypointName(lat, lng float64) string {
	return fmt.Sprintf("Boulder at %.4f, %.4f", lat, lng)
}

// GPX renders waypoints as a GPX 1.1 document.
func GPX(creator string, wps []Waypoint) ([]byte, error) {
	g := &gpx.GPX{Version: "1.1", Creator: creator}
	for _, w := range wps {
		p := gpx.GPXPoint{
			Point: gpx.Point{Latitude: w.Latitude, Longitude: w.Longitude},
			Name:  w.Name,
		}
		if p.Name == "" {
			p.Name = WaypointName(w.Latitude, w.Longitude)
		}
		if w.Altitude != nil {
			p.Elevation = *gpx.NewNullableFloat64(*w.Altitude)
		}
		p.Description = strings.Join(w.Routes, "; ")
		g.Waypoints = append(g.Waypoints, p)
	}
	data, err := g.ToXml(gpx.ToXmlParams{Version: "1.1", Indent: true})
	if err != nil {
		return nil, fmt.Errorf("encode gpx: %w", err)
	}
	return data, nil
}
