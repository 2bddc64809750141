package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/example/cragmark/internal/gps"
	"github.com/example/cragmark/internal/logging"
	"github.com/example/cragmark/internal/session"
)

// gpxCmd exports located sessions as GPX waypoints.
type gpxCmd struct {
	output string
	files  []string
	*root
	fs *flag.FlagSet
}

func (g *gpxCmd) FlagSet() *flag.FlagSet {
	return g.fs
}

func parseGPXCmd(args []string, r *root) (*gpxCmd, error) {
	fs := flag.NewFlagSet("gpx", flag.ExitOnError)
	g := &gpxCmd{root: r, fs: fs}
	fs.Usage = usageFunc(g)
	fs.StringVar(&g.output, "output", "crags.gpx", "GPX file to write")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() == 0 {
		return nil, &UsageError{of: g}
	}
	g.files = fs.Args()
	return g, nil
}

// waypoint describes b as a GPX waypoint. Sessions without a location are
// skipped.
func waypoint(b session.Blob) (gps.Waypoint, bool) {
	if b.Latitude == nil || b.Longitude == nil {
		return gps.Waypoint{}, false
	}
	w := gps.Waypoint{Latitude: *b.Latitude, Longitude: *b.Longitude}
	for _, r := range b.Routes {
		w.Routes = append(w.Routes, fmt.Sprintf("%s (%s)", r.Name, r.Grade))
	}
	return w, true
}

func (g *gpxCmd) Run() error {
	var wps []gps.Waypoint
	for _, file := range g.files {
		b, err := session.LoadFile(file)
		if err != nil {
			return err
		}
		w, ok := waypoint(b)
		if !ok {
			logging.Warn().Str("session", b.SessionID).Msg("session has no location, skipped")
			continue
		}
		wps = append(wps, w)
	}
	if len(wps) == 0 {
		return fmt.Errorf("none of the %d sessions has a location", len(g.files))
	}
	data, err := gps.GPX("cragmark "+version, wps)
	if err != nil {
		return err
	}
	if err := os.WriteFile(g.output, data, 0o644); err != nil {
		return err
	}
	logging.Info().Str("output", g.output).Int("waypoints", len(wps)).Msg("gpx written")
	g.root.notifyExport(g.output, nil)
	return nil
}
