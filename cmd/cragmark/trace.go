package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/example/cragmark/internal/editor"
	"github.com/example/cragmark/internal/geometry"
	"github.com/example/cragmark/internal/logging"
	"github.com/example/cragmark/internal/route"
)

// traceCmd commits one route from clicks recorded on a display of known
// size, without opening a window.
type traceCmd struct {
	image     string
	display   string
	name      string
	grade     string
	desc      string
	sessionID string
	lat       string
	lng       string
	storeDir  string
	zoom      float64
	pan       string
	points    []string
	stdout    io.Writer
	*root
	fs *flag.FlagSet
}

func (t *traceCmd) FlagSet() *flag.FlagSet {
	return t.fs
}

func parseTraceCmd(args []string, r *root) (*traceCmd, error) {
	fs := flag.NewFlagSet("trace", flag.ExitOnError)
	t := &traceCmd{root: r, fs: fs, stdout: os.Stdout}
	fs.Usage = usageFunc(t)
	fs.StringVar(&t.image, "image", "", "photo the clicks were made on")
	fs.StringVar(&t.display, "display", "", "size the photo was shown at, as WIDTHxHEIGHT")
	fs.StringVar(&t.name, "name", "", "route name (default Route n)")
	fs.StringVar(&t.grade, "grade", "", "route grade, V0 to V17")
	fs.StringVar(&t.desc, "description", "", "free text attached to the route")
	fs.StringVar(&t.sessionID, "session-id", "", "session to append to (default a new one)")
	fs.StringVar(&t.lat, "lat", "", "latitude of the crag")
	fs.StringVar(&t.lng, "lng", "", "longitude of the crag")
	fs.StringVar(&t.storeDir, "store", "", "directory sessions are saved in")
	fs.Float64Var(&t.zoom, "zoom", 1, "zoom factor the photo was viewed at")
	fs.StringVar(&t.pan, "pan", "", "view offset in display pixels, as dx,dy")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if t.image == "" || t.display == "" || fs.NArg() == 0 {
		return nil, &UsageError{of: t}
	}
	t.points = fs.Args()
	return t, nil
}

// parseSize reads "800x600".
func parseSize(s string) (geometry.Size, error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return geometry.Size{}, fmt.Errorf("invalid size %q, want WIDTHxHEIGHT", s)
	}
	fw, errW := strconv.ParseFloat(w, 64)
	fh, errH := strconv.ParseFloat(h, 64)
	size := geometry.Size{Width: fw, Height: fh}
	if errW != nil || errH != nil || !size.Known() {
		return geometry.Size{}, fmt.Errorf("invalid size %q, want WIDTHxHEIGHT", s)
	}
	return size, nil
}

// parsePoint reads "x,y".
func parsePoint(s string) (float64, float64, error) {
	xs, ys, ok := strings.Cut(strings.TrimSpace(s), ",")
	if !ok {
		return 0, 0, fmt.Errorf("invalid point %q, want x,y", s)
	}
	x, errX := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	y, errY := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if errX != nil || errY != nil {
		return 0, 0, fmt.Errorf("invalid point %q, want x,y", s)
	}
	return x, y, nil
}

// transform builds the pan/zoom the clicks were recorded under.
func (t *traceCmd) transform() (geometry.Transform, error) {
	view := geometry.Transform{Scale: t.zoom}
	if t.pan != "" {
		dx, dy, err := parsePoint(t.pan)
		if err != nil {
			return geometry.Transform{}, fmt.Errorf("-pan: %w", err)
		}
		view = view.Pan(dx, dy)
	}
	if !view.Valid() {
		return geometry.Transform{}, fmt.Errorf("-zoom must be positive, got %v", t.zoom)
	}
	return view, nil
}

func (t *traceCmd) Run() error {
	display, err := parseSize(t.display)
	if err != nil {
		return err
	}
	view, err := t.transform()
	if err != nil {
		return err
	}
	grade, err := route.ParseGrade(t.grade)
	if err != nil {
		return err
	}
	d := &drawCmd{image: t.image, sessionID: t.sessionID, lat: t.lat, lng: t.lng}
	p, err := d.sessionParams()
	if err != nil {
		return err
	}
	img, raw, err := loadImage(t.image)
	if err != nil {
		return err
	}
	ctx := context.Background()
	st := t.root.store(t.storeDir)
	sess, err := openSession(ctx, st, p, raw)
	if err != nil {
		return err
	}

	c := editor.New(sess)
	c.ImageLoaded(img)
	c.Resize(display, geometry.Point{}, geometry.Size{})
	c.SetTransform(view)
	for _, arg := range t.points {
		x, y, err := parsePoint(arg)
		if err != nil {
			return err
		}
		if !c.Press(x, y) {
			logging.Warn().Str("point", arg).Msg("point outside the photo ignored")
		}
	}
	r, err := sess.Routes.FinishRoute(t.name, grade)
	if err != nil {
		return err
	}
	if t.desc != "" {
		if err := sess.Routes.SetDescription(sess.Routes.Len()-1, t.desc); err != nil {
			return err
		}
	}
	if err := c.Save(ctx, st); err != nil {
		return err
	}
	t.root.notifySave(sess.ID, st.Dir)
	fmt.Fprintf(t.stdout, "%s: %s %s, %d points (%d routes)\n", sess.ID, r.Name, r.Grade, len(r.Points), sess.Routes.Len())
	return nil
}
