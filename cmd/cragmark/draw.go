package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"net/url"
	"os"
	"strconv"

	"github.com/example/cragmark/internal/editor"
	"github.com/example/cragmark/internal/gps"
	"github.com/example/cragmark/internal/logging"
	"github.com/example/cragmark/internal/session"
)

// drawCmd opens the drawing window for one session.
type drawCmd struct {
	image      string
	params     string
	lat        string
	lng        string
	sessionID  string
	curve      string
	storeDir   string
	output     string
	routeColor string
	*root
	fs *flag.FlagSet
}

func (d *drawCmd) FlagSet() *flag.FlagSet {
	return d.fs
}

var runWindow = func(w *editor.Window) { w.Run() }

func parseDrawCmd(args []string, r *root) (*drawCmd, error) {
	fs := flag.NewFlagSet("draw", flag.ExitOnError)
	d := &drawCmd{root: r, fs: fs}
	fs.Usage = usageFunc(d)
	fs.StringVar(&d.image, "image", "", "photo to draw on: a path, an http(s) URL or clipboard:")
	fs.StringVar(&d.params, "params", "", "host query string with imageUrl, lat, lng, sessionId and hasGps")
	fs.StringVar(&d.lat, "lat", "", "latitude of the crag")
	fs.StringVar(&d.lng, "lng", "", "longitude of the crag")
	fs.StringVar(&d.sessionID, "session-id", "", "session to create or continue")
	fs.StringVar(&d.curve, "curve", "", "curve mode: straight or smooth")
	fs.StringVar(&d.storeDir, "store", "", "directory sessions are saved in")
	fs.StringVar(&d.output, "output", "", "PNG written by Ctrl+E (default <session-id>.png)")
	fs.StringVar(&d.routeColor, "route-color", "", "colour of committed routes, a name or #RRGGBB")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if d.image == "" && d.params == "" {
		return nil, &UsageError{of: d}
	}
	return d, nil
}

// sessionParams merges -params with the individual flags, which win.
func (d *drawCmd) sessionParams() (session.Params, error) {
	q := d.params
	if q == "" {
		q = "imageUrl=" + url.QueryEscape(d.image)
	}
	p, err := session.ParseQuery(q)
	if err != nil {
		return session.Params{}, err
	}
	if d.image != "" {
		p.ImageURL = d.image
	}
	if d.sessionID != "" {
		p.SessionID = d.sessionID
	}
	if d.lat != "" || d.lng != "" {
		lat, errLat := strconv.ParseFloat(d.lat, 64)
		lng, errLng := strconv.ParseFloat(d.lng, 64)
		if errLat != nil || errLng != nil {
			return session.Params{}, fmt.Errorf("%w: -lat and -lng must both be numbers", session.ErrInvalidParams)
		}
		p.Latitude, p.Longitude = &lat, &lng
	}
	return p, nil
}

// openSession continues a stored session with the same id or starts a new
// one. Photos without a location take theirs from EXIF when present.
func openSession(ctx context.Context, st session.Store, p session.Params, raw []byte) (*session.Session, error) {
	b, err := st.Load(ctx, p.SessionID)
	switch {
	case err == nil:
		logging.Info().Str("session", p.SessionID).Int("routes", len(b.Routes)).Msg("continuing session")
		return session.FromBlob(b)
	case !errors.Is(err, session.ErrNotFound):
		return nil, err
	}
	if p.Latitude == nil && len(raw) > 0 {
		fix, err := gps.ExifExtractor{}.Extract(bytes.NewReader(raw))
		if err == nil && fix.Known() {
			p.Latitude, p.Longitude = fix.Latitude, fix.Longitude
		}
	}
	return session.New(p), nil
}

func (d *drawCmd) Run() error {
	p, err := d.sessionParams()
	if err != nil {
		return err
	}
	if err := d.root.applyRouteColor(d.routeColor); err != nil {
		return err
	}
	style, err := d.root.style(d.curve)
	if err != nil {
		return err
	}
	img, raw, err := loadImage(p.ImageURL)
	if err != nil {
		return err
	}
	ctx := context.Background()
	st := d.root.store(d.storeDir)
	sess, err := openSession(ctx, st, p, raw)
	if err != nil {
		return err
	}

	c := editor.New(sess, editor.WithStyle(style))
	c.ImageLoaded(img)
	output := d.output
	if output == "" {
		output = sess.ID + ".png"
	}

	win := &editor.Window{
		Title: "cragmark: " + sess.ID,
		Ctrl:  c,
		Actions: editor.Actions{
			Save: func() {
				if err := c.Save(ctx, st); err != nil {
					return
				}
				c.ShowMessage("Session saved")
				d.root.notifySave(sess.ID, st.Dir)
			},
			Export: func() {
				out, err := c.Export()
				if err == nil {
					err = writePNG(output, out)
				}
				if err != nil {
					logging.Error().Err(err).Str("output", output).Msg("export failed")
					c.ShowMessage("Export failed")
					return
				}
				c.ShowMessage("Exported " + output)
				d.root.notifyExport(output, out)
			},
			Copy: func() {
				out, err := c.Export()
				if err == nil {
					err = writeClipboardFn(out)
				}
				if err != nil {
					logging.Error().Err(err).Msg("copy failed")
					c.ShowMessage("Copy failed")
					return
				}
				c.ShowMessage("Copied to clipboard")
				d.root.notifyCopy("drawing")
			},
		},
	}
	runWindow(win)
	logging.Info().Str("session", sess.ID).Str("naming", p.NamingQuery()).Int("routes", sess.Routes.Len()).Msg("window closed")
	return nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
