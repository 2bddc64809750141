package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/schollz/progressbar/v3"

	"github.com/example/cragmark/internal/canvas"
	"github.com/example/cragmark/internal/editor"
	"github.com/example/cragmark/internal/geometry"
	"github.com/example/cragmark/internal/logging"
	"github.com/example/cragmark/internal/render"
	"github.com/example/cragmark/internal/session"
)

// renderCmd redraws saved sessions over their photo.
type renderCmd struct {
	image      string
	output     string
	width      float64
	curve      string
	routeColor string
	card       bool
	files      []string
	stderr     io.Writer
	*root
	fs *flag.FlagSet
}

func (c *renderCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseRenderCmd(args []string, r *root) (*renderCmd, error) {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	c := &renderCmd{root: r, fs: fs, stderr: os.Stderr}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.image, "image", "", "photo to draw on (default the session's imageUrl)")
	fs.StringVar(&c.output, "output", "", "PNG file to write")
	fs.Float64Var(&c.width, "width", 0, "viewport width in pixels (default the photo's own width)")
	fs.StringVar(&c.curve, "curve", "", "curve mode: straight or smooth")
	fs.StringVar(&c.routeColor, "route-color", "", "colour of committed routes, a name or #RRGGBB")
	fs.BoolVar(&c.card, "card", false, "frame the result on a card with a drop shadow")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.output == "" || fs.NArg() == 0 {
		return nil, &UsageError{of: c}
	}
	if c.width < 0 {
		return nil, fmt.Errorf("-width must not be negative")
	}
	c.files = fs.Args()
	return c, nil
}

// outputFor names the file written for the i-th of n sessions.
func outputFor(output, id string, n int) string {
	if n <= 1 {
		return output
	}
	ext := filepath.Ext(output)
	return strings.TrimSuffix(output, ext) + "-" + id + ext
}

// renderSession draws the committed routes of b over img at the given
// viewport width.
func renderSession(b session.Blob, img image.Image, width float64, style render.Style) (image.Image, error) {
	sess, err := session.FromBlob(b)
	if err != nil {
		return nil, err
	}
	c := editor.New(sess, editor.WithStyle(style))
	c.ImageLoaded(img)
	natural := c.Mapper().NaturalSize()
	if width <= 0 {
		width = natural.Width
	}
	display := geometry.FitWidth(natural, width)
	if !display.Known() {
		return nil, fmt.Errorf("session %s: photo has no size", b.SessionID)
	}
	c.Resize(display, geometry.Point{}, geometry.Size{})
	out := canvas.Render(c.Render(), int(display.Width+0.5), int(display.Height+0.5))
	return out, nil
}

func (c *renderCmd) Run() error {
	if err := c.root.applyRouteColor(c.routeColor); err != nil {
		return err
	}
	style, err := c.root.style(c.curve)
	if err != nil {
		return err
	}

	var shared image.Image
	if c.image != "" {
		if shared, _, err = loadImage(c.image); err != nil {
			return err
		}
	}

	var bar *progressbar.ProgressBar
	if len(c.files) > 1 {
		bar = progressbar.NewOptions(len(c.files),
			progressbar.OptionSetWriter(c.stderr),
			progressbar.OptionSetDescription("Rendering"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		errs  []error
		limit = make(chan struct{}, runtime.NumCPU())
	)
	for _, file := range c.files {
		wg.Add(1)
		limit <- struct{}{}
		go func(file string) {
			defer wg.Done()
			defer func() { <-limit }()
			err := c.renderFile(file, shared, style)
			mu.Lock()
			if err != nil {
				errs = append(errs, err)
			}
			if bar != nil {
				_ = bar.Add(1)
			}
			mu.Unlock()
		}(file)
	}
	wg.Wait()
	return errors.Join(errs...)
}

func (c *renderCmd) renderFile(file string, shared image.Image, style render.Style) error {
	b, err := session.LoadFile(file)
	if err != nil {
		return err
	}
	img := shared
	if img == nil {
		if img, _, err = loadImage(b.ImageURL); err != nil {
			return fmt.Errorf("session %s: %w", b.SessionID, err)
		}
	}
	out, err := renderSession(b, img, c.width, style)
	if err != nil {
		return err
	}
	if c.card {
		out = render.Card(out, render.DefaultCard())
	}
	path := outputFor(c.output, b.SessionID, len(c.files))
	if err := writePNG(path, out); err != nil {
		return err
	}
	logging.Info().Str("session", b.SessionID).Str("output", path).Int("routes", len(b.Routes)).Msg("rendered")
	c.root.notifyExport(path, out)
	return nil
}
