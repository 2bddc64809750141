package editor

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/cragmark/internal/canvas"
	"github.com/example/cragmark/internal/geometry"
	"github.com/example/cragmark/internal/logging"
	"github.com/example/cragmark/internal/theme"
)

const (
	statusHeight   = 24
	statusFontSize = 13
	// maxInitialSide bounds the window opened for very large photos.
	maxInitialSide = 1200
)

// Window shows a controller in a shiny window.
type Window struct {
	Title   string
	Ctrl    *Controller
	Actions Actions
	// OnClose runs once when the window goes away.
	OnClose func()

	closeOnce sync.Once
}

// Run executes the UI loop using shiny's driver. It returns when the window
// is closed.
func (win *Window) Run() { driver.Main(win.Main) }

type paintState struct {
	width, height int
	commands      canvas.Commands
	status        string
	background    color.RGBA
	statusBar     color.RGBA
	foreground    color.RGBA
}

// layout returns the display size of the image and the surface size for a
// window of w x h pixels.
func layout(natural geometry.Size, w, h int) (display, surface geometry.Size) {
	surface = geometry.Size{Width: float64(w), Height: float64(h - statusHeight)}
	return geometry.Fit(natural, surface), surface
}

func initialSize(natural geometry.Size) (int, int) {
	box := geometry.Size{Width: maxInitialSide, Height: maxInitialSide}
	d := geometry.Fit(natural, box)
	if !d.Known() {
		return 640, 480 + statusHeight
	}
	return int(d.Width), int(d.Height) + statusHeight
}

func (win *Window) Main(s screen.Screen) {
	c := win.Ctrl
	width, height := initialSize(c.Mapper().NaturalSize())
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: win.Title})
	if err != nil {
		logging.Error().Err(err).Msg("new window")
		return
	}
	defer w.Release()
	defer win.close()

	c.SetRedraw(func() { w.Send(paint.Event{}) })
	defer c.SetRedraw(nil)

	quit := false
	actions := win.Actions
	if actions.Quit == nil {
		actions.Quit = func() { quit = true }
	} else {
		userQuit := actions.Quit
		actions.Quit = func() { userQuit(); quit = true }
	}
	keys := NewKeymap()
	RegisterDefaults(keys, c, actions)
	defer keys.Reset()

	frames := newPaintQueue(func(ctx context.Context, st paintState) { drawFrame(ctx, s, w, st) })
	defer frames.Stop()

	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
		case size.Event:
			width, height = e.WidthPx, e.HeightPx
			display, surface := layout(c.Mapper().NaturalSize(), width, height)
			c.Resize(display, geometry.Point{}, surface)
		case paint.Event:
			th := c.Style().Theme
			if th == nil {
				th = theme.Default()
			}
			st := paintState{
				width:      width,
				height:     height,
				commands:   c.Render(),
				status:     c.Status(),
				background: th.Background,
				statusBar:  th.StatusBar,
				foreground: th.Foreground,
			}
			frames.Send(st)
		case mouse.Event:
			if e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress {
				c.Press(float64(e.X), float64(e.Y))
			}
		case key.Event:
			if e.Direction != key.DirPress {
				continue
			}
			if c.Dismiss() {
				continue
			}
			if HandleTyping(c, e) {
				continue
			}
			if name, ok := keys.Lookup(e); ok {
				logging.Debug().Str("action", name).Msg("key")
				keys.Dispatch(e)
			}
			if quit {
				return
			}
		}
	}
}

func (win *Window) close() {
	win.closeOnce.Do(func() {
		if win.OnClose != nil {
			win.OnClose()
		}
	})
}

func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, st paintState) {
	if st.width <= 0 || st.height <= statusHeight {
		return
	}
	b, err := s.NewBuffer(image.Point{st.width, st.height})
	if err != nil {
		logging.Error().Err(err).Msg("new buffer")
		return
	}
	defer b.Release()
	dst := b.RGBA()

	draw.Draw(dst, dst.Bounds(), &image.Uniform{st.background}, image.Point{}, draw.Src)
	area := image.Rect(0, 0, st.width, st.height-statusHeight)
	r := canvas.NewRaster(area.Dx(), area.Dy())
	st.commands.Replay(r)
	if ctx.Err() != nil {
		return
	}
	draw.Draw(dst, area, r.Image(), image.Point{}, draw.Over)

	bar := image.Rect(0, st.height-statusHeight, st.width, st.height)
	draw.Draw(dst, bar, &image.Uniform{st.statusBar}, image.Point{}, draw.Src)
	if face, err := canvas.FaceForSize(statusFontSize); err == nil {
		m := face.Metrics()
		baseline := bar.Min.Y + (statusHeight+m.Ascent.Ceil()-m.Descent.Ceil())/2
		d := &font.Drawer{Dst: dst, Src: &image.Uniform{st.foreground}, Face: face, Dot: fixed.P(6, baseline)}
		d.DrawString(st.status)
	}
	if ctx.Err() != nil {
		return
	}

	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}
