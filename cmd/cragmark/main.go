package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/cragmark/internal/config"
	"github.com/example/cragmark/internal/logging"
	"github.com/example/cragmark/internal/notify"
	"github.com/example/cragmark/internal/render"
	"github.com/example/cragmark/internal/session"
	"github.com/example/cragmark/internal/theme"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs           *flag.FlagSet
	program      string
	notifier     *notify.Notifier
	config       *config.Config
	saveAlerts   bool
	exportAlerts bool
	copyAlerts   bool
	themeName    string
	logLevel     string
	activeTheme  *theme.Theme
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func newRoot() *root {
	prefs := notify.LoadPreferences()
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		logging.Warn().Err(err).Msg("failed to load config")
		cfg = config.New()
	}

	r := &root{
		fs:       flag.NewFlagSet("cragmark", flag.ExitOnError),
		program:  "cragmark",
		notifier: notify.New(prefs),
		config:   cfg,
	}
	r.fs.BoolVar(&r.saveAlerts, "notify-save", cfg.Notify.Save, "show a desktop notification after saving a session")
	r.fs.BoolVar(&r.exportAlerts, "notify-export", cfg.Notify.Export, "show a desktop notification after exporting an image or GPX file")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", cfg.Notify.Copy, "show a desktop notification after copying to the clipboard")

	// Precedence: CLI > Env > Config > Default
	r.fs.StringVar(&r.themeName, "theme", "", "color theme to use ("+strings.Join(theme.Names(), ", ")+")")
	r.fs.StringVar(&r.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	r.fs.Usage = usageFunc(r)
	return r
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	logCfg := logging.ConfigFromEnv()
	if r.logLevel != "" {
		logCfg.Level = r.logLevel
	}
	logging.Init(logCfg)

	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	if r.notifier != nil {
		r.notifier.Enable(notify.EventSave, r.saveAlerts)
		r.notifier.Enable(notify.EventExport, r.exportAlerts)
		r.notifier.Enable(notify.EventCopy, r.copyAlerts)
	}
	r.activeTheme = r.loadTheme()

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "draw":
		cmd, err = parseDrawCmd(subArgs, r)
	case "trace":
		cmd, err = parseTraceCmd(subArgs, r)
	case "render":
		cmd, err = parseRenderCmd(subArgs, r)
	case "gps":
		cmd, err = parseGPSCmd(subArgs, r)
	case "gpx":
		cmd, err = parseGPXCmd(subArgs, r)
	case "show":
		cmd, err = parseShowCmd(subArgs, r)
	case "grades":
		cmd = &gradesCmd{root: r}
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{r: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

// loadTheme resolves the theme name from the flag, CRAGMARK_THEME and the
// config file, in that order.
func (r *root) loadTheme() *theme.Theme {
	name := r.themeName
	if name == "" {
		name = os.Getenv("CRAGMARK_THEME")
	}
	if name == "" {
		name = r.config.Theme
	}
	t, err := theme.NewLoader(r.config.Themes).Load(name)
	if err != nil {
		if name != "" && name != "default" {
			logging.Warn().Err(err).Str("theme", name).Msg("failed to load theme, using default")
		}
		return theme.Default()
	}
	return t
}

// style builds the render style from the theme and the config file. curve
// overrides the configured curve mode when non-empty.
func (r *root) style(curve string) (render.Style, error) {
	st := render.DefaultStyle()
	if r == nil {
		return st, nil
	}
	if r.activeTheme != nil {
		st.Theme = r.activeTheme
	}
	if r.config != nil {
		if r.config.FontSize > 0 {
			st.FontSize = r.config.FontSize
		}
		if r.config.LineWidth > 0 {
			st.LineWidth = r.config.LineWidth
		}
		if curve == "" {
			curve = r.config.Curve
		}
	}
	if curve != "" {
		mode, err := render.ParseCurveMode(curve)
		if err != nil {
			return st, err
		}
		st.Curve = mode
	}
	return st, nil
}

// store returns the session store rooted at dir, the configured save_dir
// or ~/.local/share/cragmark/sessions.
func (r *root) store(dir string) *session.FileStore {
	if dir == "" && r != nil && r.config != nil {
		dir = r.config.SaveDir
	}
	if dir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, ".local", "share", "cragmark", "sessions")
		} else {
			dir = "sessions"
		}
	}
	return session.NewFileStore(dir)
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
		} else {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}

func (r *root) notifySave(sessionID, path string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Save(sessionID, path)
}

func (r *root) notifyExport(path string, img image.Image) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Export(path, img)
}

func (r *root) notifyCopy(detail string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Copy(detail)
}
