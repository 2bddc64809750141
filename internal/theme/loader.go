package theme

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned when no source knows a theme name.
var ErrNotFound = errors.New("theme not found")

const ext = ".theme"

// Loader resolves theme names. A name is tried as a file path, then against
// Inline, the embedded defaults and each of Dirs in order.
type Loader struct {
	Dirs   []string
	Inline map[string]*Theme
}

// NewLoader searches the user's config directory before the system one.
// inline holds the [theme.<name>] sections of the rc file.
func NewLoader(inline map[string]*Theme) *Loader {
	l := &Loader{Inline: inline}
	if dir, err := os.UserConfigDir(); err == nil {
		l.Dirs = append(l.Dirs, filepath.Join(dir, "cragmark", "themes"))
	}
	l.Dirs = append(l.Dirs, "/usr/share/cragmark/themes")
	return l
}

// Names lists the embedded theme names.
func Names() []string {
	entries, err := EmbeddedThemes.ReadDir("defaults")
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, strings.TrimSuffix(e.Name(), ext))
	}
	return out
}

// Load returns the named theme, or Default for "".
func (l *Loader) Load(name string) (*Theme, error) {
	if name == "" {
		return Default(), nil
	}
	if st, err := os.Stat(name); err == nil && !st.IsDir() {
		return parseFile(os.DirFS(filepath.Dir(name)), filepath.Base(name))
	}
	if t := l.Inline[name]; t != nil {
		return t, nil
	}
	file := name
	if !strings.HasSuffix(file, ext) {
		file += ext
	}
	if t, err := parseFile(EmbeddedThemes, "defaults/"+file); !errors.Is(err, fs.ErrNotExist) {
		return t, err
	}
	for _, dir := range l.Dirs {
		if t, err := parseFile(os.DirFS(dir), file); !errors.Is(err, fs.ErrNotExist) {
			return t, err
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
}

func parseFile(fsys fs.FS, name string) (*Theme, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("theme %s: %w", name, err)
	}
	return t, nil
}
