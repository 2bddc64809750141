package config

import (
	"os"
	"path/filepath"
)

// EnvPath names an rc file that takes precedence over the standard
// locations.
const EnvPath = "CRAGMARK_CONFIG"

// Loader finds and parses the rc file.
type Loader struct {
	Version      string // "dev" builds also read ./.cragmarkrc
	OverridePath string // set at link time
}

func NewLoader(version string, overridePath string) *Loader {
	return &Loader{Version: version, OverridePath: overridePath}
}

// Load parses the first existing candidate. Without one the defaults are
// returned.
func (l *Loader) Load() (*Config, error) {
	path := l.GetConfigPath()
	if path == "" {
		return New(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Candidates lists the paths searched, most specific first.
func (l *Loader) Candidates() []string {
	var out []string
	if l.OverridePath != "" {
		out = append(out, l.OverridePath)
	}
	if p := os.Getenv(EnvPath); p != "" {
		out = append(out, p)
	}
	if l.Version == "dev" {
		if wd, err := os.Getwd(); err == nil {
			out = append(out, filepath.Join(wd, ".cragmarkrc"))
		}
	}
	if dir, err := os.UserConfigDir(); err == nil {
		out = append(out,
			filepath.Join(dir, "cragmark", "config.rc"),
			filepath.Join(dir, "cragmark", "cragmark.rc"))
	}
	return out
}

// GetConfigPath returns the first candidate that exists, or "".
func (l *Loader) GetConfigPath() string {
	for _, p := range l.Candidates() {
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			return p
		}
	}
	return ""
}
