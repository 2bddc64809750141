package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/example/cragmark/internal/theme"
)

// Notify holds notification settings.
type Notify struct {
	Save   bool
	Export bool
	Copy   bool
}

// Config holds the application configuration.
type Config struct {
	Theme     string
	SaveDir   string
	Curve     string  // straight or smooth
	FontSize  float64 // label size in image pixels, 0 for automatic
	LineWidth float64 // route stroke width in display pixels, 0 for default
	Notify    Notify
	Themes    map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme:  "", // Default to empty to allow fallback to Env/Default
		Themes: make(map[string]*theme.Theme),
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	// Root section
	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	if c.Curve != "" {
		fmt.Fprintf(&sb, "curve = %s\n", c.Curve)
	}
	if c.FontSize > 0 {
		fmt.Fprintf(&sb, "font_size = %s\n", strconv.FormatFloat(c.FontSize, 'f', -1, 64))
	}
	if c.LineWidth > 0 {
		fmt.Fprintf(&sb, "line_width = %s\n", strconv.FormatFloat(c.LineWidth, 'f', -1, 64))
	}
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "export = %v\n", c.Notify.Export)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	// Sort keys for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name = %s\n", t.Name)
		for _, f := range theme.Fields(t) {
			fmt.Fprintf(&sb, "%s = %s\n", f.Key, theme.Hex(f.Color))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
