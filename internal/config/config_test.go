package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	input := `
theme = chalk
save_dir = /tmp/crags
curve = smooth
font_size = 48
line_width = 4.5

[notify]
save = true
export = false
copy = true

[theme.chalk]
RouteStroke = #111111
NameText: #FFFFFF
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Theme != "chalk" {
		t.Errorf("Expected theme 'chalk', got '%s'", cfg.Theme)
	}
	if cfg.SaveDir != "/tmp/crags" {
		t.Errorf("Expected save_dir '/tmp/crags', got '%s'", cfg.SaveDir)
	}
	if cfg.Curve != "smooth" || cfg.FontSize != 48 || cfg.LineWidth != 4.5 {
		t.Errorf("unexpected drawing settings %q %v %v", cfg.Curve, cfg.FontSize, cfg.LineWidth)
	}
	if !cfg.Notify.Save || cfg.Notify.Export || !cfg.Notify.Copy {
		t.Errorf("unexpected notify settings %+v", cfg.Notify)
	}

	th, ok := cfg.Themes["chalk"]
	if !ok {
		t.Fatal("Expected theme 'chalk' to be loaded")
	}
	if th.RouteStroke.R != 0x11 || th.RouteStroke.G != 0x11 || th.RouteStroke.B != 0x11 {
		t.Errorf("Unexpected RouteStroke color: %+v", th.RouteStroke)
	}
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{
		"font_size = big",
		"line_width = -1",
		"[notify]\nsave = maybe",
		"[theme.x]\nMarker = red",
	} {
		if _, err := Parse(strings.NewReader(input)); err == nil {
			t.Errorf("expected error for %q", input)
		}
	}
}

func TestCircular(t *testing.T) {
	input := `theme = dark
save_dir = /home/user/crags
curve = smooth
font_size = 30

[notify]
save = true
export = true
copy = false

[theme.custom]
Name = custom
Background = #000000
GradePlaque = #FFFFFF80
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}

	cfg2, err := Parse(strings.NewReader(cfg.String()))
	if err != nil {
		t.Fatalf("Circular parse failed: %v", err)
	}

	if cfg.Theme != cfg2.Theme || cfg.SaveDir != cfg2.SaveDir || cfg.Curve != cfg2.Curve || cfg.FontSize != cfg2.FontSize {
		t.Errorf("root mismatch: %+v vs %+v", cfg, cfg2)
	}
	if cfg.Notify != cfg2.Notify {
		t.Errorf("Notify mismatch: %+v vs %+v", cfg.Notify, cfg2.Notify)
	}
	t1, t2 := cfg.Themes["custom"], cfg2.Themes["custom"]
	if t1 == nil || t2 == nil {
		t.Fatalf("Custom theme missing in one config")
	}
	if *t1 != *t2 {
		t.Errorf("Theme mismatch: %+v vs %+v", t1, t2)
	}
}

func TestLoaderOverridePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cragmark.rc")
	if err := os.WriteFile(path, []byte("curve = smooth\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	l := NewLoader("1.0.0", path)
	if got := l.GetConfigPath(); got != path {
		t.Fatalf("GetConfigPath = %q", got)
	}
	cfg, err := l.Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Curve != "smooth" {
		t.Fatalf("curve %q", cfg.Curve)
	}
}

func TestLoaderMissingConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(EnvPath, "")
	l := NewLoader("1.0.0", "")
	cfg, err := l.Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Theme != "" || len(cfg.Themes) != 0 {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoaderEnvPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.rc")
	if err := os.WriteFile(path, []byte("font_size = 18\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvPath, path)
	l := NewLoader("1.0.0", "")
	if got := l.GetConfigPath(); got != path {
		t.Fatalf("GetConfigPath = %q, want %q", got, path)
	}
	missing := filepath.Join(t.TempDir(), "missing.rc")
	l = NewLoader("1.0.0", missing)
	if got := l.Candidates()[0]; got != missing {
		t.Fatalf("first candidate %q", got)
	}
	if got := l.GetConfigPath(); got != path {
		t.Fatalf("missing override should fall through, got %q", got)
	}
}
