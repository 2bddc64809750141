package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/example/cragmark/internal/config"
	"github.com/example/cragmark/internal/logging"
)

// configCmd prints or saves the rc configuration.
type configCmd struct {
	*root
	fs     *flag.FlagSet
	output string
	stdout io.Writer
}

func (c *configCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseConfigCmd(args []string, r *root) (*configCmd, error) {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	c := &configCmd{root: r, fs: fs, stdout: os.Stdout}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.output, "output", "", "file written by save (default the loaded config file)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *configCmd) Run() error {
	args := c.fs.Args()
	if len(args) < 1 {
		return &UsageError{of: c}
	}
	switch args[0] {
	case "print":
		_, err := io.WriteString(c.stdout, c.root.config.String())
		return err
	case "save":
		return c.save()
	default:
		return &UsageError{of: c, msg: fmt.Sprintf("unknown config command: %s", args[0])}
	}
}

// savePath picks -output, the file the config was loaded from, or
// ~/.config/cragmark/config.rc.
func (c *configCmd) savePath() (string, error) {
	if c.output != "" {
		return c.output, nil
	}
	if path := config.NewLoader(version, configPathOverride).GetConfigPath(); path != "" {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home dir: %w", err)
	}
	return filepath.Join(home, ".config", "cragmark", "config.rc"), nil
}

func (c *configCmd) save() error {
	path, err := c.savePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(c.root.config.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	logging.Info().Str("path", path).Msg("configuration saved")
	return nil
}
