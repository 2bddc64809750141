package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"

	"github.com/example/cragmark/internal/gps"
)

// gpsCmd prints the location recorded in a photo.
type gpsCmd struct {
	file   string
	stdout io.Writer
	*root
	fs *flag.FlagSet
}

func (g *gpsCmd) FlagSet() *flag.FlagSet {
	return g.fs
}

var extractGPSFn = gps.ExtractFile

func parseGPSCmd(args []string, r *root) (*gpsCmd, error) {
	fs := flag.NewFlagSet("gps", flag.ExitOnError)
	g := &gpsCmd{root: r, fs: fs, stdout: os.Stdout}
	fs.Usage = usageFunc(g)
	fs.StringVar(&g.file, "file", "", "JPEG photo to read")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if g.file == "" && fs.NArg() == 1 {
		g.file = fs.Arg(0)
	}
	if g.file == "" {
		return nil, &UsageError{of: g}
	}
	return g, nil
}

func (g *gpsCmd) Run() error {
	fix, err := extractGPSFn(g.file)
	if err != nil && !errors.Is(err, gps.ErrNoGPS) {
		return fmt.Errorf("read GPS from %s: %w", g.file, err)
	}
	data, err := json.MarshalIndent(fix, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(g.stdout, string(data))
	return err
}
