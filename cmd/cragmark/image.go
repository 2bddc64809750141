package main

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/image/colornames"
	_ "golang.org/x/image/webp"

	"github.com/example/cragmark/internal/clipboard"
	"github.com/example/cragmark/internal/theme"
)

// clipboardSource names the clipboard as an image source.
const clipboardSource = "clipboard:"

const maxImageBytes = 64 << 20

var (
	httpClient        = &http.Client{Timeout: 30 * time.Second}
	readClipboardFn   = clipboard.ReadImage
	writeClipboardFn  = clipboard.WriteImage
	openImageFileFunc = os.Open
)

// loadImage decodes the photo at src: a file path, an http(s) URL or
// "clipboard:". The raw bytes are returned too so GPS data can be read
// from them.
func loadImage(src string) (image.Image, []byte, error) {
	switch {
	case src == "":
		return nil, nil, fmt.Errorf("no image given")
	case src == clipboardSource:
		img, err := readClipboardFn()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read image from clipboard: %w", err)
		}
		return img, nil, nil
	case strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://"):
		resp, err := httpClient.Get(src)
		if err != nil {
			return nil, nil, fmt.Errorf("fetch %s: %w", src, err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, nil, fmt.Errorf("fetch %s: %s", src, resp.Status)
		}
		return decodeImage(src, resp.Body)
	default:
		f, err := openImageFileFunc(src)
		if err != nil {
			return nil, nil, err
		}
		defer f.Close()
		return decodeImage(src, f)
	}
}

func decodeImage(src string, r io.Reader) (image.Image, []byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxImageBytes+1))
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", src, err)
	}
	if len(data) > maxImageBytes {
		return nil, nil, fmt.Errorf("read %s: image larger than %d bytes", src, maxImageBytes)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("decode %s: %w", src, err)
	}
	return img, data, nil
}

// parseColor accepts CSS colour names and #RRGGBB[AA].
func parseColor(s string) (color.RGBA, error) {
	spec := strings.ToLower(strings.TrimSpace(s))
	if spec == "" {
		return color.RGBA{}, fmt.Errorf("color cannot be empty")
	}
	if c, ok := colornames.Map[spec]; ok {
		return c, nil
	}
	c, err := theme.ParseColor(spec)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	return c, nil
}

// applyRouteColor overrides the committed route colour of the active theme.
func (r *root) applyRouteColor(spec string) error {
	if spec == "" {
		return nil
	}
	c, err := parseColor(spec)
	if err != nil {
		return err
	}
	t := theme.Default()
	if r.activeTheme != nil {
		copied := *r.activeTheme
		t = &copied
	}
	t.RouteStroke = c
	r.activeTheme = t
	return nil
}
