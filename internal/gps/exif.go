// Package gps reads photo locations and exports crag waypoints.
package gps

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/rwcarlsen/goexif/exif"
)

// ErrNoGPS means the photo carries no usable location.
var ErrNoGPS = errors.New("no GPS data")

// Fix is a photo location. Nil fields are unknown.
type Fix struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Altitude  *float64 `json:"altitude"`
}

// Known reports whether both coordinates are present.
func (f Fix) Known() bool { return f.Latitude != nil && f.Longitude != nil }

// Extractor reads a location from image bytes.
type Extractor interface {
	Extract(r io.Reader) (Fix, error)
}

// ExifExtractor reads the GPS IFD of JPEG and TIFF files.
type ExifExtractor struct{}

// Extract returns ErrNoGPS when the image has no EXIF block or no
// coordinates in it. Altitude is optional.
func (ExifExtractor) Extract(r io.Reader) (Fix, error) {
	x, err := exif.Decode(r)
	// A broken EXIF or interop sub-IFD still leaves the GPS tags readable.
	if err != nil && (x == nil || exif.IsCriticalError(err)) {
		return Fix{}, fmt.Errorf("%w: %v", ErrNoGPS, err)
	}
	lat, lng, err := x.LatLong()
	if err != nil {
		return Fix{}, fmt.Errorf("%w: %v", ErrNoGPS, err)
	}
	if math.IsNaN(lat) || math.IsNaN(lng) || (lat == 0 && lng == 0) {
		return Fix{}, ErrNoGPS
	}
	fix := Fix{Latitude: &lat, Longitude: &lng}
	if alt, ok := altitude(x); ok {
		fix.Altitude = &alt
	}
	return fix, nil
}

func altitude(x *exif.Exif) (float64, bool) {
	tag, err := x.Get(exif.GPSAltitude)
	if err != nil {
		return 0, false
	}
	num, den, err := tag.Rat2(0)
	if err != nil || den == 0 {
		return 0, false
	}
	alt := float64(num) / float64(den)
	if ref, err := x.Get(exif.GPSAltitudeRef); err == nil {
		if v, err := ref.Int(0); err == nil && v == 1 {
			alt = -alt
		}
	}
	return alt, true
}

// ExtractFile opens path and runs the default extractor on it.
func ExtractFile(path string) (Fix, error) {
	f, err := os.Open(path)
	if err != nil {
		return Fix{}, err
	}
	defer f.Close()
	return ExifExtractor{}.Extract(f)
}
