// Package clipboard copies rendered drawings and text to the desktop
// clipboard and reads images back from it.
package clipboard

import (
	"bytes"
	"errors"
	"image"
	"image/png"
)

// ErrEmpty is returned when the clipboard holds nothing of the wanted kind.
var ErrEmpty = errors.New("clipboard does not contain the requested data")

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodePNG(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, ErrEmpty
	}
	return png.Decode(bytes.NewReader(data))
}
