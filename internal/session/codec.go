package session

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"
)

// Encode writes b as indented JSON.
func Encode(w io.Writer, b Blob) error {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session %s: %w", b.SessionID, err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// Decode reads and validates one blob.
func Decode(r io.Reader) (Blob, error) {
	var b Blob
	if err := json.NewDecoder(r).Decode(&b); err != nil {
		return Blob{}, fmt.Errorf("decode session: %w", err)
	}
	if err := Validate(b); err != nil {
		return Blob{}, err
	}
	return b, nil
}
