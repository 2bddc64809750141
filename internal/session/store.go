package session

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// ErrNotFound is returned by Load for unknown session ids.
var ErrNotFound = errors.New("session not found")

// Store persists session blobs.
type Store interface {
	Save(ctx context.Context, b Blob) error
	Load(ctx context.Context, id string) (Blob, error)
}

var safeID = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// FileStore keeps one JSON file per session in Dir.
type FileStore struct {
	Dir string
}

func NewFileStore(dir string) *FileStore { return &FileStore{Dir: dir} }

func (s *FileStore) path(id string) (string, error) {
	if !safeID.MatchString(id) || strings.Trim(id, ".") == "" {
		return "", fmt.Errorf("%w: session id %q", ErrInvalidBlob, id)
	}
	return filepath.Join(s.Dir, id+".json"), nil
}

// Save validates b and replaces <Dir>/<sessionId>.json atomically.
func (s *FileStore) Save(ctx context.Context, b Blob) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := Validate(b); err != nil {
		return err
	}
	path, err := s.path(b.SessionID)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Encode(&buf, b); err != nil {
		return err
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("save session %s: %w", b.SessionID, err)
	}
	tmp, err := os.CreateTemp(s.Dir, "."+b.SessionID+"-*.tmp")
	if err != nil {
		return fmt.Errorf("save session %s: %w", b.SessionID, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("save session %s: %w", b.SessionID, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save session %s: %w", b.SessionID, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("save session %s: %w", b.SessionID, err)
	}
	return nil
}

// Load reads <Dir>/<id>.json.
func (s *FileStore) Load(ctx context.Context, id string) (Blob, error) {
	if err := ctx.Err(); err != nil {
		return Blob{}, err
	}
	path, err := s.path(id)
	if err != nil {
		return Blob{}, err
	}
	return LoadFile(path)
}

// List returns the stored session ids in lexical order.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var ids []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || filepath.Ext(name) != ".json" {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(ids)
	return ids, nil
}

// LoadFile decodes a session blob from path.
func LoadFile(path string) (Blob, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Blob{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return Blob{}, err
	}
	defer f.Close()
	b, err := Decode(f)
	if err != nil {
		return Blob{}, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}
