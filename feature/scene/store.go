package scene

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// ErrSceneNotFound is returned when a store has no document for a name.
var ErrSceneNotFound = errors.New("scene not found")

// Store persists scene documents by name.
type Store interface {
	Load(ctx context.Context, name string) (*Document, error)
	Save(ctx context.Context, doc *Document) error
	List(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, name string) error
}

// FileStore keeps one document per file in a directory.
type FileStore struct {
	fs     afero.Fs
	dir    string
	format Format
}

// NewFileStore creates a store rooted at dir on fs. Documents are written
// in format; both formats are read.
func NewFileStore(fs afero.Fs, dir string, format Format) *FileStore {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if format == "" {
		format = FormatJSON
	}
	return &FileStore{fs: fs, dir: dir, format: format}
}

func (s *FileStore) Load(_ context.Context, name string) (*Document, error) {
	for _, ext := range []string{".json", ".yaml", ".yml"} {
		path := filepath.Join(s.dir, name+ext)
		data, err := afero.ReadFile(s.fs, path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		return Decode(data, FormatFromPath(path))
	}
	return nil, fmt.Errorf("%w: %s", ErrSceneNotFound, name)
}

func (s *FileStore) Save(_ context.Context, doc *Document) error {
	data, err := Encode(doc, s.format)
	if err != nil {
		return err
	}
	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create scene dir: %w", err)
	}
	path := filepath.Join(s.dir, doc.Name+s.format.Ext())
	if err := afero.WriteFile(s.fs, path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func (s *FileStore) List(_ context.Context) ([]string, error) {
	entries, err := afero.ReadDir(s.fs, s.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list scenes: %w", err)
	}
	seen := map[string]bool{}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		switch strings.ToLower(ext) {
		case ".json", ".yaml", ".yml":
		default:
			continue
		}
		name := strings.TrimSuffix(e.Name(), ext)
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *FileStore) Delete(_ context.Context, name string) error {
	removed := false
	for _, ext := range []string{".json", ".yaml", ".yml"} {
		err := s.fs.Remove(filepath.Join(s.dir, name+ext))
		if err == nil {
			removed = true
			continue
		}
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to delete scene %s: %w", name, err)
		}
	}
	if !removed {
		return fmt.Errorf("%w: %s", ErrSceneNotFound, name)
	}
	return nil
}
