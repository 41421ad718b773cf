package store

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	tocerr "github.com/matzehuels/tocview/pkg/errors"
	tocio "github.com/matzehuels/tocview/pkg/io"
	"github.com/matzehuels/tocview/pkg/toc"
)

// DirStore keeps each diagram as a file in one directory. Any supported
// extension is accepted when reading; Put writes in the store's format and
// removes copies of the same diagram in other formats.
type DirStore struct {
	dir    string
	format tocio.Format
}

// NewDirStore opens dir, creating it if needed. New diagrams are written in
// format.
func NewDirStore(dir string, format tocio.Format) (*DirStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, tocerr.Wrap(tocerr.ErrCodeInternal, err, "create store directory %s", dir)
	}
	if format == "" {
		format = tocio.FormatJSON
	}
	return &DirStore{dir: dir, format: format}, nil
}

// List returns the stems of all diagram files. Files that share a stem are
// listed once.
func (s *DirStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, tocerr.Wrap(tocerr.ErrCodeInternal, err, "read %s", s.dir)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, err := tocio.FormatFromPath(e.Name()); err != nil {
			continue
		}
		name := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		if tocerr.ValidateDiagramName(name) != nil {
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)
	return slices.Compact(names), nil
}

// Get reads the diagram file for name.
func (s *DirStore) Get(ctx context.Context, name string) (toc.Data, error) {
	if err := tocerr.ValidateDiagramName(name); err != nil {
		return toc.Data{}, err
	}
	path, ok := s.find(name)
	if !ok {
		return toc.Data{}, tocerr.New(tocerr.ErrCodeDiagramNotFound, "diagram not found: %s", name)
	}
	return tocio.ImportData(path)
}

// Put writes d to <dir>/<name>.<format>.
func (s *DirStore) Put(ctx context.Context, name string, d toc.Data) error {
	if err := tocerr.ValidateDiagramName(name); err != nil {
		return err
	}
	if err := tocio.Export(d, s.path(name, s.format)); err != nil {
		return err
	}
	for _, f := range tocio.Formats {
		if f != s.format {
			_ = os.Remove(s.path(name, f))
		}
	}
	_ = os.Remove(filepath.Join(s.dir, name+".yml"))
	return nil
}

// Delete removes every file stored for name.
func (s *DirStore) Delete(ctx context.Context, name string) error {
	if err := tocerr.ValidateDiagramName(name); err != nil {
		return err
	}
	for {
		path, ok := s.find(name)
		if !ok {
			return nil
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return tocerr.Wrap(tocerr.ErrCodeInternal, err, "remove %s", path)
		}
	}
}

// Close does nothing for a directory store.
func (s *DirStore) Close() error { return nil }

func (s *DirStore) path(name string, f tocio.Format) string {
	return filepath.Join(s.dir, name+f.Ext())
}

// find returns the first existing file for name, preferring the store's own
// format.
func (s *DirStore) find(name string) (string, bool) {
	candidates := []string{s.path(name, s.format)}
	for _, ext := range []string{".json", ".yaml", ".yml", ".toml"} {
		candidates = append(candidates, filepath.Join(s.dir, name+ext))
	}
	for _, p := range candidates {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, true
		}
	}
	return "", false
}

var _ Store = (*DirStore)(nil)
