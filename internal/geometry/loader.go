package geometry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrUnsupportedFormat is returned for file extensions no loader handles.
var ErrUnsupportedFormat = errors.New("unsupported geometry format")

// Loader produces a Geometry from a file path.
type Loader interface {
	Load(path string) (*Geometry, error)
}

// LoaderFunc adapts a plain function to the Loader interface.
type LoaderFunc func(path string) (*Geometry, error)

// Load calls f(path).
func (f LoaderFunc) Load(path string) (*Geometry, error) {
	return f(path)
}

// Registry dispatches to a Loader by lower-cased file extension.
type Registry struct {
	loaders map[string]Loader
}

// NewRegistry returns a Registry with the STL and DXF loaders registered.
func NewRegistry(dxfThickness float64) *Registry {
	r := &Registry{loaders: make(map[string]Loader)}
	r.Register(".stl", LoaderFunc(LoadSTL))
	r.Register(".dxf", &DXFLoader{Thickness: dxfThickness, ArcSegments: 32})
	return r
}

// Register binds ext (with leading dot) to l, replacing any previous loader.
func (r *Registry) Register(ext string, l Loader) {
	r.loaders[strings.ToLower(ext)] = l
}

// Extensions returns the registered extensions in sorted order.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.loaders))
	for ext := range r.loaders {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Supports reports whether a loader is registered for path's extension.
func (r *Registry) Supports(path string) bool {
	_, ok := r.loaders[strings.ToLower(filepath.Ext(path))]
	return ok
}

// MatchingFiles lists the regular files directly inside dir that a
// registered loader can open, sorted by name.
func (r *Registry) MatchingFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.Type().IsRegular() && r.Supports(e.Name()) {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	return paths, nil
}

// Load picks the loader for path's extension.
func (r *Registry) Load(path string) (*Geometry, error) {
	ext := strings.ToLower(filepath.Ext(path))
	l, ok := r.loaders[ext]
	if !ok {
		return nil, fmt.Errorf("%s: %w %q", filepath.Base(path), ErrUnsupportedFormat, ext)
	}
	return l.Load(path)
}
