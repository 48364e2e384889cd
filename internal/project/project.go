package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/multierr"

	"github.com/piwi3910/PartView/internal/geometry"
	"github.com/piwi3910/PartView/internal/model"
)

// FileExtension is the extension of saved part trees.
const FileExtension = ".partview"

const projectVersion = "1"

// PartRecord is the saved form of one part and its subtree.
type PartRecord struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Visible  bool         `json:"visible"`
	Colour   model.Colour `json:"colour"`
	Source   string       `json:"source,omitempty"`
	Children []PartRecord `json:"children,omitempty"`
}

// File is the on-disk project document.
type File struct {
	Version string       `json:"version"`
	SavedAt string       `json:"saved_at"`
	Parts   []PartRecord `json:"parts"`
}

// LoadResult is a reopened project. LoadErrors combines geometry files
// that could not be reloaded; their parts are kept without geometry.
type LoadResult struct {
	Tree       *model.PartTree
	LoadErrors error
}

// meshDir is where generated geometry without a source file is written,
// next to the project: "assembly.partview" -> "assembly.meshes/".
func meshDir(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".meshes"
}

// SaveProject writes tree to path. Parts whose geometry has no source file
// (generated primitives) are exported as STL into the project's mesh
// directory so they reopen with geometry. Sources inside the project
// directory are stored relative to it.
func SaveProject(path string, tree *model.PartTree) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}

	var record func(p *model.Part) (PartRecord, error)
	record = func(p *model.Part) (PartRecord, error) {
		source := p.Source()
		if source == "" && p.Geometry() != nil {
			source = filepath.Join(meshDir(path), p.ID()+".stl")
			if err := os.MkdirAll(filepath.Dir(source), 0755); err != nil {
				return PartRecord{}, fmt.Errorf("failed to create mesh directory: %w", err)
			}
			if err := geometry.WriteSTL(source, p.Geometry()); err != nil {
				return PartRecord{}, err
			}
		}
		r := PartRecord{
			ID:      p.ID(),
			Name:    p.Name(),
			Visible: p.Visible(),
			Colour:  p.Colour(),
			Source:  relativeTo(dir, source),
		}
		for _, c := range p.Children() {
			cr, err := record(c)
			if err != nil {
				return PartRecord{}, err
			}
			r.Children = append(r.Children, cr)
		}
		return r, nil
	}

	doc := File{
		Version: projectVersion,
		SavedAt: time.Now().UTC().Format(time.RFC3339),
		Parts:   []PartRecord{},
	}
	for _, p := range tree.RootItem().Children() {
		r, err := record(p)
		if err != nil {
			return err
		}
		doc.Parts = append(doc.Parts, r)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write project file: %w", err)
	}
	return nil
}

func relativeTo(dir, source string) string {
	if source == "" || !filepath.IsAbs(source) {
		return source
	}
	rel, err := filepath.Rel(dir, source)
	if err != nil || strings.HasPrefix(rel, "..") {
		return source
	}
	return rel
}

// LoadProject reads a project file and rebuilds its tree, reloading every
// part's geometry through loader. Only a missing or malformed document is
// an error; geometry failures are reported in LoadResult.LoadErrors.
func LoadProject(path string, loader geometry.Loader) (LoadResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return LoadResult{}, fmt.Errorf("failed to read project file: %w", err)
	}
	var doc File
	if err := json.Unmarshal(data, &doc); err != nil {
		return LoadResult{}, fmt.Errorf("failed to parse project file: %w", err)
	}
	if doc.Version == "" {
		return LoadResult{}, fmt.Errorf("invalid project file: missing version field")
	}

	dir := filepath.Dir(path)
	tree := model.NewPartTree()
	var loadErrs error

	var build func(parent *model.Part, r PartRecord)
	build = func(parent *model.Part, r PartRecord) {
		p := model.RestorePart(r.ID, r.Name, r.Visible, r.Colour)
		if err := parent.AppendChild(p); err != nil {
			loadErrs = multierr.Append(loadErrs, err)
			return
		}
		if r.Source != "" {
			source := r.Source
			if !filepath.IsAbs(source) {
				source = filepath.Join(dir, source)
			}
			loadErrs = multierr.Append(loadErrs, p.LoadSTL(loader, source))
		}
		for _, c := range r.Children {
			build(p, c)
		}
	}
	for _, r := range doc.Parts {
		build(tree.RootItem(), r)
	}

	return LoadResult{Tree: tree, LoadErrors: loadErrs}, nil
}
