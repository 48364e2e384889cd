package viewer

import (
	"fmt"
	"path/filepath"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/piwi3910/PartView/internal/importer"
	"github.com/piwi3910/PartView/internal/model"
)

// OpenFiles adds one visible, white part per path under the selection (or
// the root) and loads its geometry. A failing file keeps its part without
// geometry and does not stop the rest of the batch. The render list is
// rebuilt once at the end. The returned error combines every load failure.
func (v *Viewer) OpenFiles(paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	v.history.Push(v.snapshot("Open File"))

	parent := v.parentForInsert()
	var errs error
	failed := 0
	for _, path := range paths {
		part := model.NewPart(filepath.Base(path), true)
		_ = parent.AppendChild(part)
		if err := v.load(part, path); err != nil {
			failed++
			errs = multierr.Append(errs, err)
		}
	}
	v.commit()

	switch {
	case failed > 0:
		v.status(fmt.Sprintf("Failed to open %d of %d files", failed, len(paths)), StatusSticky)
	case len(paths) == 1:
		v.status("The selected file is: "+paths[0], StatusLong)
	default:
		v.status(fmt.Sprintf("Opened %d files.", len(paths)), StatusLong)
	}
	return errs
}

// ImportEntries builds parts from an imported part list. Entries naming a
// group are collected under one group part per name; entries naming a file
// load it. Load failures are combined like OpenFiles.
func (v *Viewer) ImportEntries(entries []importer.Entry) error {
	if len(entries) == 0 {
		return nil
	}
	v.history.Push(v.snapshot("Import Part List"))

	parent := v.parentForInsert()
	groups := make(map[string]*model.Part)
	var errs error
	for _, e := range entries {
		target := parent
		if e.Group != "" {
			g, ok := groups[e.Group]
			if !ok {
				g = model.NewPart(e.Group, true)
				_ = parent.AppendChild(g)
				groups[e.Group] = g
			}
			target = g
		}

		part := model.NewPart(e.Name, e.Visible)
		part.SetColour(e.Colour.R, e.Colour.G, e.Colour.B)
		_ = target.AppendChild(part)
		if e.File != "" {
			errs = multierr.Append(errs, v.load(part, e.File))
		}
	}
	v.commit()

	if n := len(multierr.Errors(errs)); n > 0 {
		v.status(fmt.Sprintf("Imported %d parts, %d files failed to load", len(entries), n), StatusSticky)
	} else {
		v.status(fmt.Sprintf("Imported %d parts.", len(entries)), StatusLong)
	}
	return errs
}

func (v *Viewer) load(part *model.Part, path string) error {
	if err := part.LoadSTL(v.loader, path); err != nil {
		v.metrics.LoadFailures.Inc()
		v.logger.Warn("geometry load failed", zap.String("path", path), zap.Error(err))
		return err
	}
	v.logger.Info("geometry loaded",
		zap.String("path", path),
		zap.Int("triangles", part.Geometry().TriangleCount()))
	return nil
}
