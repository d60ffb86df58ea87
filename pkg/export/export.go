// Package export writes finished solids as STL meshes.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"

	"github.com/chazu/decorated/pkg/document"
	"github.com/chazu/decorated/pkg/kernel"
	"github.com/chazu/decorated/pkg/tessellate"
)

// ErrPrecondition is wrapped by every error that aborts an export before
// anything is written.
var ErrPrecondition = errors.New("export precondition failed")

var (
	ErrNoSelection       = fmt.Errorf("%w: no object selected", ErrPrecondition)
	ErrMultipleSelection = fmt.Errorf("%w: cannot export with multiple objects selected", ErrPrecondition)
	ErrUnsavedDocument   = fmt.Errorf("%w: cannot export from unsaved document", ErrPrecondition)
	ErrNoShape           = fmt.Errorf("%w: object has no shape", ErrPrecondition)
)

// ErrEmptyMesh is returned when tessellation produced no triangles.
var ErrEmptyMesh = errors.New("export: mesh has no triangles")

// Path returns the STL path for an object: <dir>/<document>-<object>.stl
// beside the document file.
func Path(doc *document.Document, o *document.Object) (string, error) {
	if !doc.Saved() {
		return "", ErrUnsavedDocument
	}
	return filepath.Join(doc.Dir(), fmt.Sprintf("%s-%s.stl", doc.Name, o.Name)), nil
}

// Selected exports the single selected object of doc next to the
// document file and returns the written path.
func Selected(k kernel.Kernel, doc *document.Document, tol kernel.Tolerance) (string, error) {
	sel := doc.Selection()
	switch {
	case len(sel) == 0:
		return "", ErrNoSelection
	case len(sel) > 1:
		return "", fmt.Errorf("%w (%d selected)", ErrMultipleSelection, len(sel))
	}
	o := sel[0]

	path, err := Path(doc, o)
	if err != nil {
		return "", err
	}
	if isEmpty(o.Shape) {
		return "", fmt.Errorf("%w: %s", ErrNoShape, o.Name)
	}
	if err := WriteSTL(k, o.Shape, path, tol); err != nil {
		return "", err
	}
	kernel.Logger().Info("export: STL file generated", "path", path, "object", o.Name)
	return path, nil
}

type emptier interface {
	IsEmpty() bool
}

func isEmpty(s kernel.Solid) bool {
	if s == nil {
		return true
	}
	e, ok := kernel.Base(s).(emptier)
	return ok && e.IsEmpty()
}

// WriteSTL tessellates the solid and writes it as binary STL. The file is
// written next to path and renamed into place, so a failed export leaves
// no partial file behind.
func WriteSTL(k kernel.Kernel, s kernel.Solid, path string, tol kernel.Tolerance) error {
	mesh, err := tessellate.Solid(k, s, tol)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if mesh.TriangleCount() == 0 {
		return ErrEmptyMesh
	}

	tris := make([]*sdf.Triangle3, mesh.TriangleCount())
	for i := range tris {
		t := sdf.Triangle3(mesh.Triangle(i))
		tris[i] = &t
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	tmpName := tmp.Name()
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("export: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("export: %w", err)
	}

	if err := render.SaveSTL(tmpName, tris); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("export: %w", err)
	}
	kernel.Logger().Debug("export: wrote STL", "path", path, "triangles", len(tris))
	return nil
}
