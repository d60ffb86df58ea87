// Package tessellate turns the shapes of a document into triangle meshes
// using a geometry kernel. One mesh is produced per object.
package tessellate

import (
	"fmt"

	"github.com/chazu/decorated/pkg/document"
	"github.com/chazu/decorated/pkg/kernel"
)

// Solid meshes a single solid. Polyhedral solids are triangulated exactly
// and need no kernel; anything else is sampled by k at tolerance tol.
func Solid(k kernel.Kernel, s kernel.Solid, tol kernel.Tolerance) (*kernel.Mesh, error) {
	if s == nil {
		return nil, fmt.Errorf("tessellate: nil solid")
	}
	if p, ok := kernel.Base(s).(kernel.Polyhedral); ok {
		return kernel.MeshPolyhedral(p), nil
	}
	if k == nil {
		return nil, fmt.Errorf("tessellate: solid %T needs a geometry kernel", kernel.Base(s))
	}
	return k.ToMesh(s, tol)
}

// Document produces one mesh per object that has a shape, in document
// order. Objects without a shape, and shapes that mesh to nothing, are
// skipped. The document is never mutated.
func Document(d *document.Document, k kernel.Kernel, tol kernel.Tolerance) ([]*kernel.Mesh, error) {
	if d == nil {
		return nil, nil
	}

	var meshes []*kernel.Mesh
	for _, o := range d.Objects() {
		if o.Shape == nil {
			continue
		}
		mesh, err := Solid(k, o.Shape, tol)
		if err != nil {
			return nil, fmt.Errorf("tessellate: object %s: %w", o.Name, err)
		}
		if mesh.IsEmpty() {
			continue
		}
		mesh.PartName = o.Name
		meshes = append(meshes, mesh)
	}
	return meshes, nil
}
