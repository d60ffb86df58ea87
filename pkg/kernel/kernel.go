// Package kernel defines the abstract geometry kernel interface.
// Implementations (sdfx, manifold) provide the curved primitives and the
// boolean union the frame builder needs. Polyhedral solids built by the
// brep package pass through any kernel unchanged and are meshed exactly.
package kernel

import v3 "github.com/deadsy/sdfx/vec/v3"

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Polyhedral is a solid bounded by planar faces that can report an exact
// triangulation. Kernels mesh it directly instead of sampling.
type Polyhedral interface {
	Solid
	Triangles() [][3]v3.Vec
}

// Wrapper is implemented by solids that decorate another solid with
// extra data, such as a frame carrying its node positions.
type Wrapper interface {
	Unwrap() Solid
}

// Base strips every Wrapper layer from s.
func Base(s Solid) Solid {
	for {
		w, ok := s.(Wrapper)
		if !ok {
			return s
		}
		s = w.Unwrap()
	}
}

// Kernel is the abstract geometry kernel interface.
type Kernel interface {
	// Primitives, centered at the origin. Cylinders run along Z.
	Cylinder(height, radius float64, segments int) Solid
	Sphere(radius float64, segments int) Solid

	// Boolean union
	Union(a, b Solid) Solid
	Join(solids ...Solid) Solid

	// Transforms
	Translate(s Solid, x, y, z float64) Solid
	Rotate(s Solid, x, y, z float64) Solid // Euler angles in degrees

	// Mesh output
	ToMesh(s Solid, tol Tolerance) (*Mesh, error)
}
