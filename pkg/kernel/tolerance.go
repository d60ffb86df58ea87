package kernel

import "math"

// Tolerance bounds the deviation between a surface and its triangle
// approximation.
type Tolerance struct {
	Linear  float64 `json:"linear"`  // maximum chord distance, model units
	Angular float64 `json:"angular"` // maximum angle between adjacent facets, degrees
}

// DefaultTolerance is the tessellation tolerance used for STL export.
var DefaultTolerance = Tolerance{Linear: 0.1, Angular: 3}

// PreviewTolerance is the coarser tolerance used for on-screen meshes.
var PreviewTolerance = Tolerance{Linear: 0.5, Angular: 10}

// MaxMeshCells caps the marching cubes grid along the longest axis.
const MaxMeshCells = 300

const minSegments = 8

// orDefault replaces unset or invalid fields with the defaults.
func (t Tolerance) orDefault() Tolerance {
	if !(t.Linear > 0) || math.IsInf(t.Linear, 0) {
		t.Linear = DefaultTolerance.Linear
	}
	if !(t.Angular > 0) || math.IsInf(t.Angular, 0) {
		t.Angular = DefaultTolerance.Angular
	}
	return t
}

// Segments returns the number of facets around a circle of the given
// radius that keeps both the chord distance and the facet angle within
// the tolerance.
func (t Tolerance) Segments(radius float64) int {
	t = t.orDefault()
	n := int(math.Ceil(360 / t.Angular))
	if radius > t.Linear {
		lin := int(math.Ceil(math.Pi / math.Acos(1-t.Linear/radius)))
		if lin > n {
			n = lin
		}
	}
	if n < minSegments {
		n = minSegments
	}
	return n
}

// Cells returns the marching cubes resolution for a solid whose longest
// bounding box side is extent. The second result is false when the
// resolution had to be capped at MaxMeshCells.
func (t Tolerance) Cells(extent float64) (int, bool) {
	t = t.orDefault()
	if !(extent > 0) {
		return minSegments, true
	}
	cells := int(math.Ceil(extent / t.Linear))
	if cells < minSegments {
		cells = minSegments
	}
	if cells > MaxMeshCells {
		return MaxMeshCells, false
	}
	return cells, true
}
