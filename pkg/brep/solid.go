package brep

import (
	"math"

	"github.com/chazu/decorated/pkg/geom"
)

// Solid is a shell taken as the boundary of a volume.
type Solid struct {
	Shell *Shell
}

// Empty returns a solid with no faces. Builders return it for parameter
// sets that describe no geometry.
func Empty() *Solid {
	return &Solid{Shell: &Shell{}}
}

// NewSolid checks the shell and promotes it to a solid. An inside-out
// shell is flipped so its face normals point outward.
func NewSolid(s *Shell) (*Solid, error) {
	if err := s.Check(); err != nil {
		return nil, err
	}
	return Heal(s), nil
}

// Heal promotes the shell to a solid without checking closure. If the
// shell encloses a negative volume every face is reversed.
func Heal(s *Shell) *Solid {
	solid := &Solid{Shell: s}
	if solid.Volume() < 0 {
		faces := make([]Face, len(s.Faces))
		for i, f := range s.Faces {
			faces[i] = f.Reversed()
		}
		solid.Shell = &Shell{Faces: faces}
	}
	return solid
}

// Check reports whether the solid's shell is closed and oriented.
func (s *Solid) Check() error {
	if s.Shell == nil {
		return &GeometryError{Op: "solid", Problems: []string{"no shell"}, Total: 1}
	}
	return s.Shell.Check()
}

// IsEmpty reports whether the solid has no faces.
func (s *Solid) IsEmpty() bool {
	return s == nil || s.Shell == nil || len(s.Shell.Faces) == 0
}

// Faces returns the shell faces.
func (s *Solid) Faces() []Face {
	if s.IsEmpty() {
		return nil
	}
	return s.Shell.Faces
}

// FaceCount returns the number of faces.
func (s *Solid) FaceCount() int {
	return len(s.Faces())
}

// Volume returns the signed enclosed volume by the divergence theorem.
// It is positive for an outward oriented closed shell.
func (s *Solid) Volume() float64 {
	var v float64
	for _, f := range s.Faces() {
		for _, t := range f.Triangles() {
			v += t[0].Dot(t[1].Cross(t[2]))
		}
	}
	return v / 6
}

// Area returns the total surface area.
func (s *Solid) Area() float64 {
	var a float64
	for _, f := range s.Faces() {
		a += f.Area()
	}
	return a
}

// BoundingBox returns the axis-aligned bounds of all vertices. An empty
// solid has a zero box at the origin.
func (s *Solid) BoundingBox() (min, max [3]float64) {
	faces := s.Faces()
	if len(faces) == 0 {
		return min, max
	}
	min = [3]float64{math.Inf(1), math.Inf(1), math.Inf(1)}
	max = [3]float64{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, f := range faces {
		for _, e := range f.Loop {
			p := [3]float64{e.A.X, e.A.Y, e.A.Z}
			for i := 0; i < 3; i++ {
				min[i] = math.Min(min[i], p[i])
				max[i] = math.Max(max[i], p[i])
			}
		}
	}
	return min, max
}

// Triangles returns an exact triangulation of every face, wound to match
// the face orientation.
func (s *Solid) Triangles() [][3]geom.Point3 {
	var tris [][3]geom.Point3
	for _, f := range s.Faces() {
		tris = append(tris, f.Triangles()...)
	}
	return tris
}

// Translate returns a copy of the solid moved by d.
func (s *Solid) Translate(d geom.Vector) *Solid {
	faces := s.Faces()
	out := make([]Face, len(faces))
	for i, f := range faces {
		verts := f.Vertices()
		for j := range verts {
			verts[j] = verts[j].Add(d)
		}
		out[i] = RawFace(verts...)
	}
	return &Solid{Shell: &Shell{Faces: out}}
}
