// Package brep is a small boundary representation for polyhedral solids:
// straight edges wired into closed loops, loops bounding planar faces,
// faces sewn into a shell, and a shell promoted to a solid once it is
// known to be closed and consistently oriented.
package brep

import (
	"math"
	"strconv"

	"github.com/chazu/decorated/pkg/geom"
)

// Edge is a straight, directed segment.
type Edge struct {
	A, B geom.Point3
}

// Reversed returns the edge traversed in the opposite direction.
func (e Edge) Reversed() Edge { return Edge{A: e.B, B: e.A} }

// Loop is a closed ring of edges. Each edge ends where the next begins and
// the last edge ends where the first begins.
type Loop []Edge

// NewLoop wires the points into a closed loop, adding the closing edge
// from the last point back to the first.
func NewLoop(pts ...geom.Point3) Loop {
	if len(pts) == 0 {
		return nil
	}
	l := make(Loop, len(pts))
	for i, p := range pts {
		l[i] = Edge{A: p, B: pts[(i+1)%len(pts)]}
	}
	return l
}

// Closed reports whether the loop satisfies the closure invariant.
func (l Loop) Closed() bool {
	if len(l) == 0 {
		return false
	}
	for i, e := range l {
		if e.B != l[(i+1)%len(l)].A {
			return false
		}
	}
	return true
}

// Vertices returns the start point of every edge, in order.
func (l Loop) Vertices() []geom.Point3 {
	v := make([]geom.Point3, len(l))
	for i, e := range l {
		v[i] = e.A
	}
	return v
}

// Reversed returns the loop traversed in the opposite direction.
func (l Loop) Reversed() Loop {
	v := l.Vertices()
	for i, j := 0, len(v)-1; i < j; i, j = i+1, j-1 {
		v[i], v[j] = v[j], v[i]
	}
	return NewLoop(v...)
}

// Face is a planar region bounded by a single loop. The loop winding is
// counter-clockwise when seen from the side the face normal points to.
type Face struct {
	Loop Loop
}

// NewFace builds a face from the loop through pts and validates it: at
// least three vertices, no repeated vertex, no zero-length edge, planar.
func NewFace(pts ...geom.Point3) (Face, error) {
	f := RawFace(pts...)
	if err := f.Validate(); err != nil {
		return Face{}, err
	}
	return f, nil
}

// RawFace builds a face without validating it. Builders use it where a
// degenerate result is an accepted outcome that Shell.Check reports later.
func RawFace(pts ...geom.Point3) Face {
	return Face{Loop: NewLoop(pts...)}
}

// Validate checks the face invariants.
func (f Face) Validate() error {
	p := problems{op: "face"}
	f.validate(&p, -1)
	return p.err()
}

func (f Face) validate(p *problems, index int) {
	name := "face"
	if index >= 0 {
		name = "face " + strconv.Itoa(index)
	}
	if !f.Loop.Closed() {
		p.addf("%s: loop is not closed", name)
		return
	}
	verts := f.Loop.Vertices()
	if len(verts) < 3 {
		p.addf("%s: %d vertices, need at least 3", name, len(verts))
		return
	}
	seen := make(map[geom.Point3]bool, len(verts))
	for _, v := range verts {
		if !geom.Finite(v) {
			p.addf("%s: non-finite vertex %v", name, v)
			return
		}
		if seen[v] {
			p.addf("%s: repeated vertex %v", name, v)
			return
		}
		seen[v] = true
	}
	n := f.newell()
	area := geom.Length(n) / 2
	if area <= areaEpsilon(verts) {
		p.addf("%s: zero area", name)
		return
	}
	if !f.Planar() {
		p.addf("%s: not planar", name)
	}
}

// Vertices returns the loop vertices in order.
func (f Face) Vertices() []geom.Point3 { return f.Loop.Vertices() }

// Reversed returns the face with its winding, and normal, flipped.
func (f Face) Reversed() Face { return Face{Loop: f.Loop.Reversed()} }

// newell returns the unnormalized Newell normal, whose length is twice the
// polygon area.
func (f Face) newell() geom.Vector {
	var n geom.Vector
	verts := f.Loop.Vertices()
	for i, c := range verts {
		d := verts[(i+1)%len(verts)]
		n.X += (c.Y - d.Y) * (c.Z + d.Z)
		n.Y += (c.Z - d.Z) * (c.X + d.X)
		n.Z += (c.X - d.X) * (c.Y + d.Y)
	}
	return n
}

// Normal returns the unit face normal, or the zero vector for a
// degenerate face.
func (f Face) Normal() geom.Vector {
	n := f.newell()
	l := geom.Length(n)
	if l == 0 {
		return n
	}
	return n.MulScalar(1 / l)
}

// Area returns the face area.
func (f Face) Area() float64 {
	return geom.Length(f.newell()) / 2
}

// Centroid returns the vertex average.
func (f Face) Centroid() geom.Point3 {
	var c geom.Point3
	verts := f.Loop.Vertices()
	for _, v := range verts {
		c = c.Add(v)
	}
	if len(verts) == 0 {
		return c
	}
	return c.MulScalar(1 / float64(len(verts)))
}

// Planar reports whether every vertex lies on the face plane within a
// tolerance relative to the face size.
func (f Face) Planar() bool {
	verts := f.Loop.Vertices()
	if len(verts) <= 3 {
		return true
	}
	n := f.Normal()
	c := f.Centroid()
	tol := lengthEpsilon(verts)
	for _, v := range verts {
		if math.Abs(n.Dot(v.Sub(c))) > tol {
			return false
		}
	}
	return true
}

// Triangles fans the face into triangles from its first vertex. Faces are
// convex by construction, so the fan covers the face exactly.
func (f Face) Triangles() [][3]geom.Point3 {
	verts := f.Loop.Vertices()
	if len(verts) < 3 {
		return nil
	}
	tris := make([][3]geom.Point3, 0, len(verts)-2)
	for i := 1; i+1 < len(verts); i++ {
		tris = append(tris, [3]geom.Point3{verts[0], verts[i], verts[i+1]})
	}
	return tris
}

// extent returns the largest axis span of the points.
func extent(pts []geom.Point3) float64 {
	if len(pts) == 0 {
		return 0
	}
	lo, hi := pts[0], pts[0]
	for _, p := range pts[1:] {
		lo = geom.Pt(math.Min(lo.X, p.X), math.Min(lo.Y, p.Y), math.Min(lo.Z, p.Z))
		hi = geom.Pt(math.Max(hi.X, p.X), math.Max(hi.Y, p.Y), math.Max(hi.Z, p.Z))
	}
	return math.Max(hi.X-lo.X, math.Max(hi.Y-lo.Y, hi.Z-lo.Z))
}

const relEpsilon = 1e-9

func lengthEpsilon(pts []geom.Point3) float64 {
	return relEpsilon * math.Max(extent(pts), 1e-12)
}

func areaEpsilon(pts []geom.Point3) float64 {
	e := extent(pts)
	return relEpsilon * e * e
}
