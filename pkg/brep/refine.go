package brep

import (
	"math"

	"github.com/chazu/decorated/pkg/geom"
)

// RemoveSplitter merges pairs of coplanar faces that share an edge when
// their union is a convex polygon, repeating until no pair qualifies, and
// then drops vertices that every face using them passes straight through.
// The enclosed volume is unchanged; only the face partition of each plane
// becomes coarser.
func (s *Solid) RemoveSplitter() *Solid {
	faces := make([]Face, len(s.Faces()))
	copy(faces, s.Faces())
	if len(faces) == 0 {
		return Empty()
	}

	var all []geom.Point3
	for _, f := range faces {
		all = append(all, f.Vertices()...)
	}
	tol := lengthEpsilon(all)

	for {
		i, j, merged, ok := findMerge(faces, tol)
		if !ok {
			break
		}
		faces[i] = merged
		faces = append(faces[:j], faces[j+1:]...)
	}
	faces = dropCollinear(faces, tol)
	return &Solid{Shell: &Shell{Faces: faces}}
}

// findMerge returns the first pair of faces (i < j) that can be merged
// and the merged face.
func findMerge(faces []Face, tol float64) (int, int, Face, bool) {
	type ref struct{ face, pos int }
	edges := make(map[edgeKey]ref)
	for fi, f := range faces {
		for ei, e := range f.Loop {
			edges[edgeKey{e.A, e.B}] = ref{fi, ei}
		}
	}

	for fi, f := range faces {
		nf := f.Normal()
		if geom.Length(nf) == 0 {
			continue
		}
		for ei, e := range f.Loop {
			r, ok := edges[edgeKey{e.B, e.A}]
			if !ok || r.face == fi {
				continue
			}
			g := faces[r.face]
			if !coplanar(f, g, tol) {
				continue
			}
			merged, ok := mergeLoops(f.Vertices(), ei, g.Vertices(), r.pos, nf, tol)
			if !ok {
				continue
			}
			i, j := fi, r.face
			if j < i {
				i, j = j, i
			}
			return i, j, merged, true
		}
	}
	return 0, 0, Face{}, false
}

// coplanar reports whether g lies in f's plane with the same orientation.
func coplanar(f, g Face, tol float64) bool {
	nf, ng := f.Normal(), g.Normal()
	if nf.Dot(ng) < 1-1e-9 {
		return false
	}
	c := f.Centroid()
	for _, v := range g.Vertices() {
		if math.Abs(nf.Dot(v.Sub(c))) > tol {
			return false
		}
	}
	return true
}

// mergeLoops joins loop a, whose edge at ia runs p→q, with loop b, whose
// edge at ib runs q→p. The shared edge disappears.
func mergeLoops(a []geom.Point3, ia int, b []geom.Point3, ib int, n geom.Vector, tol float64) (Face, bool) {
	out := make([]geom.Point3, 0, len(a)+len(b)-2)
	// a from q around to p.
	for k := 1; k <= len(a); k++ {
		out = append(out, a[(ia+k)%len(a)])
	}
	// b after p up to, but excluding, q.
	for k := 2; k < len(b); k++ {
		out = append(out, b[(ib+k)%len(b)])
	}

	seen := make(map[geom.Point3]bool, len(out))
	for _, v := range out {
		if seen[v] {
			return Face{}, false
		}
		seen[v] = true
	}
	if !convex(out, n, tol) {
		return Face{}, false
	}
	return RawFace(out...), true
}

// convex reports whether no turn of the polygon goes right of n and no
// vertex folds back. Straight-through vertices are allowed.
func convex(pts []geom.Point3, n geom.Vector, tol float64) bool {
	for i := range pts {
		if turn(pts, i, n, tol) < 0 {
			return false
		}
	}
	return true
}

// turn classifies vertex i of the polygon: 1 for a left turn about n, 0
// for a straight-through vertex and -1 for a right turn or a fold back.
func turn(pts []geom.Point3, i int, n geom.Vector, tol float64) int {
	prev := pts[(i+len(pts)-1)%len(pts)]
	next := pts[(i+1)%len(pts)]
	d1 := pts[i].Sub(prev)
	d2 := next.Sub(pts[i])
	cross := d1.Cross(d2)
	if geom.Length(cross) <= tol*(geom.Length(d1)+geom.Length(d2)) {
		if d1.Dot(d2) > 0 {
			return 0
		}
		return -1
	}
	if cross.Dot(n) > 0 {
		return 1
	}
	return -1
}

// dropCollinear removes vertices that are straight-through in every face
// that uses them. Removing such a vertex from all of its faces at once
// keeps the matching of opposite edges intact.
func dropCollinear(faces []Face, tol float64) []Face {
	for {
		used := make(map[geom.Point3]int)
		straight := make(map[geom.Point3]int)
		for _, f := range faces {
			verts := f.Vertices()
			n := f.Normal()
			for i, v := range verts {
				used[v]++
				if len(verts) > 3 && turn(verts, i, n, tol) == 0 {
					straight[v]++
				}
			}
		}

		drop := make(map[geom.Point3]bool)
		for v, k := range straight {
			if k == used[v] {
				drop[v] = true
			}
		}
		if len(drop) == 0 {
			return faces
		}

		next := make([]Face, len(faces))
		for fi, f := range faces {
			verts := f.Vertices()
			kept := verts[:0:0]
			for _, v := range verts {
				if !drop[v] {
					kept = append(kept, v)
				}
			}
			if len(kept) < 3 {
				return faces
			}
			next[fi] = RawFace(kept...)
		}
		faces = next
	}
}
