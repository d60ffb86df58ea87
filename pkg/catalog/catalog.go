// Package catalog holds the static combinatorial description of the five
// Platonic solids: vertex coordinates at a canonical size, faces as
// ordered vertex-index loops, and the canonical circumradius and edge
// length used to scale them. The table is built once at init and is
// shared read-only.
package catalog

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/chazu/decorated/pkg/geom"
)

// Kind selects one of the five Platonic solids.
type Kind int

const (
	Tetrahedron Kind = iota
	Cube
	Octahedron
	Icosahedron
	Dodecahedron
)

var kindNames = [...]string{"tetrahedron", "cube", "octahedron", "icosahedron", "dodecahedron"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Kinds returns every catalog kind in declaration order.
func Kinds() []Kind {
	return []Kind{Tetrahedron, Cube, Octahedron, Icosahedron, Dodecahedron}
}

// ParseKind converts a case-insensitive solid name to a Kind.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return 0, &LookupError{Name: s}
}

// ScaleMode selects which canonical measure a scale value refers to.
type ScaleMode int

const (
	OuterRadius ScaleMode = iota // scale value is the circumradius
	EdgeLength                   // scale value is the edge length
)

func (m ScaleMode) String() string {
	switch m {
	case OuterRadius:
		return "outer-radius"
	case EdgeLength:
		return "edge-length"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseScaleMode converts "outer-radius" or "edge-length" to a ScaleMode.
func ParseScaleMode(s string) (ScaleMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "outer-radius", "outer_radius", "outer radius":
		return OuterRadius, nil
	case "edge-length", "edge_length", "edge length":
		return EdgeLength, nil
	}
	return 0, fmt.Errorf("catalog: invalid scale mode %q, expected outer-radius or edge-length", s)
}

// ErrUnknownKind is wrapped by every LookupError.
var ErrUnknownKind = errors.New("unknown platonic solid")

// LookupError reports a solid kind or name that is not in the catalog.
type LookupError struct {
	Kind Kind
	Name string
}

func (e *LookupError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("catalog: %v %q", ErrUnknownKind, e.Name)
	}
	return fmt.Sprintf("catalog: %v: %s", ErrUnknownKind, e.Kind)
}

func (e *LookupError) Unwrap() error { return ErrUnknownKind }

// Descriptor is the immutable catalog entry for one solid.
type Descriptor struct {
	Kind       Kind
	Vertices   []geom.Point3
	Faces      [][]int  // ordered vertex-index loops
	Edges      [][2]int // authored edge list; nil where derived from Faces
	Radius     float64  // canonical circumradius
	EdgeLength float64  // canonical edge length
}

// Describe returns the catalog entry for kind.
func Describe(kind Kind) (*Descriptor, error) {
	d, ok := solids[kind]
	if !ok {
		return nil, &LookupError{Kind: kind}
	}
	return d, nil
}

// MustDescribe is like Describe but panics on an unknown kind.
func MustDescribe(kind Kind) *Descriptor {
	d, err := Describe(kind)
	if err != nil {
		panic(err)
	}
	return d
}

// Factor returns the uniform scale that brings the canonical solid to the
// requested measure.
func (d *Descriptor) Factor(mode ScaleMode, value float64) (float64, error) {
	switch mode {
	case OuterRadius:
		return value / d.Radius, nil
	case EdgeLength:
		return value / d.EdgeLength, nil
	}
	return 0, fmt.Errorf("catalog: invalid scale mode %d", int(mode))
}

// ScaledVertices returns the vertex coordinates multiplied by factor.
func (d *Descriptor) ScaledVertices(factor float64) []geom.Point3 {
	out := make([]geom.Point3, len(d.Vertices))
	for i, v := range d.Vertices {
		out[i] = geom.Scale(v, factor)
	}
	return out
}

// Adjacency returns the edge adjacency derived from the face loops.
func (d *Descriptor) Adjacency() Adjacency {
	return BuildEdgeAdjacency(d.Faces)
}

var (
	phi    = (1 + math.Sqrt(5)) / 2
	invPhi = 1 / phi
	ksi    = math.Sqrt((5 - math.Sqrt(5)) / 2)
)

var solids map[Kind]*Descriptor

func init() {
	solids = map[Kind]*Descriptor{
		Tetrahedron: {
			Kind: Tetrahedron,
			Vertices: []geom.Point3{
				geom.Pt(1, 1, 1), geom.Pt(1, -1, -1), geom.Pt(-1, 1, -1), geom.Pt(-1, -1, 1),
			},
			Faces:      [][]int{{0, 1, 2}, {0, 1, 3}, {0, 3, 2}, {1, 2, 3}},
			Edges:      [][2]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}},
			Radius:     math.Sqrt(3),
			EdgeLength: 2 * math.Sqrt(2),
		},
		Cube: {
			Kind: Cube,
			Vertices: []geom.Point3{
				geom.Pt(-1, -1, -1), geom.Pt(1, -1, -1), geom.Pt(1, 1, -1), geom.Pt(-1, 1, -1),
				geom.Pt(-1, -1, 1), geom.Pt(1, -1, 1), geom.Pt(1, 1, 1), geom.Pt(-1, 1, 1),
			},
			Faces: [][]int{{0, 1, 2, 3}, {1, 2, 6, 5}, {0, 1, 5, 4}, {0, 3, 7, 4}, {3, 2, 6, 7}, {4, 5, 6, 7}},
			Edges: [][2]int{
				{0, 1}, {0, 3}, {0, 4}, {1, 2}, {1, 5}, {2, 3},
				{2, 6}, {3, 7}, {4, 5}, {4, 7}, {5, 6}, {6, 7},
			},
			Radius:     math.Sqrt(3),
			EdgeLength: 2,
		},
		Octahedron: {
			Kind: Octahedron,
			Vertices: []geom.Point3{
				geom.Pt(0, 0, -1), geom.Pt(-1, 0, 0), geom.Pt(0, -1, 0),
				geom.Pt(1, 0, 0), geom.Pt(0, 1, 0), geom.Pt(0, 0, 1),
			},
			Faces: [][]int{
				{0, 1, 2}, {0, 2, 3}, {0, 3, 4}, {0, 4, 1},
				{5, 1, 2}, {5, 2, 3}, {5, 3, 4}, {5, 4, 1},
			},
			Radius:     1,
			EdgeLength: math.Sqrt(2),
		},
		Icosahedron: {
			Kind: Icosahedron,
			Vertices: []geom.Point3{
				geom.Pt(0, 1, -phi), geom.Pt(0, -1, -phi), geom.Pt(-phi, 0, -1), geom.Pt(phi, 0, -1),
				geom.Pt(-1, -phi, 0), geom.Pt(1, -phi, 0), geom.Pt(1, phi, 0), geom.Pt(-1, phi, 0),
				geom.Pt(-phi, 0, 1), geom.Pt(phi, 0, 1), geom.Pt(0, 1, phi), geom.Pt(0, -1, phi),
			},
			Faces: [][]int{
				{0, 1, 2}, {0, 1, 3}, {1, 2, 4}, {1, 4, 5}, {1, 5, 3},
				{3, 5, 9}, {3, 9, 6}, {3, 6, 0}, {0, 6, 7}, {0, 7, 2},
				{2, 7, 8}, {2, 8, 4}, {4, 8, 11}, {4, 11, 5}, {5, 11, 9},
				{9, 10, 6}, {6, 10, 7}, {7, 10, 8}, {8, 10, 11}, {11, 10, 9},
			},
			Radius:     ksi * phi,
			EdgeLength: 2,
		},
		Dodecahedron: {
			Kind: Dodecahedron,
			Vertices: []geom.Point3{
				geom.Pt(-invPhi, 0, -phi), geom.Pt(invPhi, 0, -phi),
				geom.Pt(-1, -1, -1), geom.Pt(1, -1, -1), geom.Pt(1, 1, -1), geom.Pt(-1, 1, -1),
				geom.Pt(0, -phi, -invPhi), geom.Pt(0, phi, -invPhi),
				geom.Pt(-phi, -invPhi, 0), geom.Pt(phi, -invPhi, 0), geom.Pt(phi, invPhi, 0), geom.Pt(-phi, invPhi, 0),
				geom.Pt(0, -phi, invPhi), geom.Pt(0, phi, invPhi),
				geom.Pt(-1, -1, 1), geom.Pt(1, -1, 1), geom.Pt(1, 1, 1), geom.Pt(-1, 1, 1),
				geom.Pt(-invPhi, 0, phi), geom.Pt(invPhi, 0, phi),
			},
			Faces: [][]int{
				{0, 1, 3, 6, 2}, {0, 1, 4, 7, 5}, {0, 2, 8, 11, 5}, {1, 3, 9, 10, 4},
				{2, 6, 12, 14, 8}, {3, 9, 15, 12, 6}, {4, 7, 13, 16, 10}, {5, 11, 17, 13, 7},
				{8, 14, 18, 17, 11}, {10, 16, 19, 15, 9}, {13, 17, 18, 19, 16}, {12, 15, 19, 18, 14},
			},
			Radius:     math.Sqrt(3),
			EdgeLength: 2 / phi,
		},
	}
}
