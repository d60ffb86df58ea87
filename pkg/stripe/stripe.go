// Package stripe builds the decorated cylinder: a tube whose inner and
// outer walls are split into triangular panels that form a chevron pattern,
// closed at both rims by annular quads.
package stripe

import (
	"fmt"
	"math"

	"github.com/chazu/decorated/pkg/brep"
	"github.com/chazu/decorated/pkg/geom"
)

// Params is the parameter set of a stripe cylinder.
type Params struct {
	Radius    float64 `json:"radius"`    // outer radius
	Thickness float64 `json:"thickness"` // wall thickness, inner radius is Radius-Thickness
	Height    float64 `json:"height"`
	Stripes   int     `json:"stripes"`  // vertical subdivisions
	Segments  int     `json:"segments"` // angular subdivisions
	Reversed  bool    `json:"reversed"` // flips the panel diagonal
	Refine    bool    `json:"refine"`   // merge coplanar faces after building
}

// DefaultParams returns the parameters of a newly created cylinder.
func DefaultParams() Params {
	return Params{
		Radius:    2,
		Thickness: 1,
		Height:    10,
		Stripes:   5,
		Segments:  12,
	}
}

// InnerRadius returns the radius of the inner wall.
func (p Params) InnerRadius() float64 {
	return p.Radius - p.Thickness
}

// Empty reports whether the parameters describe no geometry.
func (p Params) Empty() bool {
	return p.Segments < 1 || p.Stripes < 1
}

// FaceCount returns the number of faces Build emits before refinement.
func (p Params) FaceCount() int {
	if p.Empty() {
		return 0
	}
	return 4*p.Segments*p.Stripes + 2*p.Segments
}

func (p Params) finite() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"radius", p.Radius}, {"thickness", p.Thickness}, {"height", p.Height},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return &brep.GeometryError{
				Op:       "stripe",
				Problems: []string{fmt.Sprintf("%s is not finite: %v", f.name, f.v)},
				Total:    1,
			}
		}
	}
	return nil
}

// Build generates the cylinder. Parameter sets with fewer than one segment
// or stripe return an empty solid and no error. The shell is healed but
// not checked: Thickness = 0 or Thickness = Radius produce a shell that
// fails Check, which callers may inspect.
func Build(p Params) (*brep.Solid, error) {
	if p.Empty() {
		return brep.Empty(), nil
	}
	if err := p.finite(); err != nil {
		return nil, err
	}

	levels := make([]float64, p.Stripes+1)
	for j := range levels {
		levels[j] = p.Height * float64(j) / float64(p.Stripes)
	}
	levels[p.Stripes] = p.Height

	outer := rings(p.Radius, levels, p.Segments)
	inner := rings(p.InnerRadius(), levels, p.Segments)

	faces := make([]brep.Face, 0, p.FaceCount())
	faces = append(faces, walls(inner, p, true)...)
	faces = append(faces, walls(outer, p, false)...)
	faces = append(faces, caps(outer[0], inner[0], outer[p.Stripes], inner[p.Stripes], p.Segments)...)

	solid := brep.Heal(brep.MakeShell(faces...))
	if p.Refine {
		solid = solid.RemoveSplitter()
	}
	return solid, nil
}

// rings samples one closed ring per height level.
func rings(radius float64, levels []float64, segments int) [][]geom.Point3 {
	out := make([][]geom.Point3, len(levels))
	for j, z := range levels {
		out[j] = geom.Ring(radius, z, segments)
	}
	return out
}

// walls emits two triangles per panel. The panel diagonal runs from the
// lower-left to the upper-right corner, or the other way when Reversed.
// Outer walls face away from the axis and inner walls toward it.
func walls(levels [][]geom.Point3, p Params, inner bool) []brep.Face {
	faces := make([]brep.Face, 0, 2*p.Segments*p.Stripes)
	flip := p.Reversed != inner
	for j := 0; j < p.Stripes; j++ {
		cur, next := levels[j], levels[j+1]
		if p.Reversed {
			cur, next = next, cur
		}
		for i := 0; i < p.Segments; i++ {
			a := []geom.Point3{cur[i], cur[i+1], next[i+1]}
			b := []geom.Point3{cur[i], next[i+1], next[i]}
			if flip {
				a[1], a[2] = a[2], a[1]
				b[1], b[2] = b[2], b[1]
			}
			faces = append(faces, brep.RawFace(a...), brep.RawFace(b...))
		}
	}
	return faces
}

// caps closes the bottom and top rims with one annular quad per segment.
func caps(outerBottom, innerBottom, outerTop, innerTop []geom.Point3, segments int) []brep.Face {
	faces := make([]brep.Face, 0, 2*segments)
	for i := 0; i < segments; i++ {
		faces = append(faces, brep.RawFace(outerBottom[i], innerBottom[i], innerBottom[i+1], outerBottom[i+1]))
	}
	for i := 0; i < segments; i++ {
		faces = append(faces, brep.RawFace(outerTop[i], outerTop[i+1], innerTop[i+1], innerTop[i]))
	}
	return faces
}
