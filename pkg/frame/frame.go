// Package frame builds strut-and-node solids over the Platonic catalog:
// a cylinder along every edge and a sphere at every vertex, unioned by the
// geometry kernel. The same package also builds the plain polyhedron as a
// B-Rep solid and the vertex cloud on its own.
package frame

import (
	"fmt"
	"math"
	"strings"

	"github.com/chazu/decorated/pkg/brep"
	"github.com/chazu/decorated/pkg/catalog"
	"github.com/chazu/decorated/pkg/geom"
	"github.com/chazu/decorated/pkg/kernel"
)

// Style selects what Build produces.
type Style int

const (
	StyleFrame      Style = iota // struts and node spheres
	StylePolyhedron              // the solid polyhedron itself
	StyleCloud                   // node spheres only
)

var styleNames = [...]string{"frame", "polyhedron", "cloud"}

func (s Style) String() string {
	if s < 0 || int(s) >= len(styleNames) {
		return fmt.Sprintf("style(%d)", int(s))
	}
	return styleNames[s]
}

// ParseStyle converts a style name to a Style.
func ParseStyle(s string) (Style, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range styleNames {
		if n == name {
			return Style(i), nil
		}
	}
	return 0, fmt.Errorf("frame: invalid style %q, expected frame, polyhedron or cloud", s)
}

// Params is the parameter set of a Platonic frame.
type Params struct {
	Kind       catalog.Kind      `json:"kind"`
	Mode       catalog.ScaleMode `json:"mode"`
	Scale      float64           `json:"scale"`      // circumradius or edge length, per Mode
	EdgeRadius float64           `json:"edgeRadius"` // strut and node radius; 0 selects DefaultEdgeRadius
	Style      Style             `json:"style"`
}

// DefaultParams returns the parameters of a newly created frame.
func DefaultParams() Params {
	return Params{
		Kind:       catalog.Tetrahedron,
		Mode:       catalog.OuterRadius,
		Scale:      10,
		EdgeRadius: 2,
		Style:      StyleFrame,
	}
}

// EdgeRadius resolves the strut radius. An explicit positive radius wins;
// otherwise the default sizing heuristic applies: one twentieth of the
// scaled edge length.
func EdgeRadius(d *catalog.Descriptor, factor, explicit float64) float64 {
	if explicit > 0 {
		return explicit
	}
	return DefaultEdgeRadius(d, factor)
}

// DefaultEdgeRadius returns factor·EdgeLength/20.
func DefaultEdgeRadius(d *catalog.Descriptor, factor float64) float64 {
	return factor * d.EdgeLength / 20
}

// Frame is a built Platonic solid together with the scaled skeleton it was
// built from.
type Frame struct {
	Solid      kernel.Solid
	Kind       catalog.Kind
	Style      Style
	Factor     float64
	EdgeRadius float64 // zero for StylePolyhedron
	Nodes      []geom.Point3
	Struts     [][2]int // node index pairs, i < j
}

var (
	_ kernel.Solid   = (*Frame)(nil)
	_ kernel.Wrapper = (*Frame)(nil)
)

// BoundingBox returns the bounds of the built solid.
func (f *Frame) BoundingBox() (min, max [3]float64) {
	return f.Solid.BoundingBox()
}

// Unwrap returns the built solid.
func (f *Frame) Unwrap() kernel.Solid { return f.Solid }

// Circumradius returns the largest node distance from the origin.
func (f *Frame) Circumradius() float64 {
	var r float64
	for _, n := range f.Nodes {
		r = math.Max(r, geom.Length(n))
	}
	return r
}

// StrutLength returns the length of strut i.
func (f *Frame) StrutLength(i int) float64 {
	s := f.Struts[i]
	return geom.Distance(f.Nodes[s[0]], f.Nodes[s[1]])
}

func geometryError(format string, args ...any) error {
	return &brep.GeometryError{Op: "frame", Problems: []string{fmt.Sprintf(format, args...)}, Total: 1}
}

// Build generates the solid described by p. Frame and cloud styles need
// the kernel for curved primitives and the union; the polyhedron style is
// exact and ignores it.
func Build(k kernel.Kernel, p Params) (*Frame, error) {
	desc, err := catalog.Describe(p.Kind)
	if err != nil {
		return nil, err
	}
	factor, err := desc.Factor(p.Mode, p.Scale)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(factor) || math.IsInf(factor, 0) {
		return nil, geometryError("scale %v is not finite", p.Scale)
	}

	f := &Frame{
		Kind:   p.Kind,
		Style:  p.Style,
		Factor: factor,
		Nodes:  desc.ScaledVertices(factor),
		Struts: desc.Adjacency().Edges(),
	}

	switch p.Style {
	case StylePolyhedron:
		solid, err := polyhedron(desc, f.Nodes)
		if err != nil {
			return nil, err
		}
		f.Solid = solid
	case StyleFrame, StyleCloud:
		r := EdgeRadius(desc, factor, p.EdgeRadius)
		if !(r > 0) || math.IsInf(r, 0) {
			return nil, geometryError("no usable edge radius (explicit %v, scale %v)", p.EdgeRadius, p.Scale)
		}
		f.EdgeRadius = r
		parts := nodes(k, f.Nodes, r)
		if p.Style == StyleFrame {
			parts = append(parts, struts(k, f.Nodes, f.Struts, r)...)
		}
		f.Solid = k.Join(parts...)
	default:
		return nil, fmt.Errorf("frame: invalid style %d", int(p.Style))
	}

	kernel.Logger().Debug("frame: built",
		"kind", p.Kind, "style", p.Style, "factor", factor,
		"nodes", len(f.Nodes), "struts", len(f.Struts), "edgeRadius", f.EdgeRadius)
	return f, nil
}

// nodes places one sphere at every distinct node position.
func nodes(k kernel.Kernel, pts []geom.Point3, radius float64) []kernel.Solid {
	seen := make(map[geom.Point3]bool, len(pts))
	out := make([]kernel.Solid, 0, len(pts))
	for _, p := range pts {
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, k.Translate(k.Sphere(radius, 0), p.X, p.Y, p.Z))
	}
	return out
}

// struts builds a cylinder along every edge. The kernel cylinder runs
// along Z centered at the origin; it is tilted onto the edge direction and
// moved to the edge midpoint. Zero-length edges are skipped.
func struts(k kernel.Kernel, pts []geom.Point3, edges [][2]int, radius float64) []kernel.Solid {
	out := make([]kernel.Solid, 0, len(edges))
	for _, e := range edges {
		seg := geom.MakeEdge(pts[e[0]], pts[e[1]])
		length := seg.Length()
		if length <= 0 {
			continue
		}
		polar, azimuth := geom.Orientation(seg.Direction())
		mid := geom.Midpoint(seg.A, seg.B)
		cyl := k.Rotate(k.Cylinder(length, radius, 0), 0, polar, azimuth)
		out = append(out, k.Translate(cyl, mid.X, mid.Y, mid.Z))
	}
	return out
}

// polyhedron wires the catalog faces into a closed shell. Every solid in
// the catalog is convex and centered, so a face is outward when its
// normal points away from the origin.
func polyhedron(d *catalog.Descriptor, pts []geom.Point3) (*brep.Solid, error) {
	faces := make([]brep.Face, 0, len(d.Faces))
	for _, loop := range d.Faces {
		verts := make([]geom.Point3, len(loop))
		for i, idx := range loop {
			verts[i] = pts[idx]
		}
		f := brep.RawFace(verts...)
		if f.Normal().Dot(f.Centroid()) < 0 {
			f = f.Reversed()
		}
		faces = append(faces, f)
	}
	return brep.NewSolid(brep.MakeShell(faces...))
}
