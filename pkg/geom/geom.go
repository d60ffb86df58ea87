// Package geom provides the point, edge and vector primitives shared by
// the solid builders. Points are sdfx vectors so that builder output can
// be handed to the geometry kernel without conversion.
package geom

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Point3 is an immutable 3D point.
type Point3 = v3.Vec

// Vector is a 3D displacement. It shares the point representation.
type Vector = v3.Vec

// Segment is a straight line segment from A to B.
type Segment struct {
	A, B Point3
}

// Pt is shorthand for constructing a Point3.
func Pt(x, y, z float64) Point3 {
	return Point3{X: x, Y: y, Z: z}
}

// Scale multiplies every component of p by factor.
func Scale(p Point3, factor float64) Point3 {
	return p.MulScalar(factor)
}

// MakeEdge returns the segment from a to b.
func MakeEdge(a, b Point3) Segment {
	return Segment{A: a, B: b}
}

// Direction returns the vector from a to b.
func Direction(a, b Point3) Vector {
	return b.Sub(a)
}

// Length returns the Euclidean length of v.
func Length(v Vector) float64 {
	return v.Length()
}

// Distance returns the distance between a and b.
func Distance(a, b Point3) float64 {
	return Length(Direction(a, b))
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Point3) Point3 {
	return a.Add(b).MulScalar(0.5)
}

// Length returns the length of the segment.
func (s Segment) Length() float64 {
	return Distance(s.A, s.B)
}

// Direction returns the vector from the start to the end of the segment.
func (s Segment) Direction() Vector {
	return Direction(s.A, s.B)
}

// Orientation returns the polar angle (from +Z) and azimuth (from +X in
// the XY plane) of v, in degrees. Rotating a +Z aligned solid by the polar
// angle about Y and then by the azimuth about Z aligns it with v.
func Orientation(v Vector) (polar, azimuth float64) {
	l := v.Length()
	if l == 0 {
		return 0, 0
	}
	c := math.Max(-1, math.Min(1, v.Z/l))
	polar = math.Acos(c) * 180 / math.Pi
	azimuth = math.Atan2(v.Y, v.X) * 180 / math.Pi
	return polar, azimuth
}

// Finite reports whether every component of p is a finite number.
func Finite(p Point3) bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0) &&
		!math.IsNaN(p.Z) && !math.IsInf(p.Z, 0)
}

// Near reports whether a and b are within tol of each other in every axis.
func Near(a, b Point3, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol && math.Abs(a.Z-b.Z) <= tol
}

// Ring returns n+1 points on a circle of the given radius in the plane
// z, at angles 2π·i/n for i = 0..n. The last point repeats the first.
func Ring(radius, z float64, n int) []Point3 {
	pts := make([]Point3, n+1)
	for i := 0; i <= n; i++ {
		phi := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = Pt(radius*math.Cos(phi), radius*math.Sin(phi), z)
	}
	// Exact closure, independent of cos/sin rounding at 2π.
	pts[n] = pts[0]
	return pts
}
